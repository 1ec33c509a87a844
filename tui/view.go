package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles (defined at package init for reuse)
var (
	// Color styles
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleCyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Panel styles
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	styleEventInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleEventWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	styleEventError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Build panels
	header := m.renderHeader()
	prog := m.renderProgress()
	scores := m.renderScores()
	rate := m.renderRate()
	ranking := m.renderRanking()
	winners := m.renderWinners()
	events := m.renderEvents()
	footer := m.renderFooter()

	// Stack panels vertically
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		prog,
		lipgloss.JoinHorizontal(lipgloss.Top, scores, rate),
		ranking,
		winners,
		events,
		footer,
	)

	return body
}

func (m Model) renderHeader() string {
	runtime := time.Since(m.snapshot.StartTime)
	return styleHeader.Render(fmt.Sprintf(
		"%s │ method=%s │ data=%s │ runtime=%s",
		m.snapshot.Title,
		m.snapshot.Method,
		m.snapshot.Dataset,
		FormatDuration(runtime),
	))
}

func (m Model) renderProgress() string {
	if m.snapshot.TotalRounds == 0 {
		return ""
	}
	frac := float64(m.snapshot.Round) / float64(m.snapshot.TotalRounds)
	if frac > 1 {
		frac = 1
	}
	label := fmt.Sprintf("round %d/%d  pass %d/%d",
		m.snapshot.Round, m.snapshot.TotalRounds,
		m.snapshot.Bootstrap, m.snapshot.TotalBootstrap,
	)
	return stylePanel.Render(styleCyan.Render(label) + "\n" + m.progress.ViewAs(frac))
}

func (m Model) renderScores() string {
	return stylePanel.Width(50).Render(fmt.Sprintf(
		"Scores: baseline=%.4f │ best=%s │ var=%s",
		m.snapshot.BaselineScore,
		m.scoreChangeColor(m.snapshot.BestScore),
		m.snapshot.BestVariable,
	))
}

func (m Model) renderRate() string {
	return stylePanel.Width(50).Render(fmt.Sprintf(
		"Engine: scored=%d │ rate=%.1f/s",
		m.snapshot.CandidatesScored,
		m.snapshot.RatePerSec,
	))
}

func (m Model) renderRanking() string {
	if len(m.snapshot.CurrentRanking) == 0 {
		return stylePanel.Render("Ranking: " + styleDim.Render("(waiting for first round)"))
	}

	lines := make([]string, 0, len(m.snapshot.CurrentRanking)+1)
	lines = append(lines, "Ranking:")
	shown := m.snapshot.CurrentRanking
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, r := range shown {
		style := styleDim
		if r.Rank == 0 {
			style = styleGreen
		} else if r.Rank <= 2 {
			style = styleYellow
		}
		lines = append(lines, style.Render(fmt.Sprintf("  %d  %-16s %.4f", r.Rank, r.Variable, r.Score)))
	}
	if len(m.snapshot.CurrentRanking) > 8 {
		lines = append(lines, styleDim.Render(fmt.Sprintf("  … %d more", len(m.snapshot.CurrentRanking)-8)))
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderWinners() string {
	if len(m.snapshot.Winners) == 0 {
		return stylePanel.Render("Selected: " + styleDim.Render("(none yet)"))
	}
	return stylePanel.Render("Selected: " + styleGreen.Render(strings.Join(m.snapshot.Winners, " → ")))
}

func (m Model) renderEvents() string {
	// viewport.Model is a struct, not a pointer - never nil
	// Content is updated in Update() on MsgEvent, not here
	if !m.ready || m.width == 0 {
		return stylePanel.Render("Events: initializing...")
	}
	return stylePanel.Render("Events (scroll):") + "\n" + m.viewport.View()
}

func (m Model) renderFooter() string {
	hints := []string{"q: quit", "p: pause", "d: debug"}
	if m.paused {
		hints = append(hints, "(PAUSED)")
	}

	hintStrings := make([]string, len(hints))
	for i, h := range hints {
		hintStrings[i] = styleDim.Render(h)
	}

	return styleGray.Render("│ " + strings.Join(hintStrings, " │ ") + " │")
}

func (m Model) scoreChangeColor(score float64) string {
	// Compare with previous best score
	if score > m.prevBest {
		return styleGreen.Render(fmt.Sprintf("%.4f ↑", score))
	}
	if score < m.prevBest {
		return styleRed.Render(fmt.Sprintf("%.4f ↓", score))
	}
	return styleDim.Render(fmt.Sprintf("%.4f =", score))
}

func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
