package varimp

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"hb_varimp/logx"

	"github.com/gorilla/websocket"
)

// WSHub manages WebSocket connections and broadcasts
type WSHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan WSMessage
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	running    bool
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type string      `json:"type"` // "baseline", "bootstrap", "round", "ranking", "status", etc.
	Data interface{} `json:"data"` // Payload data
	Time int64       `json:"time"` // Unix timestamp
}

var wsHub *WSHub
var webDashboardEnabled = false

// WSMessageType constants
const (
	MsgTypeBaseline  = "baseline"
	MsgTypeBootstrap = "bootstrap"
	MsgTypeRound     = "round"
	MsgTypeRanking   = "ranking"
	MsgTypeFinish    = "finish"
	MsgTypeStatus    = "status"
	MsgTypeError     = "error"
	MsgTypeWarning   = "warning"
)

// InitWebServer initializes the WebSocket hub
func InitWebServer() {
	wsHub = &WSHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		running:    true,
	}
	go wsHub.run()
}

// EnableWebDashboard turns on broadcasting. Call before StartWebServer.
func EnableWebDashboard(enabled bool) {
	webDashboardEnabled = enabled
}

// StartWebServer starts the HTTP/WebSocket server
func StartWebServer(port int) error {
	InitWebServer()

	mux := http.NewServeMux()

	// Serve static files (dashboard.html)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "dashboard.html")
	})

	// WebSocket endpoint
	mux.HandleFunc("/ws", wsHub.handleWebSocket)

	// CORS middleware wrapper
	handler := corsMiddleware(mux)

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("\n%s Dashboard running at http://localhost%s\n", logx.Info("ℹ"), addr)
	fmt.Printf("%s Open this URL in your browser to watch the selection run\n", logx.Info("ℹ"))
	fmt.Printf("%s Press Ctrl+C to stop\n", logx.Info("ℹ"))

	return http.ListenAndServe(addr, handler)
}

// handleWebSocket handles WebSocket connections
func (hub *WSHub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP to WebSocket
	ws, err := websocket.Upgrade(w, r, nil, 0, 0)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	// Register client
	hub.register <- ws
	defer func() {
		hub.unregister <- ws
		ws.Close()
	}()

	// Send buffered messages for new connections
	hub.sendBufferedMessages(ws)

	// Read messages from client
	for {
		var msg WSMessage
		err := ws.ReadJSON(&msg)
		if err != nil {
			break
		}
		// Client can send ping/heartbeat if needed
	}
}

// run processes messages in the hub
func (hub *WSHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.mutex.Lock()
			hub.clients[client] = true
			hub.mutex.Unlock()

		case client := <-hub.unregister:
			hub.mutex.Lock()
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
			}
			hub.mutex.Unlock()

		case message := <-hub.broadcast:
			hub.mutex.RLock()
			for client := range hub.clients {
				err := client.WriteJSON(message)
				if err != nil {
					// Client disconnected, will be cleaned up by unregister
					continue
				}
			}
			hub.mutex.RUnlock()
		}
	}
}

// Broadcast sends a message to all connected clients
func Broadcast(msgType string, data interface{}) {
	if !webDashboardEnabled || wsHub == nil {
		return
	}

	msg := WSMessage{
		Type: msgType,
		Data: data,
		Time: time.Now().Unix(),
	}

	select {
	case wsHub.broadcast <- msg:
		// Message queued
	default:
		// Channel full, skip this message (backpressure protection)
	}
}

// sendBufferedMessages sends recent history to new connections
func (hub *WSHub) sendBufferedMessages(ws *websocket.Conn) {
	// Send current status
	statusMsg := WSMessage{
		Type: MsgTypeStatus,
		Data: map[string]interface{}{
			"status": "running",
			"msg":    "Dashboard connected",
		},
		Time: time.Now().Unix(),
	}
	ws.WriteJSON(statusMsg)
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port starting from startPort
func FindAvailablePort(startPort int) int {
	for port := startPort; port < 9000; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port
		}
	}
	return startPort // fallback
}

// Message structures for WebSocket payloads

// BaselineData announces a started run
type BaselineData struct {
	Method        string  `json:"method"`
	BaselineScore float64 `json:"baseline_score"`
	Variables     int     `json:"variables"`
	Rounds        int     `json:"rounds"`
	Bootstrap     int     `json:"bootstrap"`
	Jobs          int     `json:"jobs"`
}

// BootstrapData represents one finished bootstrap pass
type BootstrapData struct {
	Round      int `json:"round"`
	Rounds     int `json:"rounds"`
	Pass       int `json:"pass"`
	Passes     int `json:"passes"`
	Candidates int `json:"candidates"`
}

// RoundData represents a completed selection round
type RoundData struct {
	Round       int     `json:"round"`
	Rounds      int     `json:"rounds"`
	Winner      string  `json:"winner"`
	Score       float64 `json:"score"`
	ElapsedMs   int64   `json:"elapsed_ms"`
	RatePerSec  float64 `json:"rate_per_sec"`
	TotalScored int64   `json:"total_scored"`
}

// RankEntryData is one variable's rank within a round
type RankEntryData struct {
	Variable string  `json:"variable"`
	Rank     int     `json:"rank"`
	Score    float64 `json:"score"`
}

// RankingData is the full ranking of a round
type RankingData struct {
	Round   int             `json:"round"`
	Entries []RankEntryData `json:"entries"`
}

// FinishData summarises a completed run
type FinishData struct {
	Method    string   `json:"method"`
	Rounds    int      `json:"rounds"`
	Winners   []string `json:"winners"`
	ElapsedMs int64    `json:"elapsed_ms"`
}

// Helper functions for sending specific message types

func SendBaseline(method string, baseline float64, variables, rounds, bootstrap, jobs int) {
	data := BaselineData{
		Method:        method,
		BaselineScore: baseline,
		Variables:     variables,
		Rounds:        rounds,
		Bootstrap:     bootstrap,
		Jobs:          jobs,
	}
	Broadcast(MsgTypeBaseline, data)
}

func SendBootstrap(round, rounds, pass, passes, candidates int) {
	data := BootstrapData{
		Round:      round,
		Rounds:     rounds,
		Pass:       pass,
		Passes:     passes,
		Candidates: candidates,
	}
	Broadcast(MsgTypeBootstrap, data)
}

func SendRoundResult(round, rounds int, winner string, score float64, elapsed time.Duration, ratePerSec float64, totalScored int64) {
	data := RoundData{
		Round:       round,
		Rounds:      rounds,
		Winner:      winner,
		Score:       score,
		ElapsedMs:   elapsed.Milliseconds(),
		RatePerSec:  ratePerSec,
		TotalScored: totalScored,
	}
	Broadcast(MsgTypeRound, data)
}

func SendRanking(round int, ranks map[string]VariableRank) {
	entries := make([]RankEntryData, 0, len(ranks))
	for name, vr := range ranks {
		entries = append(entries, RankEntryData{Variable: name, Rank: vr.Rank, Score: vr.Score})
	}
	Broadcast(MsgTypeRanking, RankingData{Round: round, Entries: entries})
}

func SendFinish(result *ImportanceResult, elapsed time.Duration) {
	data := FinishData{
		Method:    result.Method,
		Rounds:    result.NumRounds(),
		Winners:   result.Winners(),
		ElapsedMs: elapsed.Milliseconds(),
	}
	Broadcast(MsgTypeFinish, data)
}

func SendStatus(status, msg string) {
	data := map[string]interface{}{
		"status": status,
		"msg":    msg,
	}
	Broadcast(MsgTypeStatus, data)
}

func SendError(msg string) {
	Broadcast(MsgTypeError, msg)
}
