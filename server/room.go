package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cyberfrank/chess3d/chess"
	"github.com/cyberfrank/chess3d/game"
)

// room couples one session with the connections playing it. The session is
// not safe for concurrent use and a connection tolerates only one writer
// at a time, so board accesses and conn writes both happen under mu.
type room struct {
	id string

	mu      sync.Mutex
	session *game.Session
	clients map[*websocket.Conn]chess.Color
}

func newRoom(id string) *room {
	return &room{
		id:      id,
		session: game.NewSession(),
		clients: make(map[*websocket.Conn]chess.Color),
	}
}

// join seats a connection on the free side, White first. It reports false
// when both seats are taken.
func (r *room) join(conn *websocket.Conn) (chess.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.clients) >= 2 {
		return chess.White, false
	}
	color := chess.White
	for _, taken := range r.clients {
		if taken == chess.White {
			color = chess.Black
		}
	}
	r.clients[conn] = color
	return color, true
}

// leave removes a connection and returns how many players remain.
func (r *room) leave(conn *websocket.Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, conn)
	return len(r.clients)
}

func (r *room) empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients) == 0
}

// welcome sends the joining client its seat and the full state, and lets
// the rest of the room know the player count changed.
func (r *room) welcome(conn *websocket.Conn, color chess.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := conn.WriteJSON(r.stateLocked("welcome", colorName(color))); err != nil {
		log.Printf("room %s: send welcome: %v", r.id, err)
		return
	}
	for client := range r.clients {
		if client == conn {
			continue
		}
		if err := client.WriteJSON(r.stateLocked("state", "")); err != nil {
			log.Printf("room %s: dropping client: %v", r.id, err)
			delete(r.clients, client)
			client.Close()
		}
	}
}

// handle dispatches one client frame.
func (r *room) handle(conn *websocket.Conn, msg clientMessage) {
	switch msg.Type {
	case "move":
		r.handleMove(conn, msg.From, msg.To)
	case "select":
		r.handleSelect(conn, msg.At)
	case "state":
		r.sendState(conn)
	default:
		r.mu.Lock()
		writeError(conn, "unknown message type")
		r.mu.Unlock()
	}
}

func (r *room) handleMove(conn *websocket.Conn, from, to game.Coord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.clients[conn]
	if !ok {
		return
	}
	if r.session.State().Terminal() {
		writeError(conn, game.ErrGameOver.Error())
		return
	}
	if color != r.session.Turn() {
		writeError(conn, "not your turn")
		return
	}

	out, err := r.session.AttemptMove(from, to)
	if err != nil {
		writeError(conn, err.Error())
		return
	}
	log.Printf("room %s: %s played %v%v (%s)", r.id, colorName(color), from, to, out.KindName)

	update := updateMessage{
		Type:     "update",
		Move:     out,
		Board:    r.session.Grid(),
		Turn:     colorName(r.session.Turn()),
		State:    out.StateName,
		InCheck:  r.session.InCheck(),
		Captures: r.capturesLocked(),
	}
	if out.State.Terminal() {
		update.Result = resultText(out.State)
		log.Printf("room %s: %s", r.id, update.Result)
	}
	r.broadcastLocked(update)
}

func (r *room) handleSelect(conn *websocket.Conn, at game.Coord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.clients[conn]
	if !ok {
		return
	}
	if color != r.session.Turn() {
		writeError(conn, "not your turn")
		return
	}
	dests, err := r.session.Select(at)
	if err != nil {
		writeError(conn, err.Error())
		return
	}
	msg := highlightMessage{Type: "highlight", At: at, Destinations: dests}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("room %s: send highlight: %v", r.id, err)
	}
}

func (r *room) sendState(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := conn.WriteJSON(r.stateLocked("state", "")); err != nil {
		log.Printf("room %s: send state: %v", r.id, err)
	}
}

func (r *room) info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{ID: r.id, Players: len(r.clients), State: r.session.State().String()}
}

// stateLocked builds a state frame. Callers hold mu.
func (r *room) stateLocked(typ, yourColor string) stateMessage {
	return stateMessage{
		Type:      typ,
		YourColor: yourColor,
		Board:     r.session.Grid(),
		Turn:      colorName(r.session.Turn()),
		State:     r.session.State().String(),
		InCheck:   r.session.InCheck(),
		Players:   len(r.clients),
		Captures:  r.capturesLocked(),
	}
}

func (r *room) capturesLocked() map[string]int {
	return map[string]int{
		"white": r.session.Captures(chess.White),
		"black": r.session.Captures(chess.Black),
	}
}

// broadcastLocked writes a frame to every client, dropping the dead ones.
// Callers hold mu.
func (r *room) broadcastLocked(v interface{}) {
	for client := range r.clients {
		if err := client.WriteJSON(v); err != nil {
			log.Printf("room %s: dropping client: %v", r.id, err)
			delete(r.clients, client)
			client.Close()
		}
	}
}

func writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(errorMessage{Type: "error", Message: message}); err != nil {
		log.Printf("send error message: %v", err)
	}
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}

func resultText(s chess.GameState) string {
	switch s {
	case chess.WhiteWinsByCheckmate:
		return "Checkmate. White wins."
	case chess.BlackWinsByCheckmate:
		return "Checkmate. Black wins."
	case chess.DrawByStalemate:
		return "Stalemate. Draw."
	default:
		return ""
	}
}
