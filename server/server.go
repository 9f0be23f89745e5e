// Package server exposes games over HTTP: a router for health and room
// listings, and a WebSocket endpoint two players per room connect to.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Server routes HTTP traffic into per-room game sessions.
type Server struct {
	cfg      Config
	router   *gin.Engine
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

// New builds a server with its routes registered.
func New(cfg Config) *Server {
	s := &Server{
		cfg:   cfg,
		rooms: make(map[string]*room),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if cfg.AllowAnyOrigin {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}

	router := gin.Default()
	router.GET("/healthz", s.handleHealth)
	router.GET("/api/rooms", s.handleRooms)
	router.GET("/ws", s.handleWebSocket)
	s.router = router
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the HTTP server until the context ends, then shuts
// down within the configured grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Printf("listening on %s", s.cfg.Addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRooms(c *gin.Context) {
	s.mu.Lock()
	ids := maps.Keys(s.rooms)
	slices.Sort(ids)
	list := make([]*room, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.rooms[id])
	}
	s.mu.Unlock()

	infos := make([]RoomInfo, 0, len(list))
	for _, rm := range list {
		infos = append(infos, rm.info())
	}
	c.JSON(http.StatusOK, infos)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	roomID := c.Query("room")
	if roomID == "" {
		roomID = "default"
	}

	rm, err := s.roomFor(roomID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	color, ok := rm.join(conn)
	if !ok {
		writeError(conn, "room is full")
		conn.Close()
		return
	}
	log.Printf("room %s: %s connected", roomID, colorName(color))
	rm.welcome(conn, color)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		rm.handle(conn, msg)
	}

	remaining := rm.leave(conn)
	conn.Close()
	log.Printf("room %s: %s disconnected, %d remaining", roomID, colorName(color), remaining)
	if remaining == 0 {
		s.dropRoom(roomID, rm)
	}
}

func (s *Server) roomFor(id string) (*room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rm, ok := s.rooms[id]; ok {
		return rm, nil
	}
	if s.cfg.MaxRooms > 0 && len(s.rooms) >= s.cfg.MaxRooms {
		return nil, errors.New("server is full")
	}
	rm := newRoom(id)
	s.rooms[id] = rm
	log.Printf("created room %s", id)
	return rm, nil
}

// dropRoom removes a room once its last player left. A client may have
// joined between the leave and this call, so emptiness is re-checked.
func (s *Server) dropRoom(id string, rm *room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.rooms[id]; ok && current == rm && rm.empty() {
		delete(s.rooms, id)
		log.Printf("removed empty room %s", id)
	}
}
