package telemetry

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"world-engine/nav"
	"world-engine/optimize"
	"world-engine/scene"
)

// Snapshot is one observation pushed to connected clients.
type Snapshot struct {
	Time   string                    `json:"time"`
	Stats  optimize.PerformanceStats `json:"stats"`
	Viewer nav.Info                  `json:"viewer"`
	Clock  string                    `json:"clock"`
	Meshes []scene.MeshInfo          `json:"meshes,omitempty"`
}

// Server pushes performance snapshots to WebSocket clients. Snapshots are
// value copies; the server never touches live engine state.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	last    Snapshot
	hasLast bool
}

func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start launches the HTTP listener in the background.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", s.handleStats)
	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		log.Printf("telemetry: listening on ws://%s/stats", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("telemetry: %v", err)
		}
	}()
}

// Stop closes the listener and all client connections.
func (s *Server) Stop() error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("telemetry: upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	last, hasLast := s.last, s.hasLast
	s.mu.Unlock()

	log.Printf("telemetry: client connected from %s", conn.RemoteAddr())

	// New clients get the latest snapshot immediately
	if hasLast {
		if err := conn.WriteJSON(last); err != nil {
			s.drop(conn)
			return
		}
	}

	// Drain the read side so close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

// Publish broadcasts a snapshot to every connected client.
func (s *Server) Publish(snap Snapshot) {
	snap.Time = time.Now().Format(time.RFC3339)

	s.mu.Lock()
	s.last = snap
	s.hasLast = true
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(snap); err != nil {
			s.drop(conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
}

// CollectMeshInfo summarises the geometry of every renderable node. The
// result is a value snapshot safe to hand to Publish.
func CollectMeshInfo(sc *scene.Scene) []scene.MeshInfo {
	var infos []scene.MeshInfo
	for _, n := range sc.RenderableNodes() {
		infos = append(infos, n.Mesh.Info())
	}
	return infos
}
