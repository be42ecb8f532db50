package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	spectatorBuffer = 8
	writeTimeout    = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// spectator is one websocket client receiving snapshots.
type spectator struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func (sp *spectator) close() {
	sp.once.Do(func() {
		close(sp.send)
	})
}

// spectators tracks connected clients.
type spectators struct {
	mu    sync.RWMutex
	conns map[string]*spectator
}

func newSpectators() *spectators {
	return &spectators{conns: make(map[string]*spectator)}
}

func (m *spectators) add(sp *spectator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[sp.id] = sp
}

func (m *spectators) remove(id string) {
	m.mu.Lock()
	sp, ok := m.conns[id]
	delete(m.conns, id)
	m.mu.Unlock()
	if ok {
		sp.close()
	}
}

func (m *spectators) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// broadcast queues data on every spectator, dropping it for those whose
// buffer is full.
func (m *spectators) broadcast(data []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sp := range m.conns {
		select {
		case sp.send <- data:
		default:
		}
	}
}

func (m *spectators) closeAll() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]*spectator)
	m.mu.Unlock()
	for _, sp := range conns {
		sp.close()
	}
}

// watch upgrades to a websocket and streams snapshots, starting with the
// current one. Messages from the client are ignored.
func (s *Server) watch(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.V(1).Info("websocket upgrade failed", "error", err.Error())
		return
	}

	sp := &spectator{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, spectatorBuffer),
	}

	s.mu.RLock()
	sp.send <- s.latest
	s.mu.RUnlock()
	s.spectators.add(sp)
	s.log.V(1).Info("spectator joined", "id", sp.id, "count", s.spectators.count())

	go s.writeLoop(sp)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	s.spectators.remove(sp.id)
	s.log.V(1).Info("spectator left", "id", sp.id)
}

func (s *Server) writeLoop(sp *spectator) {
	defer sp.ws.Close()
	for data := range sp.send {
		_ = sp.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := sp.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.V(1).Info("spectator write failed", "id", sp.id, "error", err.Error())
			return
		}
	}
	_ = sp.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
