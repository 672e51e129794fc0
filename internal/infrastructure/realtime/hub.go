package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

const (
	// DefaultBufferSize is the per-subscriber queue length used when none is configured.
	DefaultBufferSize = 16

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ErrHubClosed is returned by Serve once the hub has been closed.
var ErrHubClosed = errors.New("realtime hub closed")

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to websocket subscribers. Every subscriber owns a
// bounded queue; when it is full the event is dropped for that subscriber
// only, so Publish never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      bool
	bufferSize  int
	logger      usecasecontract.IAppLogger
	metrics     *metrics.Metrics
}

// NewHub creates a hub. m may be nil.
func NewHub(bufferSize int, logger usecasecontract.IAppLogger, m *metrics.Metrics) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		bufferSize:  bufferSize,
		logger:      logger,
		metrics:     m,
	}
}

var (
	_ contract.IBroadcaster = (*Hub)(nil)
	_ FrameDeliverer        = (*Hub)(nil)
)

// Publish encodes the event and delivers it to every local subscriber.
func (h *Hub) Publish(event string, payload any) {
	frame, err := EncodeFrame(event, payload)
	if err != nil {
		h.logger.Errorf("realtime: %v", err)
		return
	}
	h.Deliver(frame)
}

// Deliver enqueues an already encoded frame on every subscriber queue.
func (h *Hub) Deliver(frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subscribers {
		select {
		case s.send <- frame:
		default:
			h.metrics.ObserveDropped()
			h.logger.Warnf("realtime: subscriber %s queue full, dropping event", s.id)
		}
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Serve registers conn as a subscriber and blocks until it disconnects.
func (h *Hub) Serve(conn *websocket.Conn) error {
	s := &subscriber{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, h.bufferSize),
	}
	if !h.register(s) {
		conn.Close()
		return ErrHubClosed
	}
	h.logger.Debugf("realtime: subscriber %s connected", s.id)

	go s.writePump()
	s.readPump(h.logger)

	h.unregister(s)
	h.logger.Debugf("realtime: subscriber %s disconnected", s.id)
	return nil
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.subscribers {
		delete(h.subscribers, s)
		close(s.send)
	}
	h.metrics.SetSubscribers(0)
}

func (h *Hub) register(s *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subscribers[s] = struct{}{}
	h.metrics.SetSubscribers(len(h.subscribers))
	return true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[s]; !ok {
		return
	}
	delete(h.subscribers, s)
	// no Deliver can hold the read lock any more, so the queue is safe to close
	close(s.send)
	h.metrics.SetSubscribers(len(h.subscribers))
}

func (s *subscriber) readPump(logger usecasecontract.IAppLogger) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debugf("realtime: subscriber %s read error: %v", s.id, err)
			}
			return
		}
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
