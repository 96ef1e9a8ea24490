package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	URIWebsocket = "/ws"
	URIState     = "/state"
	URIMetrics   = "/metrics"

	writeTimeout = time.Second
	clientQueue  = 16
)

type Server struct {
	router   *way.Router
	hub      *Hub
	upgrader *websocket.Upgrader
	metrics  http.Handler
	log      *log.Entry
}

// NewServer routes the spectator endpoints. metrics may be nil.
func NewServer(hub *Hub, metrics http.Handler, logger *log.Entry) *Server {
	s := &Server{
		hub:      hub,
		upgrader: &websocket.Upgrader{},
		metrics:  metrics,
		log:      logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URIWebsocket, s.handleWebsocket())
	s.router.HandleFunc("GET", URIState, s.handleState())
	if s.metrics != nil {
		s.router.Handle("GET", URIMetrics, s.metrics)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.WithField("addr", addr).Info("spectator server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return errors.Wrap(err, "spectator server")
	}
}

func (s *Server) handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := s.hub.Latest()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			s.log.WithError(err).Warn("encode state")
		}
	}
}

func (s *Server) handleWebsocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade")
			return
		}

		c := &client{send: make(chan Message, clientQueue)}
		select {
		case s.hub.register <- c:
		case <-r.Context().Done():
			conn.Close()
			return
		}
		go s.readLoop(conn, c)
		s.writeLoop(conn, c)
	}
}

// readLoop discards client messages; it ends the client when the socket closes
func (s *Server) readLoop(conn *websocket.Conn, c *client) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			select {
			case s.hub.unregister <- c:
			case <-time.After(writeTimeout):
			}
			return
		}
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, c *client) {
	defer conn.Close()
	for msg := range c.send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			s.log.WithError(err).Debug("spectator write")
			return
		}
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
}
