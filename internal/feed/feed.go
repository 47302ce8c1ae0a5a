// Package feed broadcasts the game event stream to websocket observers.
// The feed is strictly one-way: observers watch, they never act.
package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/game"
)

type wireEvent struct {
	Type string    `json:"type"`
	Time time.Time `json:"time"`
	Data any       `json:"data,omitempty"`
}

type wirePlayer struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

// Server accepts websocket observers and relays game events to them. It
// subscribes to the engine bus; event delivery is buffered so a slow
// observer can never stall the game, events are dropped instead.
type Server struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	dropped int

	events chan wireEvent
	done   chan struct{}
	closed sync.Once

	httpServer *http.Server
}

// NewServer creates a feed server bound to addr. The broadcast pump starts
// immediately; call Start to listen for observers.
func NewServer(addr string, logger *log.Logger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger.WithPrefix("feed"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan wireEvent, 256),
		done:    make(chan struct{}),
	}
	go s.broadcastLoop()
	return s
}

// OnEvent implements game.EventSubscriber. It never blocks the publisher.
func (s *Server) OnEvent(event game.GameEvent) {
	select {
	case s.events <- encode(event):
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
}

// Handler returns the websocket endpoint for embedding in another mux.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWS)
}

// Start listens for observer connections. It blocks until Stop is called or
// the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleWS)
	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}
	s.logger.Info("feed listening", "addr", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop closes all observer connections and shuts the listener down.
func (s *Server) Stop() {
	s.closed.Do(func() { close(s.done) })

	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	count := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("observer connected", "remote", conn.RemoteAddr(), "observers", count)

	// Observers send nothing; the read loop just detects disconnects.
	go func() {
		defer s.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			payload, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("event marshal failed", "type", ev.Type, "err", err)
				continue
			}

			s.mu.Lock()
			conns := make([]*websocket.Conn, 0, len(s.clients))
			for conn := range s.clients {
				conns = append(conns, conn)
			}
			s.mu.Unlock()

			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					s.logger.Debug("dropping observer", "remote", conn.RemoteAddr(), "err", err)
					s.removeClient(conn)
				}
			}
		}
	}
}

// Dropped reports how many events were discarded due to backpressure.
func (s *Server) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func encode(event game.GameEvent) wireEvent {
	wire := wireEvent{Type: event.EventType().String(), Time: event.Timestamp()}

	switch ev := event.(type) {
	case game.HandStartEvent:
		players := make([]wirePlayer, 0, len(ev.Players))
		for _, p := range ev.Players {
			players = append(players, wirePlayer{Seat: p.Seat, Name: p.Name, Chips: p.Chips})
		}
		wire.Data = map[string]any{
			"hand_id":     ev.HandID,
			"hand_number": ev.HandNumber,
			"button":      ev.Button,
			"small_blind": ev.SmallBlind,
			"big_blind":   ev.BigBlind,
			"ante":        ev.Ante,
			"players":     players,
		}

	case game.PlayerActionEvent:
		wire.Data = map[string]any{
			"hand_id": ev.HandID,
			"player":  ev.Record.Name,
			"street":  ev.Record.Street.String(),
			"action":  ev.Record.Action.String(),
			"amount":  ev.Record.Amount,
			"pot":     ev.PotAfter,
		}

	case game.StreetChangeEvent:
		wire.Data = map[string]any{
			"hand_id": ev.HandID,
			"street":  ev.Street.String(),
			"board":   cardStrings(ev.Board),
		}

	case game.AwaitingActionEvent:
		wire.Data = map[string]any{
			"hand_id":  ev.HandID,
			"player":   ev.PlayerID,
			"seat":     ev.Seat,
			"to_call":  ev.ToCall,
			"pot_odds": ev.PotOdds,
		}

	case game.HandEndEvent:
		wire.Data = map[string]any{
			"hand_id":     ev.Result.HandID,
			"hand_number": ev.Result.HandNumber,
			"winners":     ev.Result.Winners,
			"losers":      ev.Result.Losers,
			"pot":         ev.Result.Pot,
			"board":       cardStrings(ev.Result.Board),
			"settlement":  ev.Result.Settlement,
			"showdown":    ev.Result.Showdown,
		}
	}

	return wire
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
