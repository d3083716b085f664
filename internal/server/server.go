package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/physics"
	"github.com/tomz197/bubblesim/internal/sim"
)

// SimServer is the interface viewers use to talk to the simulation server.
// Decouples the view from the concrete Server so it can be tested alone.
type SimServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(cmd Command)
	GetSnapshot() *Snapshot
}

// Recorder receives the body state of every tick after collisions are
// resolved and before popped bodies are respawned.
type Recorder interface {
	Record(tick uint64, bodies []physics.Body) error
}

// Persister stores the group configuration after every change.
type Persister interface {
	Save(cfg sim.Config) error
}

// Server owns the simulation and runs the tick pipeline on a single goroutine.
// Everything else reads immutable snapshots and sends commands.
type Server struct {
	sim          *sim.Simulation
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan Command
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	tickTime  time.Duration
	recorder  Recorder
	persister Persister
	logger    *log.Logger
}

// Compile-time check that Server implements SimServer.
var _ SimServer = (*Server)(nil)

// ClientHandle represents a viewer's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the viewer
}

// ClientEvent represents an event sent from server to viewer.
type ClientEvent struct {
	Type   ClientEventType
	Popped int // For pop events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventPopped ClientEventType = iota
	EventConfigChanged
	EventServerShutdown
)

// Options configures the server. Zero values fall back to defaults.
type Options struct {
	Seed      uint32
	Config    *sim.Config
	TickTime  time.Duration
	Recorder  Recorder
	Persister Persister
	Logger    *log.Logger
}

// NewServer creates a server with a fully populated simulation.
func NewServer(opts Options) *Server {
	cfg := sim.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	tickTime := opts.TickTime
	if tickTime <= 0 {
		tickTime = config.TickTime
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		sim:          sim.New(cfg, sim.Options{Seed: opts.Seed, Gravity: config.Gravity}),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan Command, 64),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		tickTime:     tickTime,
		recorder:     opts.Recorder,
		persister:    opts.Persister,
		logger:       logger.With("component", "server"),
	}

	if s.recorder != nil {
		s.sim.OnResolved(s.record)
	}
	s.createSnapshot(sim.TickStats{})
	return s
}

// Run starts the tick loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("simulation started", "bodies", len(s.sim.Bodies()), "tick", s.tickTime)
	defer s.logger.Info("simulation stopped", "ticks", s.sim.Ticks())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.Step()

		// Frame timing; the simulation itself always advances by a fixed step
		elapsed := time.Since(frameStart)
		if elapsed < s.tickTime {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.tickTime - elapsed):
			}
		}
	}
}

// Step runs exactly one tick: pending registrations and commands, then
// integrate, resolve (handing the result to the recorder) and recycle, then
// publishes a new snapshot.
// It must not be called concurrently with Run.
func (s *Server) Step() sim.TickStats {
	s.processRegistrations()
	s.applyCommands()

	stats := s.sim.Step(config.TimeStep)

	if stats.Popped > 0 {
		s.broadcast(ClientEvent{Type: EventPopped, Popped: stats.Popped})
	}
	s.createSnapshot(stats)
	return stats
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new viewer and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a viewer from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a configuration change for the next tick.
func (s *Server) SendCommand(cmd Command) {
	select {
	case s.commandCh <- cmd:
	default:
		s.logger.Warn("command queue full, dropping", "command", cmd.Type)
	}
}

// GetSnapshot returns the latest published snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// ClientCount returns the number of registered viewers.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("client registered", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.logger.Debug("client unregistered", "id", clientID)
		default:
			return
		}
	}
}

// drainCommands applies every queued command in arrival order.
// Returns true if any of them changed the configuration.
func (s *Server) drainCommands() bool {
	changed := false
	for {
		select {
		case cmd := <-s.commandCh:
			if s.apply(cmd) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// applyCommands drains the command queue, then notifies clients and
// persists the configuration if it changed.
func (s *Server) applyCommands() {
	if !s.drainCommands() {
		return
	}

	s.broadcast(ClientEvent{Type: EventConfigChanged})
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.sim.Config()); err != nil {
		s.logger.Error("failed to save config", "err", err)
	}
}

// record hands the resolved, not yet recycled bodies to the recorder, so
// pops show up in the trace. A failing recorder is detached so the
// simulation keeps running.
func (s *Server) record(tick uint64, bodies []physics.Body) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(tick, bodies); err != nil {
		s.logger.Error("trace recording failed, disabling", "tick", tick, "err", err)
		s.recorder = nil
		s.sim.OnResolved(nil)
	}
}

// broadcast delivers an event to every client without blocking.
func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes an immutable copy of the simulation state.
func (s *Server) createSnapshot(stats sim.TickStats) {
	store := s.sim.Store()

	snapshot := &Snapshot{
		Tick:    s.sim.Ticks(),
		Bodies:  append([]physics.Body(nil), s.sim.Bodies()...),
		Groups:  s.sim.Config(),
		Bounds:  store.Bounds(),
		Popped:  stats.Popped,
		Clients: s.ClientCount(),
	}
	for id := range sim.GroupID(sim.GroupCount) {
		snapshot.Meta[id] = store.Meta(id)
	}

	s.snapshot.Store(snapshot)
}
