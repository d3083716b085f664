package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/server"
	"github.com/tomz197/bubblesim/internal/storage"
	"github.com/tomz197/bubblesim/internal/view"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDataDir     = "/app/data"

	shutdownWait = 15 * time.Second
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dataDir := config.GetEnv("BUBBLES_DATA_DIR", defaultDataDir)

	logger, err := config.NewLogger(os.Stderr, "ssh", config.GetEnv("BUBBLES_LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("Ignoring log level", "err", err)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "dataDir", dataDir)

	manager := storage.NewManager(dataDir)
	cfg, err := manager.LoadOrDefault()
	switch {
	case err != nil:
		logger.Warn("Using default configuration", "path", manager.FilePath(), "err", err)
	case manager.Exists():
		logger.Info("Loaded saved configuration", "path", manager.FilePath())
	}

	// One simulation shared by every session
	seed := config.GetEnvUint32("BUBBLES_SEED", uint32(time.Now().UnixNano()))
	simServer := server.NewServer(server.Options{
		Seed:      seed,
		Config:    &cfg,
		TickTime:  config.GetEnvDuration("BUBBLES_TICK_TIME", config.TickTime),
		Persister: manager,
		Logger:    logger,
	})
	ctx, cancelServer := context.WithCancel(context.Background())
	go simServer.Run(ctx)
	logger.Info("Simulation server started", "seed", seed)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			bm.Middleware(sessionHandler(simServer, logger)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY so key presses reach the server without batching
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Tell viewers first and give them time to leave
	simServer.Shutdown(shutdownWait)
	cancelServer()
	logger.Info("Simulation server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// sessionHandler starts one viewer per SSH session on the shared server.
func sessionHandler(srv *server.Server, logger *log.Logger) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		logger.Info("New session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		m := view.New(srv, view.Options{
			Username: sess.User(),
			Renderer: bm.MakeRenderer(sess),
			Logger:   logger,
			Width:    pty.Window.Width,
			Height:   pty.Window.Height,
		})

		// A dropped connection never delivers the quit key
		go func() {
			<-sess.Context().Done()
			m.Close()
			logger.Info("Session ended", "user", sess.User())
		}()

		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
