package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/bubblesim/internal/audio"
	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/draw"
	"github.com/tomz197/bubblesim/internal/server"
	"github.com/tomz197/bubblesim/internal/sim"
	"github.com/tomz197/bubblesim/internal/storage"
	"github.com/tomz197/bubblesim/internal/trace"
	"github.com/tomz197/bubblesim/internal/view"
)

const (
	defaultTicks  = 1000
	defaultVolume = 0.4
	logFileName   = "bubbles.log"
)

func main() {
	os.Exit(start(os.Args[1:], os.Stdout, os.Stderr))
}

// start runs the program and returns the exit code once every deferred
// cleanup has run.
func start(args []string, stdout *os.File, stderr io.Writer) int {
	flags := flag.NewFlagSet("bubbles", flag.ContinueOnError)
	flags.SetOutput(stderr)
	seed := flags.Uint("seed", uint(config.GetEnvUint32("BUBBLES_SEED", 0)), "random seed (0 picks one from the clock)")
	dataDir := flags.String("data-dir", config.GetEnv("BUBBLES_DATA_DIR", defaultDataDir()), "directory holding the saved configuration")
	record := flags.String("record", config.GetEnv("BUBBLES_RECORD", ""), "record every tick into this SQLite file")
	sound := flags.Bool("sound", config.GetEnvBool("BUBBLES_SOUND", false), "play a sound when bubbles pop")
	logLevel := flags.String("log-level", config.GetEnv("BUBBLES_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	ticks := flags.Int("ticks", config.GetEnvInt("BUBBLES_TICKS", defaultTicks), "ticks to run when headless")
	tickTime := flags.Duration("tick-time", config.GetEnvDuration("BUBBLES_TICK_TIME", config.TickTime), "wall-clock time between ticks in the viewer")
	headless := flags.Bool("headless", false, "run without a viewer even on a terminal")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	interactive := !*headless && term.IsTerminal(int(stdout.Fd()))

	// The viewer owns the terminal, so logs go to a file next to the config.
	var logOut = stderr
	if interactive {
		f, err := openLogFile(*dataDir)
		if err != nil {
			logOut = io.Discard
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger, err := config.NewLogger(logOut, "bubbles", *logLevel)
	if err != nil {
		logger.Warn("Ignoring log level", "err", err)
	}

	if err := run(logger, options{
		seed:        uint32(*seed),
		dataDir:     *dataDir,
		record:      *record,
		sound:       *sound,
		ticks:       *ticks,
		tickTime:    *tickTime,
		interactive: interactive,
		out:         stdout,
	}); err != nil {
		logger.Error("Exiting", "err", err)
		return 1
	}
	return 0
}

type options struct {
	seed        uint32
	dataDir     string
	record      string
	sound       bool
	ticks       int
	tickTime    time.Duration
	interactive bool
	out         io.Writer
}

func run(logger *log.Logger, opts options) error {
	if opts.seed == 0 {
		opts.seed = uint32(time.Now().UnixNano())
	}

	manager := storage.NewManager(opts.dataDir)
	cfg, err := manager.LoadOrDefault()
	switch {
	case err != nil:
		logger.Warn("Using default configuration", "path", manager.FilePath(), "err", err)
	case manager.Exists():
		logger.Info("Loaded saved configuration", "path", manager.FilePath())
	}

	srvOpts := server.Options{
		Seed:      opts.seed,
		TickTime:  opts.tickTime,
		Config:    &cfg,
		Persister: manager,
		Logger:    logger,
	}
	if opts.record != "" {
		rec, err := trace.Open(opts.record)
		if err != nil {
			return fmt.Errorf("open trace: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("Closing trace", "err", err)
			}
		}()
		srvOpts.Recorder = rec
	}

	srv := server.NewServer(srvOpts)
	logger.Info("Simulation ready", "seed", opts.seed, "bodies", len(srv.GetSnapshot().Bodies))

	if !opts.interactive {
		return runHeadless(srv, opts.ticks, logger, opts.out)
	}
	return runViewer(srv, opts.sound, logger)
}

func runViewer(srv *server.Server, sound bool, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	var player audio.Player = audio.Nop{}
	if sound {
		sp, err := audio.NewSpeaker(defaultVolume)
		if err != nil {
			logger.Warn("Sound disabled", "err", err)
		} else {
			defer sp.Close()
			player = sp
		}
	}

	m := view.New(srv, view.Options{
		Username: config.GetEnv("USER", "local"),
		Player:   player,
		Logger:   logger,
	})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// runHeadless steps the server without a frame clock and prints the final
// frame once done.
func runHeadless(srv *server.Server, ticks int, logger *log.Logger, out io.Writer) error {
	var total sim.TickStats
	for i := range max(ticks, 0) {
		st := srv.Step()
		total.Popped += st.Popped
		total.Recycled += st.Recycled
		if (i+1)%100 == 0 {
			logger.Debug("Progress", "tick", i+1, "popped", total.Popped, "recycled", total.Recycled)
		}
	}

	snap := srv.GetSnapshot()
	logger.Info("Headless run finished",
		"ticks", snap.Tick,
		"bodies", len(snap.Bodies),
		"popped", total.Popped,
		"recycled", total.Recycled,
	)
	for id := range sim.GroupID(sim.GroupCount) {
		logger.Info("Group", "name", snap.Meta[id].Name, "live", snap.CountGroup(id), "config", snap.Group(id))
	}

	// One column per arena unit, two arena rows per terminal row
	cols := int(snap.Bounds.Width()) + 1
	rows := (int(snap.Bounds.Height()) + 2) / 2
	canvas := draw.NewScaledCanvas(cols, rows, float64(cols), float64(rows*2))
	view.DrawBodies(canvas, snap.Bodies, nil)
	return canvas.Render(out)
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "bubblesim")
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
