// Package view is the bubbletea front end: it draws server snapshots on a
// half-block canvas and turns key presses into configuration commands.
package view

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/bubblesim/internal/audio"
	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/draw"
	"github.com/tomz197/bubblesim/internal/input"
	"github.com/tomz197/bubblesim/internal/physics"
	"github.com/tomz197/bubblesim/internal/server"
)

// Canvas inks
const (
	inkBody     uint8 = 1
	inkSelected uint8 = 2
)

// footerLines is the space reserved under the arena for the HUD and status.
const footerLines = 2

type frameMsg time.Time

type eventMsg server.ClientEvent

type eventsClosedMsg struct{}

// Options configures a Model.
type Options struct {
	Username string
	Player   audio.Player
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
	Width    int
	Height   int
}

// Model is the bubbletea model for one viewer.
type Model struct {
	server   server.SimServer
	handle   *server.ClientHandle
	player   audio.Player
	logger   *log.Logger
	styles   Styles
	canvas   *draw.Canvas
	snapshot *server.Snapshot

	menu       Menu
	width      int
	height     int
	soundOn    bool
	shutdownAt time.Time
	quitting   bool
	closeOnce  sync.Once
}

var _ tea.Model = (*Model)(nil)

// New registers a viewer with the server and returns its model.
func New(srv server.SimServer, opts Options) *Model {
	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	_, isNop := player.(audio.Nop)
	m := &Model{
		server:   srv,
		handle:   srv.RegisterClient(opts.Username),
		player:   player,
		logger:   logger.With("user", opts.Username),
		styles:   NewStyles(renderer),
		canvas:   draw.NewScaledCanvas(config.ArenaWidth, config.ArenaHeight/2, config.ArenaWidth, config.ArenaHeight),
		snapshot: srv.GetSnapshot(),
		menu:     NewMenu(),
		soundOn:  !isNop,
	}
	if opts.Width > 0 && opts.Height > 0 {
		m.resize(opts.Width, opts.Height)
	}
	return m
}

// Init starts the frame clock and the event listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), waitForEvent(m.handle.EventsCh))
}

// Update handles key presses, resizes, frames and server events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.snapshot = m.server.GetSnapshot()
		if !m.shutdownAt.IsZero() && time.Since(m.shutdownAt) > shutdownDisplay {
			return m, m.quit()
		}
		return m, frameTick()

	case eventMsg:
		m.handleEvent(server.ClientEvent(msg))
		return m, waitForEvent(m.handle.EventsCh)

	case eventsClosedMsg:
		return m, m.quit()
	}
	return m, nil
}

var shutdownDisplay = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))

func (m *Model) handleKey(key string) tea.Cmd {
	action := input.Map(key)
	switch action {
	case input.ActionNone:
		return nil
	case input.ActionQuit:
		return m.quit()
	case input.ActionToggleSound:
		m.soundOn = m.player.ToggleMute()
		m.logger.Debug("sound toggled", "on", m.soundOn)
		return nil
	}

	if cmd, ok := m.menu.Apply(action); ok {
		m.server.SendCommand(cmd)
	}
	return nil
}

func (m *Model) handleEvent(ev server.ClientEvent) {
	switch ev.Type {
	case server.EventPopped:
		m.player.Pop(ev.Popped)
	case server.EventServerShutdown:
		if m.shutdownAt.IsZero() {
			m.shutdownAt = time.Now()
		}
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

// Close unregisters the viewer. Safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.server.UnregisterClient(m.handle.ID)
	})
}

// resize fits the arena into the terminal, keeping its aspect ratio.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols, rows := fitArena(width, height-footerLines)
	m.canvas.Resize(cols, rows)
}

// fitArena returns the largest canvas with the arena's aspect that fits
// in cols x rows terminal cells. One cell is one pixel wide and two tall.
func fitArena(cols, rows int) (int, int) {
	natW, natH := float64(config.ArenaWidth), float64(config.ArenaHeight)/2
	scale := math.Min(float64(cols)/natW, float64(rows)/natH)
	return max(1, int(natW*scale)), max(1, int(natH*scale))
}

// View renders the arena, HUD and status line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.shutdownAt.IsZero() {
		banner := m.styles.Banner.Render("Server is shutting down.\nThanks for watching!")
		return m.place(banner)
	}

	m.drawBodies()
	arena := m.canvas.Paint(m.paint)

	var b strings.Builder
	b.WriteString(arena)
	b.WriteByte('\n')
	b.WriteString(m.hudLine())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	return m.place(b.String())
}

func (m *Model) place(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) paint(ink uint8, run string) string {
	switch ink {
	case inkBody:
		return m.styles.Arena.Render(run)
	case inkSelected:
		return m.styles.Selected.Render(run)
	default:
		return run
	}
}

func (m *Model) drawBodies() {
	m.canvas.Clear()
	if m.snapshot == nil {
		return
	}
	DrawBodies(m.canvas, m.snapshot.Bodies, m.menu.Highlighted)
}

// DrawBodies draws every body as a circle outline onto c. Bodies whose
// group is highlighted get a second, inner ring in the selected ink.
// A nil highlighted draws every body plainly.
func DrawBodies(c *draw.Canvas, bodies []physics.Body, highlighted func(group int) bool) {
	for i := range bodies {
		b := &bodies[i]
		x := math.Round(b.Pos.X())
		y := math.Round(b.Pos.Y())
		r := max(math.Round(b.Radius), 1)

		// Fully offscreen
		if x+r < 0 || x-r >= config.ArenaWidth || y+r < 0 || y-r >= config.ArenaHeight {
			continue
		}

		if highlighted != nil && highlighted(b.Group) {
			c.SetInk(inkSelected)
			c.DrawCircle(x, y, r)
			if r > 1 {
				c.DrawCircle(x, y, r-1)
			}
			continue
		}
		c.SetInk(inkBody)
		c.DrawCircle(x, y, r)
	}
}

func (m *Model) hudLine() string {
	if !m.menu.HUDVisible || m.snapshot == nil {
		return ""
	}
	name := m.snapshot.Meta[m.menu.Group].Name
	cfg := m.snapshot.Group(m.menu.Group)
	return m.styles.HUD.Render(fmt.Sprintf("%s %s", name, cfg.Format(m.menu.Field)))
}

func (m *Model) statusLine() string {
	if m.snapshot == nil {
		return ""
	}
	sound := "off"
	if m.soundOn {
		sound = "on"
	}
	return m.styles.Status.Render(fmt.Sprintf("tick %d  bubbles %d  viewers %d  sound %s  [arrows] edit  [enter] group  [?] hud  [q] quit",
		m.snapshot.Tick, len(m.snapshot.Bodies), m.snapshot.Clients, sound))
}

func frameTick() tea.Cmd {
	return tea.Tick(config.ClientTargetFrameTime, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func waitForEvent(ch <-chan server.ClientEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}
