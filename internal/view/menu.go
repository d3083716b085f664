package view

import (
	"github.com/tomz197/bubblesim/internal/input"
	"github.com/tomz197/bubblesim/internal/server"
	"github.com/tomz197/bubblesim/internal/sim"
)

// Menu is the on-screen editor state: which group and field the arrow keys
// act on, and whether the HUD is shown.
type Menu struct {
	Group      sim.GroupID
	Field      sim.ConfigField
	HUDVisible bool
}

// NewMenu starts on the small group's count with the HUD visible.
func NewMenu() Menu {
	return Menu{Group: sim.GroupSmall, Field: sim.FieldCount, HUDVisible: true}
}

// Apply updates the menu for an action. It returns a command for the
// server when the action changes the configuration.
func (m *Menu) Apply(a input.Action) (server.Command, bool) {
	switch a {
	case input.ActionPrevField:
		m.Field = m.Field.Prev()
	case input.ActionNextField:
		m.Field = m.Field.Next()
	case input.ActionCycleGroup:
		m.Group = m.Group.Next()
	case input.ActionToggleHUD:
		m.HUDVisible = !m.HUDVisible
	case input.ActionDecrease:
		return server.AdjustCommand(m.Group, m.Field, -1), true
	case input.ActionIncrease:
		return server.AdjustCommand(m.Group, m.Field, 1), true
	case input.ActionResetConfig:
		return server.Command{Type: server.CommandReset}, true
	}
	return server.Command{}, false
}

// Highlighted reports whether bodies of group should be drawn selected.
// The highlight is hidden together with the HUD.
func (m Menu) Highlighted(group int) bool {
	return m.HUDVisible && group == int(m.Group)
}
