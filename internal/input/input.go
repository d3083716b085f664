// Package input maps terminal key names, as reported by bubbletea, to menu
// actions. Several layouts are accepted: arrows, vim keys and WASD.
package input

// Action is a menu command produced by a key press.
type Action int

const (
	ActionNone        Action = iota
	ActionQuit               // Leave the viewer
	ActionPrevField          // Select the previous config field
	ActionNextField          // Select the next config field
	ActionDecrease           // Decrease the selected field
	ActionIncrease           // Increase the selected field
	ActionCycleGroup         // Small -> Medium -> Large -> Small
	ActionToggleHUD          // Show or hide the footer and highlight
	ActionResetConfig        // Restore the default configuration
	ActionToggleSound        // Mute or unmute pop sounds
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPrevField:
		return "prev-field"
	case ActionNextField:
		return "next-field"
	case ActionDecrease:
		return "decrease"
	case ActionIncrease:
		return "increase"
	case ActionCycleGroup:
		return "cycle-group"
	case ActionToggleHUD:
		return "toggle-hud"
	case ActionResetConfig:
		return "reset"
	case ActionToggleSound:
		return "toggle-sound"
	default:
		return "none"
	}
}

// Map returns the action bound to a key name.
func Map(key string) Action {
	switch key {
	case "q", "Q", "esc", "ctrl+c", "backspace":
		return ActionQuit
	case "up", "k", "w":
		return ActionPrevField
	case "down", "j", "s":
		return ActionNextField
	case "left", "h", "a", "-":
		return ActionDecrease
	case "right", "l", "d", "+", "=":
		return ActionIncrease
	case "enter", " ", "space", "tab":
		return ActionCycleGroup
	case "?", "H", "f1":
		return ActionToggleHUD
	case "r", "R":
		return ActionResetConfig
	case "m", "M":
		return ActionToggleSound
	default:
		return ActionNone
	}
}
