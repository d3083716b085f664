package server

import (
	"github.com/tomz197/bubblesim/internal/physics"
	"github.com/tomz197/bubblesim/internal/sim"
)

// Snapshot is an immutable view of the simulation after one tick.
type Snapshot struct {
	Tick    uint64
	Bodies  []physics.Body
	Groups  sim.Config
	Meta    [sim.GroupCount]sim.GroupMeta
	Bounds  physics.Bounds
	Popped  int // Bodies popped during this tick
	Clients int
}

// Group returns the configuration of one group.
func (s *Snapshot) Group(id sim.GroupID) sim.GroupConfig {
	return s.Groups[id]
}

// CountGroup returns how many live bodies belong to a group.
func (s *Snapshot) CountGroup(id sim.GroupID) int {
	n := 0
	for i := range s.Bodies {
		if s.Bodies[i].Group == int(id) {
			n++
		}
	}
	return n
}

// CommandType identifies a configuration change.
type CommandType int

const (
	CommandAdjust CommandType = iota // Nudge one field of one group
	CommandSetConfig                 // Replace every group
	CommandReset                     // Restore the default configuration
)

func (t CommandType) String() string {
	switch t {
	case CommandAdjust:
		return "adjust"
	case CommandSetConfig:
		return "set-config"
	case CommandReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Command is a configuration change applied between ticks.
type Command struct {
	Type   CommandType
	Group  sim.GroupID
	Field  sim.ConfigField
	Dir    int
	Config sim.Config // For CommandSetConfig
}

// AdjustCommand builds a command that nudges one field of one group.
func AdjustCommand(group sim.GroupID, field sim.ConfigField, dir int) Command {
	return Command{Type: CommandAdjust, Group: group, Field: field, Dir: dir}
}

// apply executes a command against the simulation. Returns true if the
// configuration changed.
func (s *Server) apply(cmd Command) bool {
	switch cmd.Type {
	case CommandAdjust:
		if !cmd.Group.Valid() {
			return false
		}
		before := s.sim.Group(cmd.Group)
		after := s.sim.AdjustGroup(cmd.Group, cmd.Field, cmd.Dir)
		s.logger.Debug("group adjusted", "group", cmd.Group, "field", cmd.Field, "value", after.Format(cmd.Field))
		return before != after
	case CommandSetConfig:
		s.sim.SetConfig(cmd.Config)
		return true
	case CommandReset:
		s.sim.SetConfig(sim.DefaultConfig())
		return true
	default:
		s.logger.Warn("unknown command", "type", int(cmd.Type))
		return false
	}
}
