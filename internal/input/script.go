package input

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Event changes button levels or the move axis at a point in time.
type Event struct {
	At   float32     `yaml:"at"`
	Down []Button    `yaml:"down,omitempty,flow"`
	Up   []Button    `yaml:"up,omitempty,flow"`
	Move *mgl32.Vec2 `yaml:"move,omitempty,flow"`
}

// Script is a deterministic, replayable input timeline.
type Script struct {
	// Duration ends the script; zero means the time of the last event.
	Duration           float32 `yaml:"duration"`
	StompAliasesCrouch bool    `yaml:"stomp_aliases_crouch"`
	Events             []Event `yaml:"events"`

	tracker *Tracker
	levels  Levels
	move    mgl32.Vec2
	next    int
}

// LoadScript reads a YAML input script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML input script.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	s.Rewind()
	return s, nil
}

// Rewind restarts playback from the first event.
func (s *Script) Rewind() {
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	s.tracker = NewTracker(s.StompAliasesCrouch)
	s.levels = Levels{}
	s.move = mgl32.Vec2{}
	s.next = 0
}

// End returns the time after which Poll reports exhaustion.
func (s *Script) End() float32 {
	if s.Duration > 0 {
		return s.Duration
	}
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].At
}

// Poll applies every event due at or before now and returns the snapshot.
func (s *Script) Poll(now float32) (Snapshot, bool) {
	if s.tracker == nil {
		s.Rewind()
	}
	if now > s.End() {
		return Snapshot{}, false
	}

	for s.next < len(s.Events) && s.Events[s.next].At <= now {
		ev := s.Events[s.next]
		for _, b := range ev.Up {
			s.levels[b] = false
		}
		for _, b := range ev.Down {
			s.levels[b] = true
		}
		if ev.Move != nil {
			s.move = *ev.Move
		}
		s.next++
	}
	return s.tracker.Update(s.levels, s.move), true
}
