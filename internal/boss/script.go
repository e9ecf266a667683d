// Package boss drives scripted multi-phase boss encounters: HP-threshold
// phases, timer-gated special mechanics with windups, and their counterplay.
package boss

// Mechanic is a named boss special.
type Mechanic int

const (
	MechanicNone Mechanic = iota
	Burrow
	FireBreath
	Firewall
	Heatwave
	ElderRupture
)

func (m Mechanic) String() string {
	switch m {
	case Burrow:
		return "burrow"
	case FireBreath:
		return "fire_breath"
	case Firewall:
		return "firewall"
	case Heatwave:
		return "heatwave"
	case ElderRupture:
		return "elder_rupture"
	default:
		return "none"
	}
}

// State is the windup state of a Machine.
//
//	idle -> winding-up(mechanic, remaining) -> resolving -> idle
type State int

const (
	StateIdle State = iota
	StateWindingUp
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateWindingUp:
		return "winding_up"
	case StateResolving:
		return "resolving"
	default:
		return "idle"
	}
}

// Timer identifies a mechanic timer.
type Timer int

const (
	TimerBurrow Timer = iota
	TimerFire
	TimerRupture
	timerCount
)

// Phase is one HP-gated stage of a boss fight.
type Phase struct {
	Name string
	// BelowPct enters the phase once HP*100 < MaxHP*BelowPct.
	// Ignored for the first phase.
	BelowPct int

	AttackCooldown float64
	AttackMult     float64
	DefenseMult    float64

	Announcement string
	HazardFast   bool // speeds up the zone hazard
	Flash        bool // screen warning on entry
}

// Variant is one possible outcome of a trigger.
type Variant struct {
	Mechanic Mechanic
	Windup   float64
	Text     string
}

// Trigger starts a windup once Timer reaches At during Phase.
// Triggers of a phase are checked in order; the first match wins.
type Trigger struct {
	Phase    int
	Timer    Timer
	At       float64
	Variants []Variant // picked uniformly
}

// Script is a boss's static fight description.
type Script struct {
	Key        string
	Phases     []Phase
	Triggers   []Trigger
	TimerStart map[Timer]float64

	// CounterPhase is the first phase in which player crits are countered.
	CounterPhase int
}

var scripts = map[string]func() *Script{
	"elder_wyrm": ElderWyrm,
}

// Lookup returns a fresh script for key.
func Lookup(key string) (*Script, bool) {
	fn, ok := scripts[key]
	if !ok {
		return nil, false
	}
	return fn(), true
}
