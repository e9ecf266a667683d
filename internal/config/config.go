package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Sim holds all configuration for the battle simulator.
type Sim struct {
	LogLevel string `yaml:"log_level"`

	// Seed for the battle RNG, 0 picks a random seed.
	Seed uint64 `yaml:"seed"`

	// Battle tuning file and hot reload
	TuningPath  string `yaml:"tuning_path"`
	WatchTuning bool   `yaml:"watch_tuning"`

	// Frame loop
	FrameInterval time.Duration `yaml:"frame_interval"` // real ticker period
	FrameStep     float64       `yaml:"frame_step"`     // simulated seconds per frame, 0 = wall clock
	BattleTimeout time.Duration `yaml:"battle_timeout"`

	// Database (battle journal, player flags)
	Database DatabaseConfig `yaml:"database"`

	// Audio cue queue capacity
	AudioQueueSize int `yaml:"audio_queue_size"`

	Player     PlayerConfig `yaml:"player"`
	Encounters []Encounter  `yaml:"encounters"`

	// Rounds repeats the encounter plan.
	Rounds int `yaml:"rounds"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// PlayerConfig describes the simulated character.
type PlayerConfig struct {
	Name      string   `yaml:"name"`
	Class     string   `yaml:"class"`
	Race      string   `yaml:"race"`
	BonusStat string   `yaml:"bonus_stat"` // Human racial bonus target: str, dex, int, vit
	Level     int      `yaml:"level"`
	Weapon    string   `yaml:"weapon"`
	Armor     string   `yaml:"armor"`
	Talents   []string `yaml:"talents"`
	Items     []string `yaml:"items"`
	Quests    []string `yaml:"quests"`
}

// Encounter kinds.
const (
	EncounterSingle = "single"
	EncounterGroup  = "group"
	EncounterBoss   = "boss"
)

// Encounter is one planned battle.
type Encounter struct {
	Kind  string `yaml:"kind"`
	Zone  string `yaml:"zone"`
	Enemy string `yaml:"enemy"` // template id, empty rolls a random enemy of Zone
	Count int    `yaml:"count"` // group size, 0 rolls 2-3 enemies
}

// DefaultSim returns Sim config with sensible defaults.
func DefaultSim() Sim {
	return Sim{
		LogLevel:       "info",
		TuningPath:     "config/battle.yaml",
		FrameInterval:  16 * time.Millisecond,
		BattleTimeout:  5 * time.Minute,
		AudioQueueSize: 64,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "elderdeep",
			Password: "elderdeep",
			DBName:   "elderdeep",
			SSLMode:  "disable",
		},
		Player: PlayerConfig{
			Name:      "Hero",
			Class:     "Warrior",
			Race:      "Human",
			BonusStat: "str",
			Level:     1,
		},
		Encounters: []Encounter{
			{Kind: EncounterSingle, Zone: "forest"},
		},
		Rounds: 1,
	}
}

// LoadSim loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSim(path string) (Sim, error) {
	cfg := DefaultSim()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
