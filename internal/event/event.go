// Package event holds the vocabulary shared by the battle engine and its
// collaborators: log tags, audio cues and floating damage kinds.
package event

// Tag categorizes a battle log line.
type Tag string

const (
	TagDamage  Tag = "damage"
	TagCrit    Tag = "crit"
	TagInfo    Tag = "info"
	TagStatus  Tag = "status"
	TagVictory Tag = "victory"
	TagDefeat  Tag = "defeat"
	TagBoss    Tag = "boss"
)

// Cue is a fire-and-forget audio request.
type Cue string

const (
	CueAttack         Cue = "attack"
	CueHit            Cue = "hit"
	CueCrit           Cue = "crit"
	CueBlock          Cue = "block"
	CueSkill          Cue = "skill"
	CueVictory        Cue = "victory"
	CueDefeat         Cue = "defeat"
	CueSpecial        Cue = "special"
	CueBossMusicStart Cue = "boss_music_start"
	CueBossMusicStop  Cue = "boss_music_stop"
	CueQuestComplete  Cue = "quest_complete"
	CueLevelUp        Cue = "level_up"
)

// DamageKind selects how a floating damage number is drawn.
type DamageKind string

const (
	DamageNormal DamageKind = "normal"
	DamageCrit   DamageKind = "crit"
	DamageBlock  DamageKind = "block"
)

// Line is one battle log entry.
type Line struct {
	Text string
	Tag  Tag
}

// LogFunc receives battle log lines.
type LogFunc func(text string, tag Tag)
