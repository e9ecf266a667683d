// Package gamestate owns the player character: creation, derived stats,
// leveling, inventory, equipment, talents and zone unlocks.
package gamestate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/udisondev/elderdeep/internal/data"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/talent"
	"github.com/udisondev/elderdeep/internal/zone"
)

var (
	ErrNoPlayer        = errors.New("no player")
	ErrUnknownClass    = errors.New("unknown class")
	ErrUnknownRace     = errors.New("unknown race")
	ErrUnknownItem     = errors.New("unknown item")
	ErrNotEquippable   = errors.New("item is not equippable")
	ErrElfOnly         = errors.New("item is elf-only")
	ErrNotUsable       = errors.New("item is not usable")
	ErrNotCarried      = errors.New("item not in inventory")
	ErrUnknownTalent   = errors.New("unknown talent")
	ErrTalentLearned   = errors.New("talent already learned")
	ErrNoTalentPoints  = errors.New("no talent points")
	ErrTalentLocked    = errors.New("talent requirements not met")
	ErrInvalidStatName = errors.New("invalid stat name")
)

const (
	startLevel    = 1
	startXPToNext = 50
	startGold     = 50
	startStat     = 3
	xpCurve       = 1.35
)

// Options describe a new character.
type Options struct {
	Name  string
	Class model.Class
	Race  model.Race
	// Stats is the allocated attribute spread; zero fields default to 3.
	Stats model.Stats
	// BonusStat is the Human racial bonus target: str, dex, int or vit.
	BonusStat string
}

// Audio plays progression cues.
type Audio interface {
	Play(c event.Cue)
}

// State is the game-state provider of the battle engine.
// Not safe for concurrent use; the battle loop goroutine owns it.
type State struct {
	player   *model.Player
	unlocked []string

	zones  *zone.Catalog
	quests zone.QuestLog
	log    event.LogFunc
	audio  Audio
}

// New creates an empty state. zones may be nil when unlock tracking is not needed.
func New(zones *zone.Catalog, log event.LogFunc, audio Audio) *State {
	if log == nil {
		log = func(string, event.Tag) {}
	}
	return &State{zones: zones, log: log, audio: audio}
}

// SetQuests wires the quest log used by zone unlocks.
func (s *State) SetQuests(q zone.QuestLog) {
	s.quests = q
	s.updateUnlocks()
}

// Player returns the active character, nil before Create.
func (s *State) Player() *model.Player {
	return s.player
}

// Unlocked returns unlocked zone keys in progression order.
func (s *State) Unlocked() []string {
	return slices.Clone(s.unlocked)
}

// Create builds a level 1 character at full HP and MP.
func (s *State) Create(opts Options) (*model.Player, error) {
	class, race := opts.Class, opts.Race
	if class == "" {
		class = model.ClassWarrior
	}
	if race == "" {
		race = model.RaceHuman
	}
	if !slices.Contains([]model.Class{model.ClassWarrior, model.ClassMage, model.ClassRogue}, class) {
		return nil, fmt.Errorf("create player: %w: %q", ErrUnknownClass, class)
	}

	base := model.Stats{
		Strength:     orDefault(opts.Stats.Strength),
		Dexterity:    orDefault(opts.Stats.Dexterity),
		Intelligence: orDefault(opts.Stats.Intelligence),
		Vitality:     orDefault(opts.Stats.Vitality),
	}
	switch race {
	case model.RaceHuman:
		bonus, err := statBonus(opts.BonusStat, 2)
		if err != nil {
			return nil, fmt.Errorf("create player: %w", err)
		}
		base = base.Add(bonus)
	case model.RaceBeast:
		base.Strength += 4
	case model.RaceElf:
		base.Intelligence += 3
	case model.RaceBug:
		base.Dexterity += 3
	case model.RaceUndead:
		base.Vitality += 3
	default:
		return nil, fmt.Errorf("create player: %w: %q", ErrUnknownRace, race)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "Hero"
	}

	p := &model.Player{
		Combatant: model.Combatant{
			ID:            "player",
			Name:          name,
			Level:         startLevel,
			IncomingScale: 1,
			Cooldown:      model.Cooldown{Factor: 1},
		},
		Class:     class,
		Race:      race,
		Base:      base,
		XPToNext:  startXPToNext,
		Gold:      startGold,
		Flags:     make(map[string]bool),
		Modifiers: model.DefaultModifiers(),
	}
	// Elves start with a bound shortbow that never enters the inventory.
	if race == model.RaceElf {
		if bow, ok := data.GetWeapon("elven_shortbow"); ok {
			p.Weapon = bow
		}
	}

	s.player = p
	s.unlocked = nil
	s.Recalculate()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	s.updateUnlocks()

	slog.Info("player created", "name", p.Name, "class", p.Class, "race", p.Race)
	return p, nil
}

// Recalculate derives combat stats from attributes, equipment and talents.
// HP and MP are kept, clamped to the new maxima.
func (s *State) Recalculate() {
	p := s.player
	if p == nil {
		return
	}
	mods, flat := talent.Fold(p.Class, p.Race, p.Talents)
	p.Modifiers = mods
	p.Bonus = flat
	st := p.Stats()

	var wAtk, wMag, aDef int
	if p.Weapon != nil {
		wAtk, wMag = p.Weapon.AttackBonus, p.Weapon.MagicBonus
	}
	if p.Armor != nil {
		aDef = p.Armor.DefenseBonus
	}

	p.AttackPower = st.Strength*2 + st.Dexterity + wAtk
	p.MagicPower = int(math.Floor(float64(st.Intelligence*2)+float64(st.Dexterity)*0.5)) + wMag
	p.Defense = int(math.Floor((float64(st.Vitality)*1.5 + float64(aDef)) * mods.DefenseMultiplier))
	p.MaxHP = int(math.Floor(float64(30+st.Vitality*10) * mods.HPMultiplier))
	p.MaxMP = 10 + st.Intelligence*5
	p.HP = min(p.HP, p.MaxHP)
	p.MP = min(p.MP, p.MaxMP)

	p.Cooldown.Base = p.BaseAttackCooldown()
	p.Cooldown.Clamp()
}

// GainXP adds experience and levels up while the threshold is reached.
func (s *State) GainXP(amount int) {
	p := s.player
	if p == nil || amount <= 0 {
		return
	}
	p.XP += amount
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		s.levelUp()
	}
}

// LevelTo raises the player to level without touching XP progress.
func (s *State) LevelTo(level int) {
	if s.player == nil {
		return
	}
	for s.player.Level < level {
		s.levelUp()
	}
}

func (s *State) levelUp() {
	p := s.player
	p.Level++
	p.Base.Vitality++
	p.Base.Strength++
	if p.Class == model.ClassMage {
		p.Base.Intelligence++
	} else {
		p.Base.Dexterity++
	}
	p.XPToNext = int(math.Floor(float64(p.XPToNext) * xpCurve))

	gained := 1
	if p.Level == 5 || p.Level == 10 {
		gained++
	}
	p.TalentPoints += gained

	s.Recalculate()
	p.HP = p.MaxHP
	p.MP = p.MaxMP

	if s.audio != nil {
		s.audio.Play(event.CueLevelUp)
	}
	s.log(fmt.Sprintf("Level up! You are now level %d. (+%d talent point)", p.Level, gained), event.TagVictory)
	slog.Info("level up", "level", p.Level, "talent_points", p.TalentPoints)
	s.updateUnlocks()
}

// AddItem puts a catalog item into the inventory.
func (s *State) AddItem(id string) bool {
	if s.player == nil {
		return false
	}
	if _, ok := data.GetItem(id); !ok {
		slog.Warn("unknown item dropped", "item", id)
		return false
	}
	s.player.Inventory = append(s.player.Inventory, id)
	s.updateUnlocks()
	return true
}

// RemoveItem removes one copy of id.
func (s *State) RemoveItem(id string) bool {
	if s.player == nil {
		return false
	}
	i := slices.Index(s.player.Inventory, id)
	if i < 0 {
		return false
	}
	s.player.Inventory = slices.Delete(s.player.Inventory, i, i+1)
	return true
}

// Equip wears a weapon or armor. A carried copy leaves the inventory and the
// replaced piece goes back into it.
func (s *State) Equip(id string) error {
	p := s.player
	if p == nil {
		return ErrNoPlayer
	}
	it, ok := data.GetItem(id)
	if !ok {
		return fmt.Errorf("equip %s: %w", id, ErrUnknownItem)
	}

	switch it.Kind {
	case data.KindWeapon:
		w, _ := data.GetWeapon(id)
		if w.ElfOnly && p.Race != model.RaceElf {
			return fmt.Errorf("equip %s: %w", id, ErrElfOnly)
		}
		s.RemoveItem(id)
		if p.Weapon != nil {
			p.Inventory = append(p.Inventory, p.Weapon.ID)
		}
		p.Weapon = w
	case data.KindArmor:
		a, _ := data.GetArmor(id)
		s.RemoveItem(id)
		if p.Armor != nil {
			p.Inventory = append(p.Inventory, p.Armor.ID)
		}
		p.Armor = a
	default:
		return fmt.Errorf("equip %s: %w", id, ErrNotEquippable)
	}

	s.Recalculate()
	s.updateUnlocks()
	return nil
}

// Use consumes a carried consumable and sets its one-battle buff flag.
func (s *State) Use(id string) error {
	p := s.player
	if p == nil {
		return ErrNoPlayer
	}
	it, ok := data.GetItem(id)
	if !ok {
		return fmt.Errorf("use %s: %w", id, ErrUnknownItem)
	}
	if it.Kind != data.KindConsumable || it.Flag == "" {
		return fmt.Errorf("use %s: %w", id, ErrNotUsable)
	}
	if !s.RemoveItem(id) {
		return fmt.Errorf("use %s: %w", id, ErrNotCarried)
	}
	p.SetFlag(it.Flag)
	s.log(fmt.Sprintf("You use %s.", it.Name), event.TagInfo)
	return nil
}

// LearnTalent spends a talent point.
func (s *State) LearnTalent(id string) error {
	p := s.player
	if p == nil {
		return ErrNoPlayer
	}
	t, ok := talent.Lookup(p.Class, p.Race, id)
	if !ok {
		return fmt.Errorf("learn %s: %w", id, ErrUnknownTalent)
	}
	if slices.Contains(p.Talents, id) {
		return fmt.Errorf("learn %s: %w", id, ErrTalentLearned)
	}
	if p.TalentPoints <= 0 {
		return fmt.Errorf("learn %s: %w", id, ErrNoTalentPoints)
	}
	if !talent.RequirementsMet(t, p.Level, p.Talents) {
		return fmt.Errorf("learn %s: %w", id, ErrTalentLocked)
	}

	p.TalentPoints--
	p.Talents = append(p.Talents, id)
	s.Recalculate()
	slog.Info("talent learned", "talent", id, "points_left", p.TalentPoints)
	return nil
}

// Completed satisfies zone.QuestLog by delegating to the wired quest log.
func (s *State) Completed(id string) bool {
	return s.quests != nil && s.quests.Completed(id)
}

func (s *State) updateUnlocks() {
	if s.zones == nil || s.player == nil {
		return
	}
	before := len(s.unlocked)
	s.unlocked = s.zones.UpdateUnlocks(s.unlocked, s.player, s.quests)
	for _, k := range s.unlocked[min(before, len(s.unlocked)):] {
		if before == 0 && k == zone.Forest {
			continue
		}
		if z, ok := s.zones.Get(k); ok {
			s.log(fmt.Sprintf("New zone unlocked: %s!", z.Name), event.TagInfo)
		}
	}
}

func orDefault(v int) int {
	if v <= 0 {
		return startStat
	}
	return v
}

func statBonus(name string, amount int) (model.Stats, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "str":
		return model.Stats{Strength: amount}, nil
	case "dex":
		return model.Stats{Dexterity: amount}, nil
	case "int":
		return model.Stats{Intelligence: amount}, nil
	case "vit":
		return model.Stats{Vitality: amount}, nil
	default:
		return model.Stats{}, fmt.Errorf("%w: %q", ErrInvalidStatName, name)
	}
}
