package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type stageEntry struct {
	Stage int    `json:"stage" yaml:"stage"`
	Enemy string `json:"enemy" yaml:"enemy"`
}

type timingEntry struct {
	EnemyTurnDelayMS int `json:"enemy_turn_delay_ms" yaml:"enemy_turn_delay_ms"`
	ParryOffsetMS    int `json:"parry_offset_ms" yaml:"parry_offset_ms"`
	ParryWindowMS    int `json:"parry_window_ms" yaml:"parry_window_ms"`
	StrikeMS         int `json:"strike_ms" yaml:"strike_ms"`
}

type combatLogEntry struct {
	CSVPath    string `json:"csv_path" yaml:"csv_path"`
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`
}

type rawConfig struct {
	Player    *game.Template  `json:"player" yaml:"player"`
	Enemies   []game.Template `json:"enemies" yaml:"enemies"`
	Stages    []stageEntry    `json:"stages" yaml:"stages"`
	Timing    *timingEntry    `json:"timing" yaml:"timing"`
	CombatLog *combatLogEntry `json:"combat_log" yaml:"combat_log"`
}

// LoadedConfig is the validated configuration of a session.
type LoadedConfig struct {
	Player  game.Template
	Enemies []game.Template
	// Stages maps a stage number to the name of its enemy.
	Stages map[int]string
	Timing engine.Timing
	// CSVPath is the combat-log file. SQLitePath, when set, enables the
	// sqlite mirror.
	CSVPath    string
	SQLitePath string
}

// Default returns the built-in roster: the Hero against a Goblin on stage 1
// and a Bog Witch on stage 2.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Player: game.Template{
			Name:      "Hero",
			Health:    100,
			Mana:      50,
			Strength:  15,
			Defense:   5,
			Abilities: []game.Ability{game.AbilityFireball, game.AbilityHeal, game.AbilityBash, game.AbilityShield},
			Items:     []game.Item{game.ItemPotion, game.ItemElixir},
		},
		Enemies: []game.Template{
			{
				Name:      "Goblin",
				Health:    60,
				Strength:  10,
				Abilities: []game.Ability{game.AbilitySwipe, game.AbilityKick},
			},
			{
				Name:      "Bog Witch",
				Health:    80,
				Mana:      40,
				Strength:  12,
				Defense:   4,
				Abilities: []game.Ability{game.AbilityFireball, game.AbilitySmoke, game.AbilityHeal},
				Items:     []game.Item{game.ItemPotion},
			},
		},
		Stages:  map[int]string{1: "Goblin", 2: "Bog Witch"},
		Timing:  engine.DefaultTiming(),
		CSVPath: constants.DefaultCombatLogPath,
	}
}

// LoadConfig reads the configuration file at path. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON. A missing file yields
// the built-in defaults. Sections left out of the file keep their defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := unmarshal(path, b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg, err := fromRaw(rc)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func unmarshal(path string, b []byte, rc *rawConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, rc)
	}
	return json.Unmarshal(b, rc)
}

func fromRaw(rc rawConfig) (*LoadedConfig, error) {
	cfg := Default()
	if rc.Player != nil {
		cfg.Player = *rc.Player
	}
	if len(rc.Enemies) > 0 {
		cfg.Enemies = rc.Enemies
		// A custom roster without stages fights its enemies in order.
		cfg.Stages = make(map[int]string, len(rc.Enemies))
		for i, e := range rc.Enemies {
			cfg.Stages[i+1] = e.Name
		}
	}
	if len(rc.Stages) > 0 {
		cfg.Stages = make(map[int]string, len(rc.Stages))
		for _, s := range rc.Stages {
			if _, dup := cfg.Stages[s.Stage]; dup {
				return nil, fmt.Errorf("%w: duplicate stage %d", ErrInvalidConfig, s.Stage)
			}
			cfg.Stages[s.Stage] = s.Enemy
		}
	}
	if rc.Timing != nil {
		cfg.Timing = engine.Timing{
			EnemyTurnDelay: ms(rc.Timing.EnemyTurnDelayMS),
			ParryOffset:    ms(rc.Timing.ParryOffsetMS),
			ParryWindow:    ms(rc.Timing.ParryWindowMS),
			StrikeDuration: ms(rc.Timing.StrikeMS),
		}
	}
	if rc.CombatLog != nil {
		if p := strings.TrimSpace(rc.CombatLog.CSVPath); p != "" {
			cfg.CSVPath = p
		}
		cfg.SQLitePath = strings.TrimSpace(rc.CombatLog.SQLitePath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Validate checks the roster and timing and canonicalizes ability and item
// names in place.
func (c *LoadedConfig) Validate() error {
	if err := canonicalize(&c.Player); err != nil {
		return err
	}
	names := map[string]struct{}{strings.ToLower(strings.TrimSpace(c.Player.Name)): {}}
	for i := range c.Enemies {
		if err := canonicalize(&c.Enemies[i]); err != nil {
			return err
		}
		ln := strings.ToLower(strings.TrimSpace(c.Enemies[i].Name))
		if _, exists := names[ln]; exists {
			return fmt.Errorf("%w: duplicate combatant name '%s'", ErrInvalidConfig, c.Enemies[i].Name)
		}
		names[ln] = struct{}{}
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("%w: no stages configured", ErrInvalidConfig)
	}
	for stage, enemy := range c.Stages {
		if stage < 1 {
			return fmt.Errorf("%w: stage numbers start at 1, got %d", ErrInvalidConfig, stage)
		}
		if _, ok := c.EnemyForStage(stage); !ok {
			return fmt.Errorf("%w: stage %d references unknown enemy '%s'", ErrInvalidConfig, stage, enemy)
		}
	}
	t := c.Timing
	if t.EnemyTurnDelay <= 0 || t.ParryOffset < 0 || t.ParryWindow <= 0 || t.StrikeDuration <= 0 {
		return fmt.Errorf("%w: timings must be positive", ErrInvalidConfig)
	}
	if t.StrikeDuration < t.ParryOffset+t.ParryWindow {
		return fmt.Errorf("%w: strike_ms must cover parry_offset_ms + parry_window_ms", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.CSVPath) == "" {
		return fmt.Errorf("%w: combat_log.csv_path is empty", ErrInvalidConfig)
	}
	return nil
}

func validNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

func canonicalize(t *game.Template) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: combatant entry missing 'name'", ErrInvalidConfig)
	}
	if t.Health <= 0 || t.Mana < 0 || t.Strength < 0 || t.Defense < 0 {
		return fmt.Errorf("%w: combatant '%s' needs positive health and non-negative stats", ErrInvalidConfig, t.Name)
	}
	for i, a := range t.Abilities {
		canon, ok := game.ParseAbility(string(a))
		if !ok {
			return fmt.Errorf("%w: combatant '%s' has unknown ability '%s' (valid: %s)", ErrInvalidConfig, t.Name, a, validNames(game.Abilities()))
		}
		t.Abilities[i] = canon
	}
	for i, it := range t.Items {
		canon, ok := game.ParseItem(string(it))
		if !ok {
			return fmt.Errorf("%w: combatant '%s' has unknown item '%s' (valid: %s)", ErrInvalidConfig, t.Name, it, validNames(game.Items()))
		}
		t.Items[i] = canon
	}
	return nil
}

// EnemyForStage returns the template fought on stage.
func (c *LoadedConfig) EnemyForStage(stage int) (game.Template, bool) {
	name, ok := c.Stages[stage]
	if !ok {
		return game.Template{}, false
	}
	for _, e := range c.Enemies {
		if strings.EqualFold(e.Name, strings.TrimSpace(name)) {
			return e, true
		}
	}
	return game.Template{}, false
}

// StageNumbers lists the configured stages in ascending order.
func (c *LoadedConfig) StageNumbers() []int {
	out := make([]int, 0, len(c.Stages))
	for s := range c.Stages {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// ApplyEnv overrides the combat-log paths from the environment.
func (c *LoadedConfig) ApplyEnv(getenv func(string) string) {
	if p := strings.TrimSpace(getenv(constants.EnvCombatLog)); p != "" {
		c.CSVPath = p
	}
	if p := strings.TrimSpace(getenv(constants.EnvDBPath)); p != "" {
		c.SQLitePath = p
	}
}
