package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Player.Name != "Hero" || cfg.Player.Health != 100 {
		t.Fatalf("unexpected default player %+v", cfg.Player)
	}
	if got := cfg.StageNumbers(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected stages %v", got)
	}
	if e, ok := cfg.EnemyForStage(2); !ok || e.Name != "Bog Witch" {
		t.Fatalf("stage 2 enemy = %+v,%v", e, ok)
	}
	if cfg.CSVPath != constants.DefaultCombatLogPath || cfg.SQLitePath != "" {
		t.Fatalf("unexpected log paths %q %q", cfg.CSVPath, cfg.SQLitePath)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	p := writeFile(t, "starry.json", `{
  "player": {"name": "Knight", "health": 120, "mana": 30, "strength": 12, "defense": 8,
             "abilities": ["bash", "SHIELD"], "items": ["potion"]},
  "enemies": [{"name": "Slime", "health": 30, "strength": 5, "abilities": ["swipe"]}],
  "timing": {"enemy_turn_delay_ms": 500, "parry_offset_ms": 100, "parry_window_ms": 150, "strike_ms": 400},
  "combat_log": {"csv_path": "/tmp/log.csv", "sqlite_path": "/tmp/log.db"}
}`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Player.Abilities[0] != game.AbilityBash || cfg.Player.Abilities[1] != game.AbilityShield {
		t.Fatalf("abilities not canonicalized: %v", cfg.Player.Abilities)
	}
	if cfg.Player.Items[0] != game.ItemPotion {
		t.Fatalf("items not canonicalized: %v", cfg.Player.Items)
	}
	if e, ok := cfg.EnemyForStage(1); !ok || e.Name != "Slime" {
		t.Fatalf("custom roster should fill stage 1, got %+v", e)
	}
	if cfg.Timing.ParryWindow != 150*time.Millisecond || cfg.Timing.StrikeDuration != 400*time.Millisecond {
		t.Fatalf("unexpected timing %+v", cfg.Timing)
	}
	if cfg.CSVPath != "/tmp/log.csv" || cfg.SQLitePath != "/tmp/log.db" {
		t.Fatalf("unexpected log paths %q %q", cfg.CSVPath, cfg.SQLitePath)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	p := writeFile(t, "starry.yaml", `
enemies:
  - name: Goblin
    health: 60
    strength: 10
    abilities: [Swipe, Kick]
  - name: Ogre
    health: 150
    strength: 20
    defense: 10
stages:
  - stage: 1
    enemy: ogre
  - stage: 3
    enemy: Goblin
`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Player.Name != "Hero" {
		t.Fatalf("player should keep the default, got %q", cfg.Player.Name)
	}
	if e, ok := cfg.EnemyForStage(1); !ok || e.Name != "Ogre" {
		t.Fatalf("stage 1 enemy = %+v,%v", e, ok)
	}
	if _, ok := cfg.EnemyForStage(2); ok {
		t.Fatalf("stage 2 should not exist")
	}
	if got := cfg.StageNumbers(); len(got) != 2 || got[1] != 3 {
		t.Fatalf("unexpected stages %v", got)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown ability":  `{"player": {"name": "Hero", "health": 10, "abilities": ["Meteor"]}}`,
		"unknown item":     `{"player": {"name": "Hero", "health": 10, "items": ["Bomb"]}}`,
		"missing name":     `{"enemies": [{"health": 10}]}`,
		"duplicate name":   `{"enemies": [{"name": "hero", "health": 10}]}`,
		"unknown stage":    `{"stages": [{"stage": 1, "enemy": "Dragon"}]}`,
		"duplicate stage":  `{"stages": [{"stage": 1, "enemy": "Goblin"}, {"stage": 1, "enemy": "Bog Witch"}]}`,
		"zero stage":       `{"stages": [{"stage": 0, "enemy": "Goblin"}]}`,
		"short strike":     `{"timing": {"enemy_turn_delay_ms": 1000, "parry_offset_ms": 100, "parry_window_ms": 100, "strike_ms": 150}}`,
		"zero delay":       `{"timing": {"parry_offset_ms": 100, "parry_window_ms": 100, "strike_ms": 300}}`,
		"negative defense": `{"player": {"name": "Hero", "health": 10, "defense": -1}}`,
	}
	for name, body := range cases {
		p := writeFile(t, "bad.json", body)
		if _, err := LoadConfig(p); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadConfig_UnknownNameListsValidOnes(t *testing.T) {
	p := writeFile(t, "bad.json", `{"player": {"name": "Hero", "health": 10, "abilities": ["Meteor"]}}`)
	_, err := LoadConfig(p)
	if err == nil || !strings.Contains(err.Error(), "valid: Fireball, Heal") {
		t.Fatalf("expected the valid abilities in the error, got %v", err)
	}

	p = writeFile(t, "bad.json", `{"player": {"name": "Hero", "health": 10, "items": ["Bomb"]}}`)
	_, err = LoadConfig(p)
	if err == nil || !strings.Contains(err.Error(), "Potion") {
		t.Fatalf("expected the valid items in the error, got %v", err)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	p := writeFile(t, "broken.json", `{"player": `)
	_, err := LoadConfig(p)
	if err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{constants.EnvCombatLog: " /data/log.csv ", constants.EnvDBPath: "/data/log.db"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.CSVPath != "/data/log.csv" || cfg.SQLitePath != "/data/log.db" {
		t.Fatalf("env not applied: %q %q", cfg.CSVPath, cfg.SQLitePath)
	}
	cfg.ApplyEnv(func(string) string { return "" })
	if cfg.CSVPath != "/data/log.csv" {
		t.Fatalf("empty env must not clear the path")
	}
}
