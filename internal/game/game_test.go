package game

import (
	"strings"
	"testing"
)

func TestParseAbility(t *testing.T) {
	cases := []struct {
		in   string
		want Ability
		ok   bool
	}{
		{"Fireball", AbilityFireball, true},
		{"  fireball ", AbilityFireball, true},
		{"SHIELD", AbilityShield, true},
		{"kick", AbilityKick, true},
		{"meteor", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseAbility(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseAbility(%q) = %q,%v; want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseItem(t *testing.T) {
	if got, ok := ParseItem(" eLiXiR"); !ok || got != ItemElixir {
		t.Fatalf("ParseItem(eLiXiR) = %q,%v", got, ok)
	}
	if _, ok := ParseItem("bomb"); ok {
		t.Fatalf("unknown item accepted")
	}
}

func TestParseActionKind(t *testing.T) {
	for in, want := range map[string]ActionKind{"attack": ActionAttack, " Defend": ActionDefend, "ITEM": ActionItem, "ability": ActionAbility} {
		if got, ok := ParseActionKind(in); !ok || got != want {
			t.Fatalf("ParseActionKind(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := ParseActionKind("flee"); ok {
		t.Fatalf("unknown action accepted")
	}
}

func TestActionKindLabel(t *testing.T) {
	if ActionAttack.Label() != "Attack" || ActionDefend.Label() != "Defend" {
		t.Fatalf("unexpected labels %q %q", ActionAttack.Label(), ActionDefend.Label())
	}
}

func TestCatalogListsAreCopies(t *testing.T) {
	a := Abilities()
	a[0] = "Meteor"
	if Abilities()[0] != AbilityFireball {
		t.Fatalf("Abilities exposed its backing slice")
	}
	if len(Items()) != 2 {
		t.Fatalf("expected two items, got %v", Items())
	}
}

func TestBattleSummaryText(t *testing.T) {
	s := BattleSummary{Combatants: []CombatantSummary{
		{Name: "Hero", DamageDealt: 60, HealingDone: 20, DamageMitigated: 14},
		{Name: "Goblin", DamageDealt: 28, DamageMitigated: 3},
	}}
	want := strings.Join([]string{
		"Hero dealt 60 damage.",
		"Hero healed 20 HP.",
		"Hero mitigated 14 damage.",
		"Goblin dealt 28 damage.",
		"Goblin healed 0 HP.",
		"",
	}, "\n")
	if got := s.Text(); got != want {
		t.Fatalf("Text() =\n%s\nwant\n%s", got, want)
	}
}
