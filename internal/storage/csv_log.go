package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

// CSVLog appends battle summaries to a flat CSV file. The header row is
// written only when the file is created; each battle adds one row per
// combatant followed by a blank separator row.
type CSVLog struct {
	mu   sync.Mutex
	path string
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the file the log appends to.
func (l *CSVLog) Path() string { return l.path }

func (l *CSVLog) Append(s game.BattleSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(l.path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open combat log: %w", err)
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(constants.CombatLogHeader); err != nil {
			f.Close()
			return fmt.Errorf("write combat log header: %w", err)
		}
	}
	for _, c := range s.Combatants {
		if err := w.Write(csvRow(c)); err != nil {
			f.Close()
			return fmt.Errorf("write combat log row: %w", err)
		}
	}
	if err := w.Write(nil); err != nil {
		f.Close()
		return fmt.Errorf("write combat log separator: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush combat log: %w", err)
	}
	return f.Close()
}

func csvRow(c game.CombatantSummary) []string {
	return []string{
		c.Name,
		strconv.Itoa(c.DamageDealt),
		strconv.Itoa(c.HealingDone),
		strconv.Itoa(c.DamageMitigated),
		MovesetLiteral(c.Moveset),
	}
}

// MovesetLiteral renders a move history as a single-quoted list literal,
// e.g. ['Attack', 'Fireball'], the form readers of the log expect.
func MovesetLiteral(moves []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, m := range moves {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		for _, r := range m {
			if r == '\'' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}
