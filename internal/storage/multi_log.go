package storage

import (
	"errors"
	"sync"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/logging"
)

// MultiLog fans one summary out to several stores. Every store is tried;
// the joined errors of the failing ones are returned. A store that already
// took a battle is skipped when the same battle is appended again, so a
// retry after a partial failure only reaches the stores that failed.
type MultiLog struct {
	logs []CombatLog

	mu sync.Mutex
	// written maps a battle ID with a pending failure to the indexes of the
	// stores that already hold it.
	written map[string]map[int]bool
}

func NewMultiLog(logs ...CombatLog) *MultiLog {
	m := &MultiLog{written: make(map[string]map[int]bool)}
	for _, l := range logs {
		if l != nil {
			m.logs = append(m.logs, l)
		}
	}
	return m
}

func (m *MultiLog) Append(s game.BattleSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	done := m.written[s.BattleID]
	var errs []error
	for i, l := range m.logs {
		if done[i] {
			continue
		}
		if err := l.Append(s); err != nil {
			logging.Error("combat log append failed", err, logging.Fields{constants.LogFieldBattleID: s.BattleID})
			errs = append(errs, err)
			continue
		}
		if done == nil {
			done = make(map[int]bool, len(m.logs))
		}
		done[i] = true
	}
	if len(errs) == 0 {
		delete(m.written, s.BattleID)
		return nil
	}
	m.written[s.BattleID] = done
	return errors.Join(errs...)
}
