package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/config"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/service"
)

// frameInterval paces Tick calls at 60 per second.
const frameInterval = time.Second / 60

const helpText = `commands:
  attack | a              basic attack
  defend | d              halve the next hit
  ability | ab [name]     toggle the ability list, or cast name
  item | i [name]         toggle the item list, or use name
  parry | p               parry while the window is open
  restart | r             fight the current stage again
  stage N                 fight stage N
  retry                   retry a failed combat-log write
  help | h                this text
  quit | q                leave

The parry window is short by default. To widen it, raise
timing.parry_window_ms (and strike_ms with it) in the config file.`

var shortcuts = map[string]string{
	"a":  "attack",
	"d":  "defend",
	"ab": "ability",
	"i":  "item",
	"p":  "parry",
	"r":  "restart",
	"h":  "help",
	"q":  "quit",
}

type terminal struct {
	out     io.Writer
	catalog *engine.Catalog
	last    engine.Snapshot
}

func (t *terminal) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) onEvent(e engine.Event) {
	switch e.Kind {
	case engine.EventParryWindowOpened:
		t.printf("  >> %s winds up. Parry now! (p)\n", e.Actor)
	case engine.EventParryReady:
		t.printf("  >> %s braces to parry.\n", e.Actor)
	case engine.EventKnockedOut:
		t.printf("  >> %s is knocked out.\n", e.Actor)
	}
}

func (t *terminal) render(s engine.Snapshot) {
	t.last = s
	t.printf("\n%s  HP %d/%d  MP %d/%d%s\n", s.Player.Name, s.Player.Health, s.Player.MaxHealth, s.Player.Mana, s.Player.MaxMana, stance(s.Player))
	t.printf("%s  HP %d/%d  MP %d/%d%s\n", s.Enemy.Name, s.Enemy.Health, s.Enemy.MaxHealth, s.Enemy.Mana, s.Enemy.MaxMana, stance(s.Enemy))
	t.printf("%s\n", s.ActionMessage)
	if s.ShowAbilities {
		for _, a := range s.Player.Abilities {
			t.printf("  %-10s %s\n", a, t.catalog.DescribeAbility(a))
		}
	}
	if s.ShowItems {
		for _, it := range s.Player.Items {
			t.printf("  %-10s %s\n", it, t.catalog.DescribeItem(it))
		}
	}
}

func stance(c engine.CombatantView) string {
	if c.DefendStance {
		return "  [defending]"
	}
	return ""
}

func changed(a, b engine.Snapshot) bool {
	return a.State != b.State || a.ActionMessage != b.ActionMessage ||
		a.Player.Health != b.Player.Health || a.Enemy.Health != b.Enemy.Health
}

// runInteractive reads commands from in on a separate goroutine and drives
// the session from this one, so the battle itself stays single-threaded.
func runInteractive(ctx context.Context, cfg *config.LoadedConfig, log engine.CombatLog, stage int, in io.Reader, out io.Writer) error {
	ui := &terminal{out: out, catalog: engine.DefaultCatalog()}
	sess := service.NewSession(cfg, log, service.SessionOptions{Events: engine.EventFunc(ui.onEvent)})
	if _, err := sess.Start(stage); err != nil {
		return err
	}
	ui.printf("%s\n", helpText)
	ui.render(sess.Battle().Snapshot())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := ui.handle(sess, time.Now(), line); quit {
				return nil
			}
		case now := <-ticker.C:
			err := sess.Tick(now)
			ui.reportLogError(err)
			if snap := sess.Battle().Snapshot(); changed(ui.last, snap) {
				ui.render(snap)
				ui.showReport(sess)
			}
		}
	}
}

// handle runs one command line and reports whether the player quit.
func (t *terminal) handle(sess *service.Session, now time.Time, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	if full, ok := shortcuts[cmd]; ok {
		cmd = full
	}
	arg := strings.Join(fields[1:], " ")

	if kind, ok := game.ParseActionKind(cmd); ok {
		_, err := sess.Submit(now, engine.Action{Kind: kind, Choice: arg})
		t.reportLogError(err)
		t.render(sess.Battle().Snapshot())
		t.showReport(sess)
		return false
	}

	switch cmd {
	case "parry":
		if !sess.Parry(now) {
			t.printf("  (too early or too late)\n")
		}
	case "restart":
		if _, err := sess.Restart(); err != nil {
			t.printf("%v\n", err)
			return false
		}
		t.render(sess.Battle().Snapshot())
	case "stage":
		n, err := strconv.Atoi(arg)
		if err == nil {
			_, err = sess.Start(n)
		}
		if err != nil {
			t.printf("cannot start stage %q: %v (stages: %v)\n", arg, err, sess.Stages())
			return false
		}
		t.render(sess.Battle().Snapshot())
	case "retry":
		if err := sess.RetryLog(); err != nil {
			t.reportLogError(err)
		} else {
			t.printf("combat log is up to date\n")
		}
	case "help":
		t.printf("%s\n", helpText)
	case "quit":
		return true
	default:
		t.printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func (t *terminal) reportLogError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, engine.ErrPersistence) {
		t.printf("warning: the combat log could not be written (%v). Type retry to try again.\n", err)
		return
	}
	t.printf("error: %v\n", err)
}

func (t *terminal) showReport(sess *service.Session) {
	if summary, over := sess.Battle().Summary(); over {
		t.printf("\n%s", summary.Text())
		t.printf("Type restart, stage N or quit.\n")
	}
}
