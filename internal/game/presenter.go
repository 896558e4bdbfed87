package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bbq/internal/battle"
)

// BrokenColor paints the BROKEN shield label and the BREAK! marker.
var BrokenColor = tcell.ColorRed

// TextPresenter prints one line per event. Gauge-only events are skipped
// unless Verbose is set. With Color set, the enemy name is drawn in its
// tint and break markers in BrokenColor using 24-bit ANSI escapes.
type TextPresenter struct {
	W       io.Writer
	Verbose bool
	Color   bool

	enemy string
	tint  tcell.Color
}

// Present implements Presenter.
func (p *TextPresenter) Present(ev *battle.Event) {
	if ev.Kind == battle.EventBattleStart && ev.Enemy != nil {
		p.enemy, p.tint = ev.Enemy.Name, ev.Enemy.Tint
	}
	if !p.Verbose && (ev.Kind == battle.EventTurnStart || ev.Kind == battle.EventRoundEnd) {
		return
	}

	msg := ev.Message
	if p.Color && p.enemy != "" {
		msg = strings.ReplaceAll(msg, p.enemy, p.paint(p.enemy, p.tint))
	}
	line := fmt.Sprintf("[T%d #%d] %s", ev.Turn, ev.Tick, msg)
	if ev.IsWeaknessHit {
		line += " Weakness!"
	}
	if ev.IsShieldBroken {
		line += " " + p.paint("BREAK!", BrokenColor)
	}
	for _, fx := range ev.Effects {
		if fx.IsCritical {
			line += " Critical!"
			break
		}
	}
	if ev.Shield != nil && (ev.IsWeaknessHit || ev.ShieldLost > 0) {
		label := ev.Shield.Label
		if ev.Shield.Broken {
			label = p.paint(label, BrokenColor)
		}
		line += fmt.Sprintf(" (shield %s %s)", label, ev.Shield.WeaknessRow())
	}
	fmt.Fprintln(p.W, line)
}

// paint wraps s in a foreground escape for c. Plain output and colors
// without an RGB value leave s unchanged.
func (p *TextPresenter) paint(s string, c tcell.Color) string {
	if !p.Color {
		return s
	}
	r, g, b := c.RGB()
	if r < 0 {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
}
