package ui

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Effects are fire-and-forget: they are started from a mutation outcome,
// advance on their own tick messages and never touch the store.

type severity int

const (
	severitySuccess severity = iota
	severityError
	severityInfo
)

func (s severity) style() lipgloss.Style {
	switch s {
	case severitySuccess:
		return toastBase.Background(lipgloss.Color(colorSuccess))
	case severityError:
		return toastBase.Background(lipgloss.Color(colorError))
	default:
		return toastBase.Background(lipgloss.Color(colorInfo))
	}
}

type toast struct {
	text     string
	severity severity
	seq      int
}

type toastExpiredMsg struct{ seq int }

func (t *toast) view() string {
	if t == nil {
		return ""
	}
	return t.severity.style().Render(t.text)
}

func expireToast(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

const (
	confettiPieces = 24
	confettiFrames = 25
	confettiTick   = 100 * time.Millisecond
)

var (
	confettiColors = []string{colorViolet, colorPink, colorCyan, colorAmber, colorWhite}
	confettiGlyphs = []rune{'●', '■', '◆', '▲', '•'}
)

type confettiPiece struct {
	x     int
	drift int
	glyph rune
	color lipgloss.Color
}

type confetti struct {
	pieces []confettiPiece
	frame  int
	width  int
	seq    int
}

type confettiFrameMsg struct{ seq int }

func newConfetti(rng *rand.Rand, width, seq int) *confetti {
	c := &confetti{width: width, seq: seq}
	for range confettiPieces {
		c.pieces = append(c.pieces, confettiPiece{
			x:     rng.IntN(width),
			drift: rng.IntN(5) - 2,
			glyph: confettiGlyphs[rng.IntN(len(confettiGlyphs))],
			color: lipgloss.Color(confettiColors[rng.IntN(len(confettiColors))]),
		})
	}
	return c
}

// advance moves to the next frame and reports whether the effect is done.
func (c *confetti) advance() bool {
	c.frame++
	return c.frame >= confettiFrames
}

func (c *confetti) view() string {
	if c == nil || c.width <= 0 {
		return ""
	}
	cells := make([]string, c.width)
	for i := range cells {
		cells[i] = " "
	}
	// Pieces thin out as the effect fades.
	visible := len(c.pieces) * (confettiFrames - c.frame) / confettiFrames
	for _, p := range c.pieces[:visible] {
		x := ((p.x+p.drift*c.frame)%c.width + c.width) % c.width
		cells[x] = lipgloss.NewStyle().Foreground(p.color).Render(string(p.glyph))
	}
	return strings.Join(cells, "")
}

func nextConfettiFrame(seq int) tea.Cmd {
	return tea.Tick(confettiTick, func(time.Time) tea.Msg { return confettiFrameMsg{seq: seq} })
}

func newStarfield(rng *rand.Rand, width int) string {
	var b strings.Builder
	for range width {
		switch r := rng.Float64(); {
		case r < 0.02:
			b.WriteRune('✦')
		case r < 0.06:
			b.WriteRune('*')
		case r < 0.18:
			b.WriteRune('·')
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
