package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bannerDuration is how long a banner stays visible
const bannerDuration = 5 * time.Second

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerError
	bannerInfo
)

// banner is the transient dismissible message shown above every page.
// It never blocks interaction; pages keep rendering stale data below
// it.
type banner struct {
	kind bannerKind
	text string
	seq  int
}

// show replaces the banner and returns the tick that will dismiss it.
// The sequence number keeps an old tick from clearing a newer banner.
func (b *banner) show(kind bannerKind, text string) tea.Cmd {
	b.kind = kind
	b.text = text
	b.seq++
	seq := b.seq
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

// expire clears the banner if the tick matches the visible one
func (b *banner) expire(msg bannerExpiredMsg) {
	if msg.seq == b.seq {
		b.kind = bannerNone
		b.text = ""
	}
}

func (b *banner) view() string {
	switch b.kind {
	case bannerError:
		return bannerErrorStyle.Render("✗ " + b.text)
	case bannerInfo:
		return bannerInfoStyle.Render(b.text)
	}
	return ""
}
