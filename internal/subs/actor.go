package subs

import "strings"

// StripBrackets removes leading "[(" and trailing ")]" decorations from actor names.
func StripBrackets(text string) string {
	return strings.TrimRight(strings.TrimLeft(text, "[("), ")]")
}

func (e *Event) role() string {
	return StripBrackets(e.Actor)
}

// IsSign reports whether the event typesets on-screen text.
func (e *Event) IsSign() bool {
	switch e.role() {
	case "sign", "episode title", "series title":
		return true
	}
	return false
}

// IsTitle reports whether the event is a title card.
func (e *Event) IsTitle() bool { return e.role() == "title" }

// IsKaraoke reports whether the event is a song line.
func (e *Event) IsKaraoke() bool { return e.role() == "karaoke" }

// IsCredits reports whether the event is a credits line.
func (e *Event) IsCredits() bool { return e.role() == "credits" }

// IsDialog reports whether the event is spoken dialog.
func (e *Event) IsDialog() bool {
	return !e.IsSign() && !e.IsTitle() && !e.IsKaraoke() && !e.IsCredits()
}
