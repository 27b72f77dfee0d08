// Package input is a single line text field driven by key presses.
package input

import (
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

const defaultMaxLength = 100

// TextInput is an editable text field
type TextInput struct {
	value     []rune
	cursor    int
	maxLength int
}

func New(value string, maxLength int) TextInput {
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	runes := []rune(value)
	return TextInput{
		value:     runes,
		cursor:    len(runes),
		maxLength: maxLength,
	}
}

// Update edits the field, reporting whether the value changed.
func (t TextInput) Update(msg tea.KeyPressMsg) (TextInput, bool) {
	old := string(t.value)

	switch key := msg.String(); key {
	case "backspace":
		if t.cursor > 0 {
			t.value = splice(t.value, t.cursor-1, t.cursor, nil)
			t.cursor--
		}
	case "delete":
		if t.cursor < len(t.value) {
			t.value = splice(t.value, t.cursor, t.cursor+1, nil)
		}
	case "left":
		if t.cursor > 0 {
			t.cursor--
		}
	case "right":
		if t.cursor < len(t.value) {
			t.cursor++
		}
	case "home", "ctrl+a":
		t.cursor = 0
	case "end", "ctrl+e":
		t.cursor = len(t.value)
	case "ctrl+u":
		t.value = nil
		t.cursor = 0
	case "space":
		t = t.insert(' ')
	default:
		// Insert printable single characters only
		if utf8.RuneCountInString(key) == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			t = t.insert(r)
		}
	}

	return t, string(t.value) != old
}

func (t TextInput) Value() string {
	return string(t.value)
}

func (t TextInput) Cursor() int {
	return t.cursor
}

// Render shows the value with a block cursor.
func (t TextInput) Render() string {
	before := string(t.value[:t.cursor])
	if t.cursor >= len(t.value) {
		return before + "█"
	}
	return before + "█" + string(t.value[t.cursor+1:])
}

// unexported

func (t TextInput) insert(r rune) TextInput {
	if len(t.value) >= t.maxLength {
		return t
	}
	t.value = splice(t.value, t.cursor, t.cursor, []rune{r})
	t.cursor++
	return t
}

func splice(runes []rune, from, to int, insert []rune) []rune {
	out := make([]rune, 0, len(runes)-(to-from)+len(insert))
	out = append(out, runes[:from]...)
	out = append(out, insert...)
	return append(out, runes[to:]...)
}
