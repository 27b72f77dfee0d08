package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func typed(text string) []tea.KeyPressMsg {
	var keys []tea.KeyPressMsg
	for _, r := range text {
		keys = append(keys, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return keys
}

func feed(t TextInput, keys ...tea.KeyPressMsg) TextInput {
	for _, key := range keys {
		t, _ = t.Update(key)
	}
	return t
}

func TestTextInput_Typing(t *testing.T) {
	in := feed(New("", 0), typed("sqlprød")...)
	assert.Equal(t, "sqlprød", in.Value())
	assert.Equal(t, 7, in.Cursor())

	in = feed(in, tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "sqlpr", in.Value()[:5])
	assert.Equal(t, "sqlprø", in.Value())
}

func TestTextInput_CursorEditing(t *testing.T) {
	in := New("prod", 0)

	in = feed(in, tea.KeyPressMsg{Code: tea.KeyHome})
	in = feed(in, typed("sql")...)
	assert.Equal(t, "sqlprod", in.Value())

	in = feed(in, tea.KeyPressMsg{Code: tea.KeyDelete})
	assert.Equal(t, "sqlrod", in.Value())
	assert.Equal(t, "sql█od", in.Render())
}

func TestTextInput_ReportsChange(t *testing.T) {
	in := New("ab", 2)

	_, changed := in.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	assert.False(t, changed)

	_, changed = in.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.False(t, changed)

	_, changed = in.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.True(t, changed)
}
