package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomui/loom/pkg/registry"
)

func pickerFixture() pickerModel {
	return newPickerModel([]registry.Component{
		{ID: "badge", Name: "Badge"},
		{ID: "button", Name: "Button", Description: "A clickable button"},
		{ID: "card", Name: "Card"},
	})
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m pickerModel, msg tea.Msg) pickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(pickerModel)
	if !ok {
		t.Fatalf("Update returned %T, want pickerModel", next)
	}
	return out
}

func TestPickerToggleAndConfirm(t *testing.T) {
	m := pickerFixture()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace}) // toggle badge
	m = update(t, m, key("j"))                       // move to button
	m = update(t, m, key("j"))                       // move to card
	m = update(t, m, key("x"))                       // toggle card
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Confirmed {
		t.Fatal("enter should confirm the selection")
	}
	got := m.selected()
	want := []string{"badge", "card"}
	if len(got) != len(want) {
		t.Fatalf("selected() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selected()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPickerToggleTwiceDeselects(t *testing.T) {
	m := pickerFixture()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if len(m.selected()) != 0 {
		t.Errorf("selected() = %v, want empty after double toggle", m.selected())
	}
}

func TestPickerCursorBounds(t *testing.T) {
	m := pickerFixture()

	m = update(t, m, key("k"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first entry: %d", m.Cursor)
	}

	for i := 0; i < 10; i++ {
		m = update(t, m, key("j"))
	}
	if m.Cursor != len(m.Components)-1 {
		t.Errorf("cursor = %d, want %d", m.Cursor, len(m.Components)-1)
	}
}

func TestPickerAbort(t *testing.T) {
	m := pickerFixture()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.Aborted {
		t.Fatal("esc should abort the picker")
	}
	if m.Confirmed {
		t.Error("aborted picker must not be confirmed")
	}
}
