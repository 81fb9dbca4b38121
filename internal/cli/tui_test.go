package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridgen/pkg/grid"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m LayoutPickerModel, keys ...string) (LayoutPickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(LayoutPickerModel)
	}
	return m, cmd
}

func TestLayoutPickerNavigation(t *testing.T) {
	layouts := grid.DefaultCatalogue().List()
	m := NewLayoutPickerModel(layouts)

	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"stops at top", []string{"up", "k"}, 0},
		{"stops at bottom", []string{"down", "down", "down", "down", "down", "down", "down", "down", "down", "down"}, len(layouts) - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := press(m, tt.keys...)
			if got.Cursor != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", got.Cursor, tt.wantCursor)
			}
			if got.Selected != nil {
				t.Error("nothing should be selected without enter")
			}
		})
	}
}

func TestLayoutPickerSelect(t *testing.T) {
	layouts := grid.DefaultCatalogue().List()
	m, cmd := press(NewLayoutPickerModel(layouts), "down", "down", "enter")

	if m.Selected == nil || m.Selected.Name != layouts[2].Name {
		t.Fatalf("Selected = %+v, want %s", m.Selected, layouts[2].Name)
	}
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should return tea.Quit")
	}
}

func TestLayoutPickerQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := press(NewLayoutPickerModel(grid.DefaultCatalogue().List()), k)
		if m.Selected != nil {
			t.Errorf("%s: Selected = %+v, want nil", k, m.Selected)
		}
		if cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestLayoutPickerEmpty(t *testing.T) {
	m, cmd := press(NewLayoutPickerModel(nil), "down", "enter")
	if m.Selected != nil || cmd != nil {
		t.Errorf("empty picker selected %+v", m.Selected)
	}
}

func TestLayoutPickerScroll(t *testing.T) {
	layouts := grid.DefaultCatalogue().List()
	m := NewLayoutPickerModel(layouts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(LayoutPickerModel)
	if m.Height != 3 {
		t.Fatalf("Height = %d, want 3", m.Height)
	}

	m, _ = press(m, "down", "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	view := m.View()
	if !strings.Contains(view, layouts[4].Name) || strings.Contains(view, layouts[0].Name+" ") {
		t.Errorf("view should show the scrolled window:\n%s", view)
	}
	if !strings.Contains(view, "[5/") {
		t.Errorf("view should show the position:\n%s", view)
	}
}
