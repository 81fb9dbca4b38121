package grid

import (
	"testing"

	"github.com/matzehuels/gridgen/pkg/errors"
)

func TestDefaultCatalogue(t *testing.T) {
	cat := DefaultCatalogue()
	want := []string{"2-col", "3-col", "4-col", "2-row", "3-row", "4-row", "holy-grail"}

	list := cat.List()
	if len(list) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].Name, name)
		}
	}

	hg, ok := cat.Lookup("holy-grail")
	if !ok {
		t.Fatal("holy-grail missing")
	}
	if !hg.IsQuery() || hg.Query != HolyGrailQuery || !hg.Spacing || !hg.Highlight {
		t.Errorf("holy-grail = %+v", hg)
	}
}

func TestCatalogueWith(t *testing.T) {
	base := DefaultCatalogue()
	ext, err := base.With(
		Layout{Name: "cards", Columns: 3, Rows: 2},
		Layout{Name: "2-col", Columns: 2, Rows: 2},
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := base.Lookup("cards"); ok {
		t.Error("With() modified the receiver")
	}
	if l, _ := base.Lookup("2-col"); l.Rows != 1 {
		t.Errorf("base 2-col rows = %d, want 1", l.Rows)
	}
	if l, _ := ext.Lookup("2-col"); l.Rows != 2 {
		t.Errorf("override 2-col rows = %d, want 2", l.Rows)
	}
	if got := len(ext.List()); got != 8 {
		t.Errorf("len(List()) = %d, want 8", got)
	}
	names := ext.Names()
	if names[0] != "2-col" || names[len(names)-1] != "holy-grail" {
		t.Errorf("Names() = %v", names)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		code   errors.Code
	}{
		{"valid query", Layout{Name: "x", Query: "a/b"}, ""},
		{"valid dims", Layout{Name: "x", Columns: 2, Rows: 3}, ""},
		{"bad name", Layout{Name: "Bad Name", Query: "a"}, errors.ErrCodeUnknownLayout},
		{"both", Layout{Name: "x", Query: "a", Columns: 2, Rows: 2}, errors.ErrCodeInvalidConfig},
		{"neither", Layout{Name: "x"}, errors.ErrCodeInvalidConfig},
		{"bad query", Layout{Name: "x", Query: "a//b"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %q, want %q (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestNewCatalogueAggregatesErrors(t *testing.T) {
	_, err := NewCatalogue(Layout{Name: "a"}, Layout{Name: "b", Query: "x"}, Layout{Name: "c", Query: "/"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(errors.List(err)); got != 2 {
		t.Errorf("got %d errors, want 2: %v", got, err)
	}
}
