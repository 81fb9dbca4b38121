package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		cells, columns, rows int
		cached               bool
		want                 []string
	}{
		{5, 4, 3, false, []string{"5 cells", "4 columns", "3 rows", iconFresh}},
		{1, 1, 1, true, []string{"1 cell", "1 column", "1 row", iconCached}},
	}
	for _, tt := range tests {
		got := statsLine(tt.cells, tt.columns, tt.rows, tt.cached)
		for _, want := range tt.want {
			if !strings.Contains(got, want) {
				t.Errorf("statsLine(%d, %d, %d, %v) = %q, missing %q", tt.cells, tt.columns, tt.rows, tt.cached, got, want)
			}
		}
	}
}
