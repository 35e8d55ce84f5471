package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow("Alice", "30")
	table.AddRow("Bob")
	table.AddRow("Charlie", "25", "Extra")

	want := [][]string{{"Alice", "30"}, {"Bob", ""}, {"Charlie", "25"}}
	if !reflect.DeepEqual(table.rows, want) {
		t.Errorf("rows = %q, want %q", table.rows, want)
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"ROLE", "HEX"})
	table.AddRow("primary", "#D2501E")
	table.AddRow("accent", "#1E64C8")

	want := "ROLE     HEX\n" +
		"-------  -------\n" +
		"primary  #D2501E\n" +
		"accent   #1E64C8\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderWraps(t *testing.T) {
	table := NewTable([]string{"METRIC", "VALUE"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow("exposure", "mid-key medium contrast")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	want := []string{
		"METRIC    VALUE",
		"--------  --------",
		"exposure  mid-key",
		"          medium",
		"          contrast",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Render() lines = %q, want %q", lines, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "short", width: 10, want: []string{"short"}},
		{name: "no limit", text: "a long line", width: 0, want: []string{"a long line"}},
		{name: "words", text: "one two three", width: 7, want: []string{"one two", "three"}},
		{name: "long word", text: "abcdefghij xy", width: 4, want: []string{"abcd", "efgh", "ij", "xy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
