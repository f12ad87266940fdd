package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Today", HumanDate(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1), now))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"older", now.AddDate(0, 0, -1), "Yesterday"},
		{"future", now.Add(time.Hour), "Today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.input, now))
		})
	}
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree four\nfive", WrapText("one two three four five", 10))
	assert.Equal(t, "a\n\nb", WrapText("a\n\nb", 10))
	assert.Equal(t, "supercalifragilistic", WrapText("supercalifragilistic", 5))
}

func TestWrapText_CountsCellsNotBytes(t *testing.T) {
	// Each word is 4 cells but 5 bytes.
	got := WrapText("café café café", 9)
	assert.Equal(t, "café café\ncafé", got)
}

func TestIndentWrapped(t *testing.T) {
	assert.Equal(t, "  alpha\n  beta\n  gamma", IndentWrapped("alpha beta gamma", 2, 8))
}

func TestRenderBox(t *testing.T) {
	out := stripANSI(RenderBox("Profile", "hello"))
	assert.Contains(t, out, "Profile")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╭")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	out := stripANSI(RenderBox("", "content only"))
	assert.Contains(t, out, "content only")
	assert.Contains(t, out, "╰")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "TITLE"}, [][]string{
		{"1", "Drip"},
		{"22", "Organic"},
	}))
	lines := regexp.MustCompile("\n").Split(out, -1)
	assert.Equal(t, "ID  TITLE", lines[0])
	assert.Equal(t, "1   Drip", lines[2])
	assert.Equal(t, "22  Organic", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_UnderlinesHeaders(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "TITLE"}, [][]string{{"7", "Mulching"}}))
	lines := regexp.MustCompile("\n").Split(out, -1)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "ID  TITLE", lines[0])
	assert.Equal(t, "──  ────────", lines[1])
}
