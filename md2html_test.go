package resumake

import (
	"context"
	"strings"
	"testing"
)

func TestGoldmarkConverterToHTML(t *testing.T) {
	t.Parallel()

	converter := newGoldmarkConverter()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading with auto id",
			input:    "# Hello",
			contains: []string{`<h1 id="hello">Hello</h1>`},
		},
		{
			name:     "hard wraps emit br",
			input:    "line one\nline two",
			contains: []string{"<br />"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fenced code highlighted inline",
			input:    "```go\npackage main\n```",
			contains: []string{"<pre", "style="},
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestGoldmarkConverterCanceledContext(t *testing.T) {
	t.Parallel()

	converter := newGoldmarkConverter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := converter.ToHTML(ctx, "# Hello")
	if err == nil {
		t.Fatal("ToHTML() with canceled context should return an error")
	}
	if err != context.Canceled {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
