package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/redactchat/internal/config"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		contains string
	}{
		{name: "heading", input: "# Redacted summary", width: 80, contains: "summary"},
		{name: "bold", input: "The **[REDACTED]** field", width: 80, contains: "REDACTED"},
		{name: "code block", input: "```go\nfmt.Println(\"hi\")\n```", width: 80, contains: "Println"},
		{name: "list", input: "- one\n- two", width: 80, contains: "two"},
		{name: "narrow", input: "# A heading that should wrap somewhere", width: 20, contains: "heading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown(tt.input, DefaultOptions().WithWidth(tt.width))
			if err != nil {
				t.Fatalf("Markdown() error = %v", err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output should contain %q, got: %s", tt.contains, out)
			}
		})
	}
}

func TestMarkdown_Emoji(t *testing.T) {
	out, err := Markdown("done :smile:", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if strings.Contains(out, ":smile:") {
		t.Errorf("emoji should have been converted, got: %s", out)
	}

	out, err = Markdown("done :smile:", DefaultOptions().WithEmoji(false))
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(out, ":smile:") {
		t.Errorf("emoji should be left alone, got: %s", out)
	}
}

func TestMarkdown_InvalidStyle(t *testing.T) {
	if _, err := Markdown("# x", DefaultOptions().WithStyle("no_such_style_file")); err == nil {
		t.Error("expected error for invalid style path")
	}
}

func TestReply(t *testing.T) {
	out, err := Reply("hi there", DefaultOptions())
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("Reply() should trim blank lines: %q", out)
	}
	if !strings.Contains(out, "there") {
		t.Errorf("Reply() = %q", out)
	}

	out, err = Reply("plain", DefaultOptions().WithStyle("no_such_style_file"))
	if err == nil {
		t.Error("expected error")
	}
	if out != "plain" {
		t.Errorf("Reply() should fall back to the input, got %q", out)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv(EnvGlamourStyle, "")

	md := config.DefaultMarkdownConfig()
	md.Style = "light"
	md.EnableEmoji = false

	opts := FromConfig(md, 100)
	if opts.Style != "light" || opts.EnableEmoji || opts.Width != 100 {
		t.Errorf("FromConfig() = %+v", opts)
	}

	t.Setenv(EnvGlamourStyle, "notty")
	if opts := FromConfig(md, 0); opts.Style != "notty" || opts.Width != 80 {
		t.Errorf("FromConfig() with env = %+v", opts)
	}
}

func TestPool(t *testing.T) {
	resetPool()
	defer resetPool()

	opts := DefaultOptions()
	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("# concurrent", opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent render: %v", err)
	}

	if poolSize() != 1 {
		t.Errorf("poolSize() = %d, want 1", poolSize())
	}
	if _, err := Markdown("x", opts.WithWidth(40)); err != nil {
		t.Fatal(err)
	}
	if poolSize() != 2 {
		t.Errorf("poolSize() = %d, want 2", poolSize())
	}
}

func BenchmarkMarkdown(b *testing.B) {
	content := "# Answer\n\nThe **[REDACTED]** customer asked about `invoices`.\n\n- one\n- two\n"
	opts := DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Markdown(content, opts); err != nil {
			b.Fatal(err)
		}
	}
}
