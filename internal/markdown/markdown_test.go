package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render("# Title\n\nsome **bold** text")
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	got := Render(`hello <script>alert("x")</script> world`)
	if strings.Contains(got, "<script") || strings.Contains(got, "alert") {
		t.Errorf("script survived sanitization: %q", got)
	}

	got = Render(`[click](javascript:alert(1))`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript link survived: %q", got)
	}
}

func TestRenderGFMTable(t *testing.T) {
	got := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "<table") {
		t.Errorf("table not rendered: %q", got)
	}
}
