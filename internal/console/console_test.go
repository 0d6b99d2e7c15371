package console

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestBannerPlain(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, false).Banner(Banner{
		Title:    "Arena Dev Server",
		URL:      "http://localhost:8000",
		Notes:    []string{"Open this in your browser to play!"},
		Controls: []string{"WASD: Move", "SPACE: Shoot"},
	})
	out := buf.String()

	for _, want := range []string{
		"Arena Dev Server\n================\n",
		"* Server running at: http://localhost:8000\n",
		"* Open this in your browser to play!\n",
		"Controls:\n  - WASD: Move\n  - SPACE: Shoot\n",
		"Press Ctrl+C to stop the server",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
	if strings.ContainsAny(out, "🎮✅") {
		t.Errorf("plain banner has emoji:\n%s", out)
	}
}

func TestBannerBoxed(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, true).Banner(Banner{Title: "ARENA", URL: "http://localhost:3000", Boxed: true})
	out := buf.String()

	if !strings.Contains(out, "║     ARENA     ║") {
		t.Errorf("boxed title missing:\n%s", out)
	}
	if strings.Contains(out, "Controls:") {
		t.Errorf("empty controls printed:\n%s", out)
	}
}

func TestFarewell(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, false).Farewell("Server stopped.")
	if got := buf.String(); got != "\n\nServer stopped.\n" {
		t.Errorf("Farewell = %q", got)
	}
}

func TestNewNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if New(f).fancy {
		t.Error("regular file reported as terminal")
	}
}
