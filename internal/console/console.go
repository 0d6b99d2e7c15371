// Package console prints the operator-facing startup and shutdown text.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console writes human-readable status lines. Fancy output (emoji, box
// drawing) is used only when writing to a terminal.
type Console struct {
	w     io.Writer
	fancy bool
}

// New returns a Console on f, fancy when f is a terminal.
func New(f *os.File) *Console {
	return &Console{w: f, fancy: term.IsTerminal(int(f.Fd()))}
}

// NewWriter returns a Console on w with fancy output set explicitly.
func NewWriter(w io.Writer, fancy bool) *Console {
	return &Console{w: w, fancy: fancy}
}

// Banner is the text shown once the server is listening.
type Banner struct {
	Title string
	URL   string
	// Notes follow the URL line.
	Notes []string
	// Controls are shown as an indented list under "Controls:".
	Controls []string
	// Boxed draws the title inside a frame.
	Boxed bool
}

func (c *Console) mark(fancy, plain string) string {
	if c.fancy {
		return fancy
	}
	return plain
}

// Banner prints b.
func (c *Console) Banner(b Banner) {
	var sb strings.Builder
	sb.WriteString("\n")
	if b.Boxed {
		c.box(&sb, b.Title)
	} else {
		fmt.Fprintf(&sb, "%s%s\n", c.mark("🎮 ", ""), b.Title)
		underline := len(b.Title)
		if c.fancy {
			// Emoji renders two cells wide, plus the space.
			underline += 3
		}
		sb.WriteString(strings.Repeat("=", underline))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	ok := c.mark("✅ ", "* ")
	fmt.Fprintf(&sb, "%sServer running at: %s\n", ok, b.URL)
	for _, n := range b.Notes {
		fmt.Fprintf(&sb, "%s%s\n", ok, n)
	}
	sb.WriteString("\n")

	if len(b.Controls) > 0 {
		sb.WriteString("Controls:\n")
		for _, ctl := range b.Controls {
			fmt.Fprintf(&sb, "  - %s\n", ctl)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Press Ctrl+C to stop the server\n\n")
	io.WriteString(c.w, sb.String())
}

func (c *Console) box(sb *strings.Builder, title string) {
	tl, tr, bl, br, hz, vt := "+", "+", "+", "+", "-", "|"
	if c.fancy {
		tl, tr, bl, br, hz, vt = "╔", "╗", "╚", "╝", "═", "║"
	}
	inner := len(title) + 10
	line := strings.Repeat(hz, inner)
	fmt.Fprintf(sb, "%s%s%s\n", tl, line, tr)
	fmt.Fprintf(sb, "%s     %s     %s\n", vt, title, vt)
	fmt.Fprintf(sb, "%s%s%s\n", bl, line, br)
}

// Farewell prints the shutdown line.
func (c *Console) Farewell(msg string) {
	fmt.Fprintf(c.w, "\n\n%s%s\n", c.mark("👋 ", ""), msg)
}
