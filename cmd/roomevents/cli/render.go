// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// previewWidth bounds the content preview of a summary line, in
// terminal cells.
const previewWidth = 72

// Renderer writes human-facing output. With color enabled JSON is
// syntax-highlighted and summary fields are styled; otherwise output
// is plain text suitable for pipes and golden tests.
type Renderer struct {
	out   io.Writer
	color bool

	typeStyle   lipgloss.Style
	stateStyle  lipgloss.Style
	senderStyle lipgloss.Style
	dimStyle    lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewRenderer returns a Renderer for out. Color is enabled only when
// out is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer) *Renderer {
	return newRenderer(out, colorEnabled(out))
}

// NewPlainRenderer returns a Renderer that never emits escape
// sequences.
func NewPlainRenderer(out io.Writer) *Renderer {
	return newRenderer(out, false)
}

func newRenderer(out io.Writer, color bool) *Renderer {
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(termenv.ANSI256))
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:         out,
		color:       color,
		typeStyle:   renderer.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		stateStyle:  renderer.NewStyle().Foreground(lipgloss.Color("179")),
		senderStyle: renderer.NewStyle().Foreground(lipgloss.Color("114")),
		dimStyle:    renderer.NewStyle().Foreground(lipgloss.Color("245")),
		errorStyle:  renderer.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

func colorEnabled(out io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Color reports whether the renderer emits escape sequences.
func (r *Renderer) Color() bool { return r.color }

// JSON writes data followed by a newline, highlighted when color is
// enabled. Highlighting failures fall back to the raw bytes.
func (r *Renderer) JSON(data []byte) error {
	if r.color {
		var buffer bytes.Buffer
		if err := quick.Highlight(&buffer, string(data), "json", "terminal256", "monokai"); err == nil {
			data = buffer.Bytes()
		}
	}
	if _, err := r.out.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(r.out, "\n")
	return err
}

// Summary describes one event for a single-line listing.
type Summary struct {
	// Position is the input position shown first, e.g. "3" or "line 7".
	Position string

	Type      string
	StateKey  *string
	Sender    string
	EventID   string
	Class     string
	Variant   string
	Preview   string
	Timestamp string
}

// Summary writes one line for an event:
//
//	3  m.room.member[@bob:example.org]  @alice:example.org  $ev:example.org  state/typed  {"membership":"join"}
func (r *Renderer) Summary(summary Summary) error {
	eventType := r.typeStyle.Render(summary.Type)
	if summary.StateKey != nil {
		eventType += r.stateStyle.Render("[" + *summary.StateKey + "]")
	}
	fields := []string{
		r.dimStyle.Render(summary.Position),
		eventType,
		r.senderStyle.Render(summary.Sender),
	}
	if summary.EventID != "" {
		fields = append(fields, summary.EventID)
	}
	if summary.Timestamp != "" {
		fields = append(fields, r.dimStyle.Render(summary.Timestamp))
	}
	fields = append(fields, r.dimStyle.Render(summary.Class+"/"+summary.Variant))
	if summary.Preview != "" {
		fields = append(fields, Truncate(summary.Preview, previewWidth))
	}
	_, err := fmt.Fprintln(r.out, strings.Join(fields, "  "))
	return err
}

// Failure writes a failed input position and its error.
func (r *Renderer) Failure(position string, err error) error {
	_, writeErr := fmt.Fprintf(r.out, "%s  %s %v\n",
		r.dimStyle.Render(position), r.errorStyle.Render("error:"), err)
	return writeErr
}

// Truncate shortens s to at most width terminal cells, marking the cut
// with an ellipsis. Escape sequences do not count toward the width.
func Truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
