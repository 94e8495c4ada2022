package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Console palette
var (
	colorAccent  = lipgloss.Color("#5FAFD7")
	colorBorder  = lipgloss.Color("#3A6F8F")
	colorMuted   = lipgloss.Color("#6C7A89")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
)

type styles struct {
	Title    lipgloss.Style
	Question lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title:    r.NewStyle().Bold(true).Foreground(colorAccent),
		Question: r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(colorMuted),
		Success:  r.NewStyle().Bold(true).Foreground(colorSuccess),
		Warning:  r.NewStyle().Foreground(colorWarning),
		Error:    r.NewStyle().Bold(true).Foreground(colorError),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
	}
}

// output writes the candidate-facing console. With plain set nothing is styled, so
// the text can be piped or captured.
type output struct {
	w      io.Writer
	plain  bool
	styles styles
}

func newOutput(w io.Writer, noColor bool) *output {
	return &output{
		w:      w,
		plain:  noColor,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

func (o *output) render(style lipgloss.Style, s string) string {
	if o.plain {
		return s
	}
	return style.Render(s)
}

func (o *output) println(s string) {
	_, _ = fmt.Fprintln(o.w, s)
}

func (o *output) title(s string) {
	o.println(o.render(o.styles.Title, s))
}

func (o *output) info(s string) {
	o.println(o.render(o.styles.Muted, s))
}

func (o *output) prompt(s string) {
	o.println(s)
}

func (o *output) warn(s string) {
	o.println(o.render(o.styles.Warning, "Warning: "+s))
}

func (o *output) errorf(format string, args ...any) {
	o.println(o.render(o.styles.Error, "Error: "+fmt.Sprintf(format, args...)))
}

// box prints body under title, framed unless the output is plain.
func (o *output) box(title, body string) {
	body = strings.TrimSpace(body)
	if o.plain {
		o.println("== " + title + " ==")
		o.println(body)
		return
	}
	o.println(o.styles.Box.Render(o.styles.Title.Render(title) + "\n\n" + body))
}

// labeled prints "label: value" with the value emphasized.
func (o *output) labeled(label, value string) {
	o.println(label + ": " + o.render(o.styles.Success, value))
}

// Present implements session.Presenter.
func (o *output) Present(turn int, question string) error {
	label := fmt.Sprintf("Q%d:", turn)
	_, err := fmt.Fprintf(o.w, "\n%s %s\n", o.render(o.styles.Muted, label), o.render(o.styles.Question, question))
	return err
}
