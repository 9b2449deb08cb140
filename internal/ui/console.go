package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Console prints operator-facing output. Colours are dropped automatically when out is
// not a terminal.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Writer exposes the underlying writer, e.g. for a progress bar.
func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) print(style lipgloss.Style, format string, args ...interface{}) {
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Title(format string, args ...interface{})   { c.print(titleStyle, format, args...) }
func (c *Console) Heading(format string, args ...interface{}) { c.print(boldStyle, format, args...) }
func (c *Console) Info(format string, args ...interface{})    { c.print(infoStyle, format, args...) }
func (c *Console) Success(format string, args ...interface{}) { c.print(successStyle, format, args...) }
func (c *Console) Warn(format string, args ...interface{})    { c.print(warnStyle, format, args...) }
func (c *Console) Error(format string, args ...interface{})   { c.print(errorStyle, format, args...) }
func (c *Console) Muted(format string, args ...interface{})   { c.print(mutedStyle, format, args...) }
func (c *Console) Accent(format string, args ...interface{})  { c.print(accentStyle, format, args...) }

// Println writes an unstyled line.
func (c *Console) Println(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Count renders a number in the highlight colour for inline use.
func Count(n int) string {
	return countStyle.Render(fmt.Sprint(n))
}
