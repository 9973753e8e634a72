// Package ui renders analysis results in the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"inflammation/domain/dataset"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Renderer writes views with a fixed number of decimal places.
type Renderer struct {
	w         io.Writer
	precision int
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, precision int) *Renderer {
	return &Renderer{w: w, precision: precision}
}

// RenderView writes the title followed by one line per series.
func (r *Renderer) RenderView(view dataset.View) error {
	var b strings.Builder
	if view.Title != "" {
		b.WriteString(titleStyle.Render(view.Title))
		b.WriteByte('\n')
	}

	width := 0
	for _, s := range view.Series {
		width = max(width, lipgloss.Width(s.Label))
	}
	for _, s := range view.Series {
		b.WriteString(labelStyle.Width(width).Render(s.Label))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(r.formatValues(s.Values)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderTable writes a table one patient per line.
func (r *Renderer) RenderTable(title string, table *dataset.Table) error {
	view := dataset.View{Title: title}
	for i := 0; i < table.Patients(); i++ {
		view.Add(fmt.Sprintf("%s %d", dataset.LabelNormalisedRow, i+1), table.Row(i))
	}
	return r.RenderView(view)
}

func (r *Renderer) formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', r.precision, 64)
	}
	return strings.Join(parts, " ")
}
