// Package chart renders expense report charts as PNG images on disk.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	chartlib "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/finzap/finzap/internal/model"
)

const maxPieSlices = 5

// Renderer writes chart images under a working directory. Callers are
// expected to delete the file after sending it.
type Renderer struct {
	dir string
}

// NewRenderer creates a Renderer writing into dir, which is created if
// missing. An empty dir falls back to the system temp directory.
func NewRenderer(dir string) (*Renderer, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "finzap-charts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

// WeeklyChart renders a bar chart of the report's daily totals and returns
// the path of the generated PNG.
func (r *Renderer) WeeklyChart(report *model.WeeklyReport) (string, error) {
	bars := make([]chartlib.Value, len(report.DailyTotals))
	for i, total := range report.DailyTotals {
		value, _ := total.Float64()
		label := ""
		if i < len(report.DayLabels) {
			label = report.DayLabels[i]
		}
		bars[i] = chartlib.Value{Value: value, Label: label}
	}

	graph := chartlib.BarChart{
		Title:    "Gastos dos Últimos 7 Dias",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	return r.render(&graph, "weekly")
}

// MonthlyChart renders a pie chart of the report's largest category totals
// and returns the path of the generated PNG. Categories beyond the top
// five are omitted.
func (r *Renderer) MonthlyChart(report *model.MonthlyReport) (string, error) {
	categories := report.Categories
	if len(categories) > maxPieSlices {
		categories = categories[:maxPieSlices]
	}

	values := make([]chartlib.Value, 0, len(categories))
	for _, cat := range categories {
		if !cat.Total.GreaterThan(decimal.Zero) {
			continue
		}
		value, _ := cat.Total.Float64()
		slice := chartlib.Value{Value: value, Label: cat.Name}
		if color, ok := parseHexColor(cat.Color); ok {
			slice.Style = chartlib.Style{FillColor: color}
		}
		values = append(values, slice)
	}
	if len(values) == 0 {
		return "", fmt.Errorf("no category totals to chart")
	}

	graph := chartlib.PieChart{
		Title:  "Gastos por Categoria",
		Width:  600,
		Height: 600,
		Values: values,
	}

	return r.render(&graph, "monthly")
}

type renderable interface {
	Render(rp chartlib.RendererProvider, w io.Writer) error
}

func (r *Renderer) render(graph renderable, prefix string) (string, error) {
	path := filepath.Join(r.dir, fmt.Sprintf("%s-%d.png", prefix, time.Now().UnixNano()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := graph.Render(chartlib.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write chart file: %w", err)
	}
	return path, nil
}

func parseHexColor(hex string) (drawing.Color, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return drawing.Color{}, false
	}
	var rv, gv, bv uint8
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return drawing.Color{}, false
	}
	return drawing.Color{R: rv, G: gv, B: bv, A: 255}, true
}
