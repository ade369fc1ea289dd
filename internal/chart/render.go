package chart

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

var ErrNoData = errors.New("no data to plot")

const (
	defaultWidth  = 1000
	defaultHeight = 600
)

// Renderer draws monthly bar charts as PNG.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// Render plots points in the order given; callers sort by month.
func (r *Renderer) Render(points []domain.Point, field domain.Field, year int) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	label := strings.ToUpper(field.String())
	bars := make([]gochart.Value, 0, len(points))
	var top int64
	for _, p := range points {
		bars = append(bars, gochart.Value{
			Value: float64(p.Value),
			Label: p.Month.String(),
			Style: gochart.Style{FillColor: drawing.ColorBlue, StrokeColor: drawing.ColorBlue},
		})
		if p.Value > top {
			top = p.Value
		}
	}
	// go-chart refuses a zero-height range (a single bar, or all zeros)
	yMax := float64(top) * 1.1
	if yMax <= 0 {
		yMax = 1
	}

	graph := gochart.BarChart{
		Title:      fmt.Sprintf("%s for %d", label, year),
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   50,
		BarSpacing: 20,
		Background: gochart.Style{Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		YAxis: gochart.YAxis{
			Name:  label,
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", field, err)
	}
	return buf.Bytes(), nil
}
