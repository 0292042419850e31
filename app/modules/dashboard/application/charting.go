package dashboardservice

import (
	"bytes"
	"fmt"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of rendered charts.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Bars       map[eventdomain.ReviewStatus]drawing.Color
}

// DefaultPalette matches the dashboard's status badges.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("1f2937"),
	Bars: map[eventdomain.ReviewStatus]drawing.Color{
		eventdomain.ReviewPending:  drawing.ColorFromHex("f59e0b"),
		eventdomain.ReviewApproved: drawing.ColorFromHex("10b981"),
		eventdomain.ReviewRejected: drawing.ColorFromHex("ef4444"),
	},
}

// GenerateParticipantChart produces a PNG bar chart with one bar per review
// status in dropdown order.
func GenerateParticipantChart(counts map[eventdomain.ReviewStatus]int, palette ChartPalette) ([]byte, error) {
	total, maxCount := 0, 0
	bars := make([]chart.Value, 0, len(eventdomain.ReviewStatuses))
	for _, st := range eventdomain.ReviewStatuses {
		n := counts[st]
		total += n
		maxCount = max(maxCount, n)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", st, n),
			Value: float64(n),
			Style: chart.Style{
				FillColor:   palette.Bars[st],
				StrokeColor: palette.Bars[st],
				StrokeWidth: 1,
			},
		})
	}
	title := "Participants by status"
	if total == 0 {
		title += " (none yet)"
	}
	// The axis starts at zero so equal counts still span a range.
	yRange := &chart.ContinuousRange{Min: 0, Max: float64(max(maxCount, 1))}

	graph := chart.BarChart{
		Title:      title,
		Width:      640,
		Height:     400,
		BarWidth:   80,
		Background: chart.Style{FillColor: palette.Background, Padding: chart.Box{Top: 40}},
		Canvas:     chart.Style{FillColor: palette.Background},
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		XAxis:      chart.Style{FontColor: palette.TextColor},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: palette.TextColor},
			Range:          yRange,
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render participant chart: %w", err)
	}
	return buffer.Bytes(), nil
}
