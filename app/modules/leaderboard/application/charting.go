package leaderboardservice

import (
	"bytes"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette selects the colors used when rendering score charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultChartPalette is a dark theme matching the platform dashboards.
func DefaultChartPalette() ChartPalette {
	return ChartPalette{
		Background:  drawing.Color{R: 24, G: 26, B: 27, A: 255},
		PrimaryLine: drawing.Color{R: 64, G: 160, B: 255, A: 255},
		AccentLine:  drawing.Color{R: 255, G: 196, B: 0, A: 255},
		TextColor:   drawing.Color{R: 220, G: 220, B: 220, A: 255},
	}
}

// GenerateScoreHistoryChart produces a PNG line chart of a player's score
// submissions over time. Records are expected oldest first, as stored.
func GenerateScoreHistoryChart(records []sharedtypes.ScoreRecord, palette ChartPalette) ([]byte, error) {
	if len(records) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]time.Time, len(records))
	yValues := make([]float64, len(records))

	for i, record := range records {
		xValues[i] = record.Timestamp.AsTime()
		yValues[i] = float64(record.Score)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Score History",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Submitted",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02 15:04"),
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Score",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No score history found"
	)

	// go-chart refuses to render without at least one series, so anchor the
	// canvas with a line drawn in the background color.
	anchor := chart.ContinuousSeries{
		XValues: []float64{0, 1},
		YValues: []float64{0, 1},
		Style: chart.Style{
			StrokeColor: palette.Background,
		},
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
		},
		Series: []chart.Series{anchor},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
