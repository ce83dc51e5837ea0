package domain

import (
	"fmt"
	"math"
)

// Point is one engagement sample: T in seconds from the start of the
// recording, Value normalized to [0, 1] by the backend.
type Point struct {
	T     float64
	Value float64
}

// Layout fixes the pixel geometry of a plot. The margin frames the
// drawing area on all four sides.
type Layout struct {
	Width  int
	Height int
	Margin int
}

func DefaultLayout() Layout {
	return Layout{Width: 700, Height: 300, Margin: 40}
}

func (l Layout) valid() bool {
	return l.Width > 0 && l.Height > 0 && l.Margin >= 0 &&
		2*l.Margin < l.Width && 2*l.Margin < l.Height
}

type Pixel struct {
	X int
	Y int
}

type Line struct {
	From Pixel
	To   Pixel
}

type Tick struct {
	At    Pixel
	Label string
}

// Plot is a resolution-independent description of the engagement chart:
// the horizontal and vertical axis, min/max tick labels on each, and the
// polyline through every sample in input order. Renderers only draw it.
type Plot struct {
	Layout   Layout
	Axes     []Line
	XTicks   []Tick
	YTicks   []Tick
	Polyline []Pixel
}

// BuildPlot maps a series onto the layout. The x axis spans the series'
// own time range while the y axis is always [0, 1]. An empty series
// reports ok=false and callers draw nothing. When every sample shares
// one timestamp the time span falls back to a minimum denominator, so
// all points land on the left edge instead of dividing by zero.
func BuildPlot(points []Point, layout Layout) (Plot, bool) {
	if len(points) == 0 {
		return Plot{}, false
	}
	if !layout.valid() {
		layout = DefaultLayout()
	}

	minT, maxT := points[0].T, points[0].T
	for _, p := range points[1:] {
		if p.T < minT {
			minT = p.T
		}
		if p.T > maxT {
			maxT = p.T
		}
	}
	span := maxT - minT
	if span <= 0 {
		span = 1
	}

	w, h, m := layout.Width, layout.Height, layout.Margin
	mapX := func(t float64) int {
		return m + int(math.Round((t-minT)/span*float64(w-2*m)))
	}
	mapY := func(v float64) int {
		return h - m - int(math.Round(v*float64(h-2*m)))
	}

	polyline := make([]Pixel, 0, len(points))
	for _, p := range points {
		polyline = append(polyline, Pixel{X: mapX(p.T), Y: mapY(p.Value)})
	}

	return Plot{
		Layout: layout,
		Axes: []Line{
			{From: Pixel{X: m, Y: h - m}, To: Pixel{X: w - m, Y: h - m}},
			{From: Pixel{X: m, Y: m}, To: Pixel{X: m, Y: h - m}},
		},
		XTicks: []Tick{
			{At: Pixel{X: mapX(minT), Y: h - m}, Label: fmt.Sprintf("%.1f", minT)},
			{At: Pixel{X: mapX(maxT), Y: h - m}, Label: fmt.Sprintf("%.1f", maxT)},
		},
		YTicks: []Tick{
			{At: Pixel{X: m, Y: h - m}, Label: "0.0"},
			{At: Pixel{X: m, Y: m}, Label: "1.0"},
		},
		Polyline: polyline,
	}, true
}

// Summary condenses a series into the numbers the insights leaderboard
// ranks on.
type Summary struct {
	Points    int
	MinValue  float64
	MaxValue  float64
	MeanValue float64
}

// Summarize reports ok=false for an empty series.
func Summarize(points []Point) (Summary, bool) {
	if len(points) == 0 {
		return Summary{}, false
	}
	min, max, sum := points[0].Value, points[0].Value, 0.0
	for _, p := range points {
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
		sum += p.Value
	}
	return Summary{
		Points:    len(points),
		MinValue:  min,
		MaxValue:  max,
		MeanValue: sum / float64(len(points)),
	}, true
}
