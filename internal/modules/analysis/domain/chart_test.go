package domain_test

import (
	"math"
	"testing"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
)

func TestBuildPlotEmptySeries(t *testing.T) {
	t.Parallel()

	if _, ok := domain.BuildPlot(nil, domain.DefaultLayout()); ok {
		t.Fatal("empty series must not produce a plot")
	}
	if _, ok := domain.BuildPlot([]domain.Point{}, domain.DefaultLayout()); ok {
		t.Fatal("empty series must not produce a plot")
	}
}

func TestBuildPlotCornerMapping(t *testing.T) {
	t.Parallel()

	layout := domain.Layout{Width: 700, Height: 300, Margin: 40}
	plot, ok := domain.BuildPlot([]domain.Point{
		{T: 0, Value: 0},
		{T: 10, Value: 1},
	}, layout)
	if !ok {
		t.Fatal("BuildPlot returned ok=false")
	}

	if got := plot.Polyline[0]; got != (domain.Pixel{X: 40, Y: 260}) {
		t.Fatalf("t=0,v=0 mapped to %+v, want {40 260}", got)
	}
	if got := plot.Polyline[1]; got != (domain.Pixel{X: 660, Y: 40}) {
		t.Fatalf("t=10,v=1 mapped to %+v, want {660 40}", got)
	}
}

func TestBuildPlotAxesAndTicks(t *testing.T) {
	t.Parallel()

	layout := domain.Layout{Width: 700, Height: 300, Margin: 40}
	plot, ok := domain.BuildPlot([]domain.Point{{T: 2.5, Value: 0.5}, {T: 7.5, Value: 0.25}}, layout)
	if !ok {
		t.Fatal("BuildPlot returned ok=false")
	}

	if len(plot.Axes) != 2 {
		t.Fatalf("len(Axes) = %d, want 2", len(plot.Axes))
	}
	xAxis, yAxis := plot.Axes[0], plot.Axes[1]
	if xAxis.From != (domain.Pixel{X: 40, Y: 260}) || xAxis.To != (domain.Pixel{X: 660, Y: 260}) {
		t.Fatalf("x axis = %+v", xAxis)
	}
	if yAxis.From != (domain.Pixel{X: 40, Y: 40}) || yAxis.To != (domain.Pixel{X: 40, Y: 260}) {
		t.Fatalf("y axis = %+v", yAxis)
	}

	if plot.XTicks[0].Label != "2.5" || plot.XTicks[1].Label != "7.5" {
		t.Fatalf("x tick labels = %q,%q", plot.XTicks[0].Label, plot.XTicks[1].Label)
	}
	if plot.XTicks[0].At.X != 40 || plot.XTicks[1].At.X != 660 {
		t.Fatalf("x ticks sit at %d,%d, want span edges", plot.XTicks[0].At.X, plot.XTicks[1].At.X)
	}
	if plot.YTicks[0].Label != "0.0" || plot.YTicks[1].Label != "1.0" {
		t.Fatalf("y tick labels = %q,%q", plot.YTicks[0].Label, plot.YTicks[1].Label)
	}
}

func TestBuildPlotEqualTimestampsCollapseLeft(t *testing.T) {
	t.Parallel()

	layout := domain.Layout{Width: 700, Height: 300, Margin: 40}
	plot, ok := domain.BuildPlot([]domain.Point{
		{T: 5, Value: 0},
		{T: 5, Value: 0.5},
		{T: 5, Value: 1},
	}, layout)
	if !ok {
		t.Fatal("BuildPlot returned ok=false")
	}
	for i, px := range plot.Polyline {
		if px.X != 40 {
			t.Fatalf("point %d at x=%d, want every point on the left edge", i, px.X)
		}
	}
	if plot.XTicks[0].At.X != plot.XTicks[1].At.X {
		t.Fatalf("tick positions diverged: %d vs %d", plot.XTicks[0].At.X, plot.XTicks[1].At.X)
	}
}

func TestBuildPlotKeepsInputOrder(t *testing.T) {
	t.Parallel()

	plot, ok := domain.BuildPlot([]domain.Point{
		{T: 10, Value: 0.2},
		{T: 0, Value: 0.8},
		{T: 5, Value: 0.5},
	}, domain.Layout{Width: 700, Height: 300, Margin: 40})
	if !ok {
		t.Fatal("BuildPlot returned ok=false")
	}
	xs := []int{plot.Polyline[0].X, plot.Polyline[1].X, plot.Polyline[2].X}
	if xs[0] != 660 || xs[1] != 40 || xs[2] != 350 {
		t.Fatalf("polyline xs = %v, want input order 660,40,350", xs)
	}
}

func TestBuildPlotRejectsDegenerateLayout(t *testing.T) {
	t.Parallel()

	plot, ok := domain.BuildPlot([]domain.Point{{T: 0, Value: 0}}, domain.Layout{Width: 10, Height: 10, Margin: 40})
	if !ok {
		t.Fatal("BuildPlot returned ok=false")
	}
	if plot.Layout != domain.DefaultLayout() {
		t.Fatalf("layout = %+v, want fallback to default", plot.Layout)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	if _, ok := domain.Summarize(nil); ok {
		t.Fatal("empty series must not summarize")
	}

	summary, ok := domain.Summarize([]domain.Point{
		{T: 0, Value: 0.2},
		{T: 1, Value: 0.8},
		{T: 2, Value: 0.5},
	})
	if !ok {
		t.Fatal("Summarize returned ok=false")
	}
	if summary.Points != 3 {
		t.Fatalf("Points = %d, want 3", summary.Points)
	}
	if summary.MinValue != 0.2 || summary.MaxValue != 0.8 {
		t.Fatalf("min/max = %v/%v", summary.MinValue, summary.MaxValue)
	}
	if math.Abs(summary.MeanValue-0.5) > 1e-9 {
		t.Fatalf("mean = %v, want 0.5", summary.MeanValue)
	}
}
