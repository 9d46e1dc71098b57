// Package chart renders the profile "Score History" line chart for the terminal.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
)

// DomainPadding is added below the minimum and above the maximum of the y-axis.
const DomainPadding = 50.0

// ErrNoData is returned when a series has no points.
var ErrNoData = errors.New("chart: no data points")

// Point is one labelled sample.
type Point struct {
	Label string
	Value float64
}

// ScoreHistory returns the fixed illustrative series shown on the profile.
func ScoreHistory() []Point {
	return []Point{
		{"Jan", 600},
		{"Feb", 620},
		{"Mar", 680},
		{"Apr", 710},
		{"May", 750},
	}
}

// Summary describes a series.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Latest float64
}

func values(points []Point) stats.Float64Data {
	data := make(stats.Float64Data, len(points))
	for i, p := range points {
		data[i] = p.Value
	}
	return data
}

// Summarize computes min, max, mean, median and the last value.
func Summarize(points []Point) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, ErrNoData
	}
	data := values(points)

	min, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	max, err := data.Max()
	if err != nil {
		return Summary{}, err
	}
	mean, err := data.Mean()
	if err != nil {
		return Summary{}, err
	}
	median, err := data.Median()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Min: min, Max: max, Mean: mean, Median: median, Latest: points[len(points)-1].Value}, nil
}

// Domain returns the y-axis range [min-50, max+50].
func Domain(points []Point) (lo, hi float64, err error) {
	if len(points) == 0 {
		return 0, 0, ErrNoData
	}
	data := values(points)
	min, err := stats.Min(data)
	if err != nil {
		return 0, 0, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return 0, 0, err
	}
	return min - DomainPadding, max + DomainPadding, nil
}

// Render draws the series into a width x height plot area with a y-axis on
// the left and month labels underneath.
func Render(points []Point, width, height int) (string, error) {
	lo, hi, err := Domain(points)
	if err != nil {
		return "", err
	}
	if width < len(points) || height < 2 {
		return "", fmt.Errorf("chart: plot area %dx%d too small for %d points", width, height, len(points))
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}

	col := func(i int) int {
		if len(points) == 1 {
			return width / 2
		}
		return int(math.Round(float64(i) * float64(width-1) / float64(len(points)-1)))
	}
	row := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
	}

	for i := 1; i < len(points); i++ {
		x0, y0 := col(i-1), row(points[i-1].Value)
		x1, y1 := col(i), row(points[i].Value)
		segment(x0, y0, x1, y1, func(x, y int) { grid[y][x] = '·' })
	}
	for i, p := range points {
		grid[row(p.Value)][col(i)] = '●'
	}

	axisW := len(fmt.Sprintf("%.0f", hi))
	var b strings.Builder
	for y, r := range grid {
		label := ""
		switch y {
		case 0:
			label = fmt.Sprintf("%.0f", hi)
		case height - 1:
			label = fmt.Sprintf("%.0f", lo)
		case (height - 1) / 2:
			label = fmt.Sprintf("%.0f", (hi+lo)/2)
		}
		fmt.Fprintf(&b, "%*s │%s\n", axisW, label, string(r))
	}

	labels := []rune(strings.Repeat(" ", width+3))
	for i, p := range points {
		x := col(i)
		for j, r := range []rune(p.Label) {
			if x+j < len(labels) {
				labels[x+j] = r
			}
		}
	}
	fmt.Fprintf(&b, "%*s └%s\n", axisW, "", strings.Repeat("─", width))
	fmt.Fprintf(&b, "%*s  %s", axisW, "", strings.TrimRight(string(labels), " "))

	return b.String(), nil
}

func segment(x0, y0, x1, y1 int, plot func(x, y int)) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		plot(x0, y0)
		return
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		plot(x, y)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
