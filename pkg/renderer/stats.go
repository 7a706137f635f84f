package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	TotalSamples    int           // Camera rays traced
	Duration        time.Duration // Wall time of the sampling loop
	Primitives      int           // Counted through meshes and wrappers
	BVH             geometry.BVHStats
}

// TotalPixels returns the number of pixels rendered
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// SamplesPerSecond returns camera rays traced per second of render time
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Table formats the statistics as a two-column text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Stat", "Value"})

	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Pixels", fmt.Sprint(s.TotalPixels())})
	table.Append([]string{"Samples per pixel", fmt.Sprint(s.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprint(s.MaxDepth)})
	table.Append([]string{"Total samples", fmt.Sprint(s.TotalSamples)})
	table.Append([]string{"Primitives", fmt.Sprint(s.Primitives)})
	table.Append([]string{"BVH nodes", fmt.Sprint(s.BVH.TotalNodes)})
	table.Append([]string{"BVH leaves", fmt.Sprint(s.BVH.LeafNodes)})
	table.Append([]string{"BVH max depth", fmt.Sprint(s.BVH.MaxDepth)})
	table.Append([]string{"BVH avg leaf depth", fmt.Sprintf("%.2f", s.BVH.AvgDepth)})
	table.Append([]string{"Samples/sec", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.SetFooter([]string{"Render time", s.Duration.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}
