// Package export renders stored episodes as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/experiment"
)

const (
	TargetColor  = "#ff5f87"
	VehicleColor = "#00d7af"
)

type Series struct {
	Name   string
	Color  string
	Points []asv.Vector2
}

// EpisodeSeries splits the records of one episode into target and vehicle
// trails.
func EpisodeSeries(records []experiment.Record, episode int) []Series {
	target := Series{Name: "target", Color: TargetColor}
	vehicle := Series{Name: "vehicle", Color: VehicleColor}
	for _, r := range records {
		if r.Episode != episode {
			continue
		}
		target.Points = append(target.Points, r.Target)
		vehicle.Points = append(vehicle.Points, r.Vehicle)
	}
	return []Series{target, vehicle}
}

// TrajectoryToSVG draws each series as a polyline, scaled to fit all points
// with a 10% margin. Series with fewer than two points are skipped.
func TrajectoryToSVG(w io.Writer, series []Series, width, height int) error {
	minX, maxX, minY, maxY, ok := extent(series)
	if !ok {
		return fmt.Errorf("no points to draw")
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Name, s.Color)
		for i, p := range s.Points {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func extent(series []Series) (minX, maxX, minY, maxY float64, ok bool) {
	for _, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		for _, p := range s.Points {
			if !ok {
				minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return minX, maxX, minY, maxY, ok
}
