package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"rhiza/internal/engine"
)

const (
	legendX       = 20
	legendY       = 20
	legendSpacing = 25
	legendRadius  = 8
	lineHeight    = 1.2
)

// SVG draws frames as standalone SVG documents
type SVG struct{}

// NewSVG creates the SVG back end
func NewSVG() *SVG { return &SVG{} }

func (*SVG) Name() string        { return "svg" }
func (*SVG) ContentType() string { return "image/svg+xml" }

// Render implements Backend
func (*SVG) Render(w io.Writer, f *engine.Frame) error {
	bw := bufio.NewWriter(w)
	s := &svgWriter{w: bw}

	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(f.Width), num(f.Height), num(f.Width), num(f.Height))

	if f.Notice != "" {
		s.printf(`<text x="%s" y="%s" text-anchor="middle" fill="red">%s</text>`+"\n",
			num(f.Width/2), num(f.Height/2), esc(f.Notice))
		s.printf("</svg>\n")
		return s.flush()
	}

	s.gradients(f)

	t := f.Transform
	s.printf(`<g transform="translate(%s,%s) scale(%s)">`+"\n", num(t.X), num(t.Y), num(t.K))
	s.links(f)
	s.nodes(f)
	s.labels(f)
	s.printf("</g>\n")

	s.legend(f)
	s.tooltip(f)
	s.printf("</svg>\n")
	return s.flush()
}

// svgWriter remembers the first write error so drawing code stays linear
type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) flush() error {
	if s.err != nil {
		return fmt.Errorf("failed to write SVG: %w", s.err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func (s *svgWriter) gradients(f *engine.Frame) {
	if len(f.Gradients) == 0 {
		return
	}
	s.printf("<defs>\n")
	for _, g := range f.Gradients {
		s.printf(`<linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
			`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient>`+"\n",
			esc(g.ID), esc(g.From), esc(g.To))
	}
	s.printf("</defs>\n")
}

func (s *svgWriter) links(f *engine.Frame) {
	s.printf(`<g class="links">` + "\n")
	for _, l := range f.Links {
		s.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" opacity="%s"%s/>`+"\n",
			num(l.X1), num(l.Y1), num(l.X2), num(l.Y2),
			esc(l.Color), num(l.Width), num(l.Opacity), dash(l.Dash))
	}
	s.printf("</g>\n")
}

func (s *svgWriter) nodes(f *engine.Frame) {
	s.printf(`<g class="nodes">` + "\n")
	for _, n := range f.Nodes {
		s.printf(`<circle data-id="%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s" opacity="%s"%s/>`+"\n",
			esc(n.ID), num(n.X), num(n.Y), num(n.Radius),
			fill(n.Fill, n.GradientID), esc(n.Stroke), num(n.StrokeWidth), num(n.Opacity), dash(n.Dash))
	}
	s.printf("</g>\n")
}

func (s *svgWriter) labels(f *engine.Frame) {
	s.printf(`<g class="labels">` + "\n")
	for _, l := range f.Labels {
		weight := "normal"
		if l.Bold {
			weight = "bold"
		}
		s.printf(`<text x="%s" y="%s" text-anchor="middle" font-size="%spx" font-weight="%s" fill="%s">`,
			num(l.X), num(l.Y), num(l.FontSize), weight, esc(l.Color))
		s.multiline(l.X, strings.Split(l.Text, "\n"))
		s.printf("</text>\n")
	}
	s.printf("</g>\n")
}

func (s *svgWriter) legend(f *engine.Frame) {
	if len(f.Legend) == 0 {
		return
	}
	s.printf(`<g class="legend" transform="translate(%d,%d)">`+"\n", legendX, legendY)
	for i, item := range f.Legend {
		s.printf(`<g transform="translate(0,%d)"><circle r="%d" fill="%s"/>`+
			`<text x="15" y="4" font-size="12px" fill="#2d3748">%s</text></g>`+"\n",
			i*legendSpacing, legendRadius, fill(item.Fill, item.GradientID), esc(item.Label))
	}
	s.printf("</g>\n")
}

func (s *svgWriter) tooltip(f *engine.Frame) {
	tip := f.Tooltip
	if !tip.Visible || len(tip.Lines) == 0 {
		return
	}
	longest := 0
	for _, line := range tip.Lines {
		longest = max(longest, len([]rune(line)))
	}
	width := float64(longest)*7 + 24
	height := float64(len(tip.Lines))*12*lineHeight + 24

	s.printf(`<g class="tooltip" transform="translate(%s,%s)" opacity="%s">`+"\n",
		num(tip.X), num(tip.Y), num(tip.Opacity))
	s.printf(`<rect width="%s" height="%s" rx="8" fill="rgba(0, 0, 0, 0.9)"/>`+"\n", num(width), num(height))
	s.printf(`<text x="12" y="24" font-size="12px" fill="white">`)
	s.multiline(12, tip.Lines)
	s.printf("</text>\n</g>\n")
}

// multiline writes lines as tspans, the first bold
func (s *svgWriter) multiline(x float64, lines []string) {
	for i, line := range lines {
		if i == 0 {
			s.printf(`<tspan x="%s">%s</tspan>`, num(x), esc(line))
			continue
		}
		s.printf(`<tspan x="%s" dy="%sem">%s</tspan>`, num(x), num(lineHeight), esc(line))
	}
}

func fill(color, gradientID string) string {
	if gradientID != "" {
		return "url(#" + esc(gradientID) + ")"
	}
	return esc(color)
}

func dash(d string) string {
	if d == "" {
		return ""
	}
	return ` stroke-dasharray="` + esc(d) + `"`
}

// num formats coordinates with at most two decimals
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
