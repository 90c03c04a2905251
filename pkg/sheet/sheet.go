// Package sheet lays out printable PDF sheets of a rendered surface: a
// wireframe projection of a Plotly trace, or an embedded server-rendered image.
package sheet

import (
	"bytes"
	"errors"
	"math"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/plotspec"
)

const (
	pageW     = 595.0
	pageH     = 842.0
	margin    = 40.0
	titleSize = 16
	top       = margin + 36
)

// ErrEmpty is returned for a trace without any drawable grid points.
var ErrEmpty = errors.New("sheet: surface has no points")

// Plot draws spec's first trace as a wireframe seen from the layout camera.
func Plot(spec *plotspec.Spec) ([]byte, error) {
	if spec == nil || len(spec.Data) == 0 {
		return nil, ErrEmpty
	}
	trace := spec.Data[0]
	proj := newProjection(spec.Layout.Scene.Camera.Eye)

	// project every grid point, then fit the bounds into the drawing box
	grid := make([][][2]float64, len(trace.Z))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range trace.Z {
		grid[i] = make([][2]float64, len(trace.Z[i]))
		for j := range trace.Z[i] {
			p, ok := proj.point(at(trace.X, i, j), at(trace.Y, i, j), trace.Z[i][j])
			if !ok {
				grid[i][j] = [2]float64{math.NaN(), math.NaN()}
				continue
			}
			grid[i][j] = p
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	if math.IsInf(minX, 1) {
		return nil, ErrEmpty
	}

	box := pageW - 2*margin
	scale := box / math.Max(math.Max(maxX-minX, maxY-minY), 1e-9)
	toPage := func(p [2]float64) (float64, float64) {
		x := margin + (p[0]-minX)*scale + (box-(maxX-minX)*scale)/2
		y := top + (maxY-p[1])*scale + (box-(maxY-minY)*scale)/2
		return x, y
	}

	pdf := newPage(spec.Layout.Title.Text)
	if isMonochrome(trace) {
		pdf.SetDrawColor(0, 0, 0)
	} else {
		pdf.SetDrawColor(40, 70, 140)
	}
	pdf.SetLineWidth(0.4)

	segment := func(a, b [2]float64) {
		if math.IsNaN(a[0]) || math.IsNaN(b[0]) {
			return
		}
		x1, y1 := toPage(a)
		x2, y2 := toPage(b)
		pdf.Line(x1, y1, x2, y2)
	}
	for i := range grid {
		for j := range grid[i] {
			if j+1 < len(grid[i]) {
				segment(grid[i][j], grid[i][j+1])
			}
			if i+1 < len(grid) && j < len(grid[i+1]) {
				segment(grid[i][j], grid[i+1][j])
			}
		}
	}
	return output(pdf)
}

// Image places a decoded legacy render on the page, scaled to fit.
func Image(title string, img *client.Image) ([]byte, error) {
	if img == nil || len(img.Bytes) == 0 {
		return nil, errors.New("sheet: no image")
	}
	pdf := newPage(title)

	opts := gofpdf.ImageOptions{ImageType: img.Format}
	pdf.RegisterImageOptionsReader(img.Src, opts, bytes.NewReader(img.Bytes))

	w, h := pageW-2*margin, pageW-2*margin
	if img.Width > 0 && img.Height > 0 {
		ratio := float64(img.Height) / float64(img.Width)
		h = w * ratio
		if maxH := pageH - top - margin; h > maxH {
			h = maxH
			w = h / ratio
		}
	}
	pdf.ImageOptions(img.Src, (pageW-w)/2, top, w, h, false, opts, 0, "")
	return output(pdf)
}

func newPage(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 20, title, "", 0, "C", false, 0, "")
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func at(grid [][]float64, i, j int) float64 {
	if i < len(grid) && j < len(grid[i]) {
		return grid[i][j]
	}
	return math.NaN()
}

func isMonochrome(t plotspec.Trace) bool {
	// named colormaps are plain strings, monochrome is an explicit scale
	_, named := t.Colorscale.(string)
	return !named
}

// projection is an orthographic view along the camera eye towards the origin,
// with +z kept upright.
type projection struct {
	right, up [3]float64
}

func newProjection(eye plotspec.Vec3) projection {
	f := normalize([3]float64{-eye.X, -eye.Y, -eye.Z})
	if f == ([3]float64{}) {
		f = normalize([3]float64{-1.5, -1.5, -1.5})
	}
	r := normalize(cross(f, [3]float64{0, 0, 1}))
	if r == ([3]float64{}) {
		// looking straight down the z axis
		r = [3]float64{1, 0, 0}
	}
	return projection{right: r, up: cross(r, f)}
}

func (p projection) point(x, y, z float64) ([2]float64, bool) {
	v := [3]float64{x, y, z}
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return [2]float64{}, false
		}
	}
	return [2]float64{dot(v, p.right), dot(v, p.up)}, true
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(dot(v, v))
	if n < 1e-12 {
		return [3]float64{}
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
