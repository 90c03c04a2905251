// Package surface holds the request and response shapes exchanged with the
// minimal-surface generation service, plus the view state they are built from.
package surface

import (
	"fmt"
	"net/url"
	"strconv"
)

// Type identifies a minimal surface family understood by the generator.
type Type string

const (
	ChenGackstatter Type = "chen-gackstatter"
	Enneper         Type = "enneper"
)

// Monochrome is the colormap value that switches rendering to a flat white
// surface shaded only by contour lines.
const Monochrome = "monochrome"

// Defaults applied when a control is absent or empty.
const (
	DefaultType       = ChenGackstatter
	DefaultResolution = 50
	DefaultOrder      = 1
	DefaultColormap   = "Viridis"
)

// ViewState is the set of user-selected parameters behind one page load.
type ViewState struct {
	SurfaceType Type   `yaml:"surface_type" json:"surface_type"`
	Resolution  int    `yaml:"resolution" json:"resolution"`
	Order       int    `yaml:"order" json:"order"`
	Colormap    string `yaml:"colormap" json:"colormap"`
}

// DefaultViewState returns the state of a freshly loaded page.
func DefaultViewState() ViewState {
	return ViewState{
		SurfaceType: DefaultType,
		Resolution:  DefaultResolution,
		Order:       DefaultOrder,
		Colormap:    DefaultColormap,
	}
}

// IsMonochrome reports whether the state selects monochrome rendering.
func (s ViewState) IsMonochrome() bool {
	return s.Colormap == Monochrome
}

// ShowsEnneperOptions reports whether the Enneper-only controls apply.
func (s ViewState) ShowsEnneperOptions() bool {
	return s.SurfaceType == Enneper
}

// GenerationRequest is the JSON body posted to /generate_data.
type GenerationRequest struct {
	SurfaceType string `json:"surface_type"`
	Resolution  int    `json:"resolution"`
	Order       int    `json:"order"`
}

// Request builds the JSON request for the state. A zero order is sent
// as DefaultOrder.
func (s ViewState) Request() GenerationRequest {
	order := s.Order
	if order == 0 {
		order = DefaultOrder
	}
	return GenerationRequest{
		SurfaceType: string(s.SurfaceType),
		Resolution:  s.Resolution,
		Order:       order,
	}
}

// Form builds the form-encoded body posted to the legacy /generate endpoint.
func (s ViewState) Form() url.Values {
	form := url.Values{}
	form.Set("surface_type", string(s.SurfaceType))
	form.Set("resolution", strconv.Itoa(s.Resolution))
	form.Set("order", strconv.Itoa(s.Request().Order))
	form.Set("colormap", s.Colormap)
	return form
}

// Data is a parametric surface sampled on a grid, as returned by the
// generator. Z[i][j] lines up with X[i][j] and Y[i][j].
type Data struct {
	X     [][]float64 `json:"x"`
	Y     [][]float64 `json:"y"`
	Z     [][]float64 `json:"z"`
	Title string      `json:"title"`
}

// Rows returns the number of grid rows.
func (d *Data) Rows() int { return len(d.Z) }

// Validate checks that the three coordinate grids share one shape.
func (d *Data) Validate() error {
	if len(d.X) != len(d.Z) || len(d.Y) != len(d.Z) {
		return fmt.Errorf("grid row mismatch: x=%d y=%d z=%d", len(d.X), len(d.Y), len(d.Z))
	}
	for i := range d.Z {
		if len(d.X[i]) != len(d.Z[i]) || len(d.Y[i]) != len(d.Z[i]) {
			return fmt.Errorf("grid row %d length mismatch: x=%d y=%d z=%d",
				i, len(d.X[i]), len(d.Y[i]), len(d.Z[i]))
		}
	}
	return nil
}

// TitleFor returns the display title used when the generator leaves it blank.
func TitleFor(t Type) string {
	switch t {
	case ChenGackstatter:
		return "Chen-Gackstatter Minimal Surface"
	case Enneper:
		return "Enneper Surface"
	default:
		return "Minimal Surface"
	}
}
