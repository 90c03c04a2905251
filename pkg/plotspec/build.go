package plotspec

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/recera/surfaceview/pkg/surface"
)

// Export settings for the modebar PNG download.
const (
	ExportWidth  = 800
	ExportHeight = 800
	ExportScale  = 2
)

// CameraEye is the shared isometric-style viewpoint.
var CameraEye = Vec3{X: 1.5, Y: 1.5, Z: 1.5}

var (
	namedLighting = Lighting{Ambient: 0.8, Diffuse: 0.8, Roughness: 0.5, Specular: 0.8, Fresnel: 0.8}
	flatLighting  = Lighting{Ambient: 0.95, Diffuse: 0.99, Roughness: 0.01, Specular: 0.01, Fresnel: 0.01}
)

// Build creates the spec for data rendered with the given colormap. The
// colormap "monochrome" selects a flat white surface with black contour lines;
// any other value is passed through to Plotly as a colorscale name.
func Build(data *surface.Data, colormap string) *Spec {
	trace := Trace{
		Type: "surface",
		X:    data.X,
		Y:    data.Y,
		Z:    data.Z,
	}

	var axis Axis
	if colormap == surface.Monochrome {
		hidden := false
		trace.Colorscale = []ColorStop{{0, "white"}, {1, "white"}}
		trace.SurfaceColor = zerosLike(data.Z)
		trace.ShowScale = &hidden
		trace.Lighting = flatLighting
		line := Contour{Show: true, Color: "black", Width: 1.5}
		trace.Contours = Contours{X: line, Y: line, Z: line}
		axis = Axis{
			ShowGrid:      false,
			GridColor:     "black",
			ZeroLine:      false,
			ZeroLineColor: "black",
		}
	} else {
		trace.Colorscale = colormap
		trace.Lighting = namedLighting
		line := Contour{Show: false, Width: 1}
		trace.Contours = Contours{X: line, Y: line, Z: line}
		axis = Axis{
			Ticks:         "outside",
			TickColor:     "white",
			ShowGrid:      true,
			GridColor:     "white",
			ZeroLine:      true,
			ZeroLineColor: "white",
		}
	}

	return &Spec{
		Data: []Trace{trace},
		Layout: Layout{
			Title:    Title{Text: data.Title},
			Autosize: true,
			Scene: Scene{
				Camera: Camera{Eye: CameraEye},
				XAxis:  axis,
				YAxis:  axis,
				ZAxis:  axis,
			},
		},
		Config: Config{
			Responsive: true,
			ToImageButtonOptions: ImageExport{
				Format:   "png",
				Filename: ExportFilename(data.Title),
				Width:    ExportWidth,
				Height:   ExportHeight,
				Scale:    ExportScale,
			},
		},
	}
}

// whitespaceRun matches the same characters as a browser's \s, which RE2's
// \s does not: vertical tab, Unicode separators and the BOM.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// ExportFilename lowercases the title and joins its words with underscores.
func ExportFilename(title string) string {
	lower := cases.Lower(language.Und).String(title)
	return whitespaceRun.ReplaceAllString(lower, "_")
}

func zerosLike(grid [][]float64) [][]float64 {
	out := make([][]float64, len(grid))
	for i, row := range grid {
		out[i] = make([]float64, len(row))
	}
	return out
}
