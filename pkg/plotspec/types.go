// Package plotspec assembles the Plotly surface trace, layout and config for a
// generated surface. A Spec is built fresh for every render and is never
// compared or stored.
package plotspec

// Spec is everything handed to Plotly.newPlot for one render.
type Spec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

// Trace is a Plotly surface trace.
type Trace struct {
	Type         string      `json:"type"`
	X            [][]float64 `json:"x"`
	Y            [][]float64 `json:"y"`
	Z            [][]float64 `json:"z"`
	Colorscale   any         `json:"colorscale"`
	SurfaceColor [][]float64 `json:"surfacecolor,omitempty"`
	ShowScale    *bool       `json:"showscale,omitempty"`
	Lighting     Lighting    `json:"lighting"`
	Contours     Contours    `json:"contours"`
}

// ColorStop is one [position, color] entry of an explicit colorscale.
type ColorStop [2]any

// Lighting controls Plotly's surface shading.
type Lighting struct {
	Ambient   float64 `json:"ambient"`
	Diffuse   float64 `json:"diffuse"`
	Roughness float64 `json:"roughness"`
	Specular  float64 `json:"specular"`
	Fresnel   float64 `json:"fresnel"`
}

// Contours holds the per-axis contour settings.
type Contours struct {
	X Contour `json:"x"`
	Y Contour `json:"y"`
	Z Contour `json:"z"`
}

// Contour is a single axis' contour projection.
type Contour struct {
	Show  bool    `json:"show"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width"`
}

// Layout is the figure layout.
type Layout struct {
	Title    Title `json:"title"`
	Scene    Scene `json:"scene"`
	Autosize bool  `json:"autosize"`
}

// Title wraps the figure title text.
type Title struct {
	Text string `json:"text"`
}

// Scene is the 3D scene: camera plus three axes.
type Scene struct {
	Camera Camera `json:"camera"`
	XAxis  Axis   `json:"xaxis"`
	YAxis  Axis   `json:"yaxis"`
	ZAxis  Axis   `json:"zaxis"`
}

// Camera positions the viewer.
type Camera struct {
	Eye Vec3 `json:"eye"`
}

// Vec3 is a point in scene coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Axis is the chrome of one scene axis.
type Axis struct {
	ShowTickLabels bool   `json:"showticklabels"`
	Ticks          string `json:"ticks"`
	TickColor      string `json:"tickcolor,omitempty"`
	ShowGrid       bool   `json:"showgrid"`
	GridColor      string `json:"gridcolor"`
	ZeroLine       bool   `json:"zeroline"`
	ZeroLineColor  string `json:"zerolinecolor"`
}

// Config is the Plotly figure config.
type Config struct {
	Responsive           bool        `json:"responsive"`
	ToImageButtonOptions ImageExport `json:"toImageButtonOptions"`
}

// ImageExport configures the modebar's PNG download.
type ImageExport struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Scale    int    `json:"scale"`
}
