// Package dom binds the view controller to a browser page. The element ids
// below are the page contract; any of them may be missing, in which case the
// matching feature is skipped.
package dom

// Element ids the binding looks up.
const (
	IDForm             = "surface-form"
	IDSurfaceType      = "surface_type"
	IDResolution       = "resolution"
	IDResolutionValue  = "resolution_value"
	IDEnneperOptions   = "enneper-options"
	IDOrder            = "order"
	IDColormap         = "colormap"
	IDGenerateButton   = "generate-btn"
	IDSurfaceDisplay   = "surface-display"
	IDLoadingIndicator = "loading-indicator"
)

// IDs lists every id in lookup order.
var IDs = []string{
	IDForm,
	IDSurfaceType,
	IDResolution,
	IDResolutionValue,
	IDEnneperOptions,
	IDOrder,
	IDColormap,
	IDGenerateButton,
	IDSurfaceDisplay,
	IDLoadingIndicator,
}
