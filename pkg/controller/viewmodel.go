package controller

import (
	"errors"
	"strconv"

	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/plotspec"
	"github.com/recera/surfaceview/pkg/renderer/html"
	"github.com/recera/surfaceview/pkg/surface"
	"github.com/recera/surfaceview/pkg/vdom"
)

// GenericErrorMessage is shown for every transport failure.
const GenericErrorMessage = "An error occurred. Please try again."

// Display values written to element styles.
const (
	DisplayBlock = "block"
	DisplayFlex  = "flex"
	DisplayNone  = "none"
)

// ContentKind says what the display region currently holds.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentPlot
	ContentImage
	ContentError
)

// Content is the display region's payload.
type Content struct {
	Kind    ContentKind
	Plot    *plotspec.Spec
	Image   string
	Message string
}

// Node returns the element tree for error and image content. Plots are drawn
// by the charting library and have no tree of their own, so Node is nil.
func (c Content) Node() *vdom.VNode {
	switch c.Kind {
	case ContentError:
		return vdom.NewElement("p", vdom.Props{"class": "error"}, vdom.NewText(c.Message))
	case ContentImage:
		return vdom.NewElement("img", vdom.Props{"src": c.Image, "alt": "Generated Minimal Surface"})
	default:
		return nil
	}
}

// HTML returns Node as markup.
func (c Content) HTML() string {
	out, err := html.RenderToString(c.Node())
	if err != nil {
		return ""
	}
	return out
}

// ViewModel is everything a binding needs to paint the page.
type ViewModel struct {
	ResolutionLabel string
	OptionsVisible  bool
	Loading         bool
	Content         Content

	// Renders counts content changes so bindings can tell a fresh plot of an
	// identical spec from no change at all.
	Renders int
}

// OptionsDisplay is the style.display value of the Enneper options panel.
func (vm ViewModel) OptionsDisplay() string {
	if vm.OptionsVisible {
		return DisplayBlock
	}
	return DisplayNone
}

// LoadingDisplay is the style.display value of the loading indicator.
func (vm ViewModel) LoadingDisplay() string {
	if vm.Loading {
		return DisplayFlex
	}
	return DisplayNone
}

// NewViewModel mirrors the controls of a freshly loaded page.
func NewViewModel(s surface.ViewState) ViewModel {
	return ViewModel{
		ResolutionLabel: strconv.Itoa(s.Resolution),
		OptionsVisible:  s.ShowsEnneperOptions(),
	}
}

// Event is an input to Reduce.
type Event interface{ event() }

type (
	// ResolutionInput fires on every slider input.
	ResolutionInput struct{ Value string }
	// SurfaceTypeChanged fires when the selector changes.
	SurfaceTypeChanged struct{ Value string }
	// SubmitStarted fires before any network activity.
	SubmitStarted struct{}
	// PlotReady carries a spec ready for the charting library.
	PlotReady struct{ Spec *plotspec.Spec }
	// ImageReady carries a legacy image that has finished loading.
	ImageReady struct{ Src string }
	// Failed carries a transport or application error.
	Failed struct{ Err error }
)

func (ResolutionInput) event()    {}
func (SurfaceTypeChanged) event() {}
func (SubmitStarted) event()      {}
func (PlotReady) event()          {}
func (ImageReady) event()         {}
func (Failed) event()             {}

// Reduce returns the view model that results from applying ev to vm.
func Reduce(vm ViewModel, ev Event) ViewModel {
	switch ev := ev.(type) {
	case ResolutionInput:
		vm.ResolutionLabel = ev.Value
	case SurfaceTypeChanged:
		vm.OptionsVisible = ev.Value == string(surface.Enneper)
	case SubmitStarted:
		vm.Loading = true
	case PlotReady:
		vm.Loading = false
		vm.Content = Content{Kind: ContentPlot, Plot: ev.Spec}
		vm.Renders++
	case ImageReady:
		vm.Loading = false
		vm.Content = Content{Kind: ContentImage, Image: ev.Src}
		vm.Renders++
	case Failed:
		vm.Loading = false
		vm.Content = Content{Kind: ContentError, Message: ErrorMessage(ev.Err)}
		vm.Renders++
	}
	return vm
}

// ErrorMessage is the inline text shown for err.
func ErrorMessage(err error) string {
	var appErr *client.ApplicationError
	if errors.As(err, &appErr) {
		return "Error: " + appErr.Message
	}
	return GenericErrorMessage
}
