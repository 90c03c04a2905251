//go:build !js || !wasm
// +build !js !wasm

package dom

import (
	"context"
	"fmt"
	"log"

	"github.com/recera/surfaceview/pkg/controller"
)

// Binding connects page controls to a controller (stub for non-WASM builds)
type Binding struct{}

// Bind attaches the controller to the current document (stub)
func Bind(_ *controller.Controller, _ *log.Logger) (*Binding, error) {
	return nil, fmt.Errorf("DOM binding is only available in WASM builds")
}

// Release detaches all listeners (stub)
func (b *Binding) Release() {}

// ImageLoader waits for browser image loads (stub)
type ImageLoader struct{}

// LoadImage is only available in WASM builds (stub)
func (ImageLoader) LoadImage(context.Context, string) error {
	return fmt.Errorf("image loading is only available in WASM builds")
}
