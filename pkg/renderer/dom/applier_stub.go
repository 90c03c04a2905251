//go:build !js || !wasm
// +build !js !wasm

package dom

// DOMApplier builds DOM nodes from VNodes (stub for non-WASM builds)
type DOMApplier struct{}

// NewDOMApplier creates a new DOM applier (stub)
func NewDOMApplier() *DOMApplier {
	return &DOMApplier{}
}
