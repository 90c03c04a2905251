//go:build js && wasm
// +build js,wasm

// Package dom mounts vdom trees into the browser DOM.
package dom

import (
	"fmt"
	"sort"
	"strings"
	"syscall/js"

	"github.com/recera/surfaceview/pkg/vdom"
)

// DOMApplier builds DOM nodes from VNodes
type DOMApplier struct {
	document js.Value
}

// NewDOMApplier creates a new DOM applier
func NewDOMApplier() *DOMApplier {
	return &DOMApplier{
		document: js.Global().Get("document"),
	}
}

// Replace swaps every child of parent for the DOM built from node. A nil node
// just empties parent.
func (a *DOMApplier) Replace(parent js.Value, node *vdom.VNode) error {
	if parent.IsNull() || parent.IsUndefined() {
		return fmt.Errorf("no parent element")
	}
	for child := parent.Get("firstChild"); !child.IsNull(); child = parent.Get("firstChild") {
		parent.Call("removeChild", child)
	}
	if node == nil {
		return nil
	}
	for _, n := range a.createDOMTree(node) {
		parent.Call("appendChild", n)
	}
	return nil
}

// createDOMTree returns the DOM nodes for vnode. Fragments expand to their
// children.
func (a *DOMApplier) createDOMTree(vnode *vdom.VNode) []js.Value {
	switch vnode.Kind {
	case vdom.KindText:
		return []js.Value{a.document.Call("createTextNode", vnode.Text)}

	case vdom.KindElement:
		elem := a.document.Call("createElement", vnode.Tag)
		a.setAttributes(elem, vnode.Props)
		for i := range vnode.Kids {
			for _, child := range a.createDOMTree(&vnode.Kids[i]) {
				elem.Call("appendChild", child)
			}
		}
		return []js.Value{elem}

	case vdom.KindFragment:
		var nodes []js.Value
		for i := range vnode.Kids {
			nodes = append(nodes, a.createDOMTree(&vnode.Kids[i])...)
		}
		return nodes
	}
	return nil
}

func (a *DOMApplier) setAttributes(elem js.Value, props vdom.Props) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := props[key].(type) {
		case nil:
		case bool:
			if value {
				elem.Call("setAttribute", key, "")
			}
		default:
			str := fmt.Sprintf("%v", value)
			if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(strings.TrimSpace(str)), "javascript:") {
				str = "#"
			}
			elem.Call("setAttribute", key, str)
		}
	}
}
