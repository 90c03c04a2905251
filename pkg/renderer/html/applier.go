// Package html renders vdom trees to HTML text.
package html

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/recera/surfaceview/pkg/vdom"
)

// voidElements are HTML elements that cannot have children
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// booleanAttributes are HTML attributes that are boolean flags
var booleanAttributes = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
	"defer":     true,
	"async":     true,
	"multiple":  true,
	"autofocus": true,
}

// HTMLApplier renders VNodes to HTML
type HTMLApplier struct {
	w   io.Writer
	err error
}

// NewHTMLApplier creates a new HTML applier
func NewHTMLApplier(w io.Writer) *HTMLApplier {
	return &HTMLApplier{w: w}
}

// Apply renders a VNode tree to HTML. Incremental updates are not supported.
func (a *HTMLApplier) Apply(prev, next *vdom.VNode) error {
	if prev != nil {
		return fmt.Errorf("htmlApplier does not support incremental updates")
	}
	if next == nil {
		return nil
	}

	a.renderNode(next)
	return a.err
}

// write helper that tracks errors
func (a *HTMLApplier) write(s string) {
	if a.err != nil {
		return
	}
	_, a.err = io.WriteString(a.w, s)
}

func (a *HTMLApplier) renderNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		a.write(html.EscapeString(node.Text))
	case vdom.KindElement:
		a.renderElement(node)
	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderNode(&node.Kids[i])
		}
	}
}

func (a *HTMLApplier) renderElement(node *vdom.VNode) {
	a.write("<")
	a.write(node.Tag)
	a.renderAttributes(node.Props)
	a.write(">")

	if voidElements[node.Tag] {
		return
	}

	// Script and style content is written verbatim
	isRawTextElement := node.Tag == "script" || node.Tag == "style"
	for i := range node.Kids {
		if isRawTextElement {
			a.renderRawNode(&node.Kids[i])
		} else {
			a.renderNode(&node.Kids[i])
		}
	}

	a.write("</")
	a.write(node.Tag)
	a.write(">")
}

// renderAttributes writes props in key order so output is reproducible.
func (a *HTMLApplier) renderAttributes(props vdom.Props) {
	if len(props) == 0 {
		return
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		if value == nil {
			continue
		}

		if booleanAttributes[key] {
			if v, ok := value.(bool); ok && v {
				a.write(" ")
				a.write(key)
			}
			continue
		}

		valueStr := fmt.Sprintf("%v", value)

		// javascript: URLs never make it into href/src
		if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(strings.TrimSpace(valueStr)), "javascript:") {
			valueStr = "#"
		}

		a.write(" ")
		a.write(key)
		a.write(`="`)
		a.write(html.EscapeString(valueStr))
		a.write(`"`)
	}
}

// renderRawNode renders a node without HTML escaping (for script/style content)
func (a *HTMLApplier) renderRawNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		a.write(node.Text)
	case vdom.KindElement:
		a.renderElement(node)
	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderRawNode(&node.Kids[i])
		}
	}
}

// RenderToString is a convenience function to render a VNode to a string
func RenderToString(node *vdom.VNode) (string, error) {
	var buf strings.Builder
	if err := NewHTMLApplier(&buf).Apply(nil, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes an HTML5 doctype followed by node.
func RenderDocument(w io.Writer, node *vdom.VNode) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return NewHTMLApplier(w).Apply(nil, node)
}
