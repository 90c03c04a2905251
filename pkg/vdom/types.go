// Package vdom is a small immutable node tree used to build the pages the
// command line tools emit.
package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents multiple children without a parent
	KindFragment
)

// Props represents the attributes of a VNode
type Props map[string]any

// VNode represents a virtual DOM node. Nodes are not modified after creation.
type VNode struct {
	Kind  VKind
	Tag   string
	Props Props
	Kids  []VNode
	Text  string
}

// NewElement creates a new element VNode. Nil children are skipped.
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// If returns node when cond holds and nil otherwise, for optional children.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// Find returns the first element in document order whose id prop equals id.
func (v *VNode) Find(id string) *VNode {
	if v.Kind == KindElement && v.Props != nil {
		if got, ok := v.Props["id"].(string); ok && got == id {
			return v
		}
	}
	for i := range v.Kids {
		if found := v.Kids[i].Find(id); found != nil {
			return found
		}
	}
	return nil
}
