// Package dom is the small part of the page the front-end needs: elements
// looked up by id, CSS classes, form values, markup and events.
package dom

const (
	// Hidden is the marker class whose presence hides an element
	Hidden = "hidden"

	Click  = "click"
	Submit = "submit"
)

// Element is one node of the page addressed by a stable id
type Element interface {
	AddClass(class string)
	RemoveClass(class string)
	HasClass(class string) bool

	// Value and SetValue access the value of form inputs
	Value() string
	SetValue(value string)

	InnerHTML() string
	SetInnerHTML(markup string)
	SetText(text string)

	// On registers handler for event. Default browser action of the event
	// is prevented
	On(event string, handler func())
}

type Document interface {
	// ElementByID returns nil if there is no element with id
	ElementByID(id string) Element
}

// Show removes the hidden marker from el
func Show(el Element) {
	el.RemoveClass(Hidden)
}

// Hide adds the hidden marker to el
func Hide(el Element) {
	el.AddClass(Hidden)
}

// IsVisible reports whether el has no hidden marker
func IsVisible(el Element) bool {
	return !el.HasClass(Hidden)
}
