// Package memdom keeps a page in memory. Handlers run synchronously from
// Trigger, which makes it suitable for driving the front-end in tests.
package memdom

import (
	"html"
	"sync"

	"github.com/IlianBuh/Blog-service/internal/frontend/dom"
)

type Document struct {
	mu       sync.Mutex
	elements map[string]*Element
}

// New creates document with an empty element for every id
func New(ids ...string) *Document {
	d := &Document{elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add creates element with id, replacing an existing one
func (d *Document) Add(id string, classes ...string) *Element {
	el := &Element{
		id:       id,
		classes:  make(map[string]struct{}),
		handlers: make(map[string][]func()),
	}
	for _, c := range classes {
		el.classes[c] = struct{}{}
	}

	d.mu.Lock()
	d.elements[id] = el
	d.mu.Unlock()

	return el
}

// Get returns the concrete element, nil if absent
func (d *Document) Get(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[id]
}

func (d *Document) ElementByID(id string) dom.Element {
	el := d.Get(id)
	if el == nil {
		return nil
	}
	return el
}

type Element struct {
	id string

	mu       sync.Mutex
	classes  map[string]struct{}
	value    string
	markup   string
	handlers map[string][]func()
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) AddClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes[class] = struct{}{}
}

func (e *Element) RemoveClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.classes, class)
}

func (e *Element) HasClass(class string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.classes[class]
	return ok
}

func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

func (e *Element) SetValue(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = value
}

func (e *Element) InnerHTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markup
}

func (e *Element) SetInnerHTML(markup string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markup = markup
}

func (e *Element) SetText(text string) {
	e.SetInnerHTML(html.EscapeString(text))
}

func (e *Element) On(event string, handler func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], handler)
}

// Trigger runs handlers registered for event in registration order
func (e *Element) Trigger(event string) {
	e.mu.Lock()
	handlers := append([]func(){}, e.handlers[event]...)
	e.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}
