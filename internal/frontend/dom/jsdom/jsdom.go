//go:build js && wasm

// Package jsdom implements the dom abstraction on top of the browser
// document for js/wasm builds.
package jsdom

import (
	"syscall/js"

	"github.com/IlianBuh/Blog-service/internal/frontend/dom"
)

type Document struct {
	doc js.Value
}

func New() Document {
	return Document{doc: js.Global().Get("document")}
}

func (d Document) ElementByID(id string) dom.Element {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return Element{v: v}
}

type Element struct {
	v js.Value
}

func (e Element) AddClass(class string) {
	e.v.Get("classList").Call("add", class)
}

func (e Element) RemoveClass(class string) {
	e.v.Get("classList").Call("remove", class)
}

func (e Element) HasClass(class string) bool {
	return e.v.Get("classList").Call("contains", class).Bool()
}

func (e Element) Value() string {
	return e.v.Get("value").String()
}

func (e Element) SetValue(value string) {
	e.v.Set("value", value)
}

func (e Element) InnerHTML() string {
	return e.v.Get("innerHTML").String()
}

func (e Element) SetInnerHTML(markup string) {
	e.v.Set("innerHTML", markup)
}

func (e Element) SetText(text string) {
	e.v.Set("textContent", text)
}

// On runs handler in its own goroutine, so handlers may block on network
// calls. Listeners live as long as the page and are never released
func (e Element) On(event string, handler func()) {
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		go handler()
		return nil
	})
	e.v.Call("addEventListener", event, listener)
}
