//go:build js && wasm

// Package quill binds the Quill editor loaded on the page.
package quill

import (
	"syscall/js"
)

const placeholder = "Write your post content..."

func toolbar() []any {
	return []any{
		[]any{"bold", "italic", "underline", "strike"},
		[]any{"blockquote", "code-block"},
		[]any{map[string]any{"header": 1}, map[string]any{"header": 2}},
		[]any{map[string]any{"list": "ordered"}, map[string]any{"list": "bullet"}},
		[]any{map[string]any{"script": "sub"}, map[string]any{"script": "super"}},
		[]any{"link", "image"},
		[]any{"clean"},
	}
}

// Widget is a Quill instance mounted on one element
type Widget struct {
	quill js.Value
}

// New mounts Quill with the snow theme on the element matched by selector
func New(selector string) *Widget {
	q := js.Global().Get("Quill").New(selector, map[string]any{
		"theme":       "snow",
		"placeholder": placeholder,
		"modules": map[string]any{
			"toolbar": toolbar(),
		},
	})
	return &Widget{quill: q}
}

func (w *Widget) Contents() string {
	return w.quill.Get("root").Get("innerHTML").String()
}

func (w *Widget) SetContents(markup string) {
	if markup == "" {
		w.quill.Call("setContents", []any{})
		return
	}
	w.quill.Get("clipboard").Call("dangerouslyPasteHTML", markup)
}
