// Package editor adapts rich-text widgets to the two operations the page
// needs: read the serialized content and clear it.
package editor

// Widget is a rich-text editing surface
type Widget interface {
	// Contents returns serialized markup of the surface
	Contents() string
	// SetContents replaces the surface content, empty markup clears it
	SetContents(markup string)
}

type Adapter struct {
	widget Widget
}

func New(widget Widget) *Adapter {
	return &Adapter{widget: widget}
}

// Content returns current markup of the editing surface
func (a *Adapter) Content() string {
	return a.widget.Contents()
}

// Clear resets the editing surface to empty content
func (a *Adapter) Clear() {
	a.widget.SetContents("")
}
