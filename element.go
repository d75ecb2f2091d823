package contactform

// Element is a page element whose text and visibility can be changed
// directly, the way the title, subtitle and hidden cat are.
type Element struct {
	ID      string
	text    string
	visible bool
}

func newElement(id, text string, visible bool) *Element {
	return &Element{ID: id, text: text, visible: visible}
}

// Show makes the element visible.
func (e *Element) Show() *Element {
	e.visible = true
	return e
}

// Hide makes the element invisible.
func (e *Element) Hide() *Element {
	e.visible = false
	return e
}

// SetText replaces the element text.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// Text returns the element text.
func (e *Element) Text() string { return e.text }

// Visible reports whether the element is shown.
func (e *Element) Visible() bool { return e.visible }
