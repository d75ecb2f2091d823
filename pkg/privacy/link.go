// Package privacy models the privacy-policy anchor of the contact page and
// where following it navigates.
package privacy

import (
	"sort"
	"strings"
)

// DefaultHref is the privacy page bundled with the contact page.
const DefaultHref = "privacy.html"

// TargetBlank opens the link in a new browsing context.
const TargetBlank = "_blank"

// Context names the browsing context a navigation lands in. ContextAncestor
// is the parent or top-level context of the current one.
type Context string

const (
	ContextCurrent  Context = "current"
	ContextAncestor Context = "ancestor"
	ContextNewTab   Context = "new-tab"
)

// Navigation is the result of following the link.
type Navigation struct {
	Context Context `json:"context"`
	URL     string  `json:"url"`
}

// Link is a static anchor with mutable attributes.
type Link struct {
	Label string
	attrs map[string]string
}

// NewLink returns an anchor pointing at href. An empty target leaves the
// attribute absent.
func NewLink(label, href, target string) *Link {
	l := &Link{Label: label, attrs: map[string]string{"href": strings.TrimSpace(href)}}
	if t := strings.TrimSpace(target); t != "" {
		l.attrs["target"] = t
	}
	return l
}

// Default returns the page's privacy link: privacy.html in a new tab.
func Default() *Link {
	return NewLink("Política de Privacidade", DefaultHref, TargetBlank)
}

// Href returns the link destination.
func (l *Link) Href() string { return l.attrs["href"] }

// Target returns the target attribute and whether it is present.
func (l *Link) Target() (string, bool) {
	t, ok := l.attrs["target"]
	return t, ok
}

// Attr returns an attribute value.
func (l *Link) Attr(name string) (string, bool) {
	v, ok := l.attrs[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// SetAttr sets an attribute.
func (l *Link) SetAttr(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	l.attrs[name] = value
}

// RemoveAttr deletes an attribute; removing an absent one is a no-op.
func (l *Link) RemoveAttr(name string) {
	delete(l.attrs, strings.ToLower(strings.TrimSpace(name)))
}

// Attrs returns the attributes sorted by name, for renderers.
func (l *Link) Attrs() [][2]string {
	names := make([]string, 0, len(l.attrs))
	for name := range l.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([][2]string, 0, len(names))
	for _, name := range names {
		out = append(out, [2]string{name, l.attrs[name]})
	}
	return out
}

// Navigate reports where following the link goes. "_blank" and named
// targets open a new browsing context; "_parent" and "_top" reuse an
// existing ancestor; empty or "_self" stays in the current one.
func (l *Link) Navigate() Navigation {
	nav := Navigation{Context: ContextCurrent, URL: l.Href()}
	if t, ok := l.Target(); ok {
		switch strings.TrimSpace(strings.ToLower(t)) {
		case "", "_self":
		case "_parent", "_top":
			nav.Context = ContextAncestor
		default:
			nav.Context = ContextNewTab
		}
	}
	return nav
}

// Clone returns an independent copy.
func (l *Link) Clone() *Link {
	out := &Link{Label: l.Label, attrs: make(map[string]string, len(l.attrs))}
	for k, v := range l.attrs {
		out.attrs[k] = v
	}
	return out
}
