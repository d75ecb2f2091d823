// Package page renders the contact page and its privacy policy as HTML using
// pongo2 templates. The rendered document reflects a live session: field
// values, the visible banner, the privacy link attributes and the decorative
// elements.
package page
