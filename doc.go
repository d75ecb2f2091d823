// Package contactform models the "Central de Atendimento ao Cliente TAT"
// contact page as an explicit state machine: a field registry, a conditional
// requirement engine, a submission validator and a feedback banner that hides
// itself after three seconds of (possibly virtual) time.
//
// Typical use:
//
//	page, err := contactform.New(contactform.WithClock(clock.NewVirtual(time.Now())))
//	if err != nil { ... }
//	_ = page.Type("firstName", "Marcelo")
//	result := page.Submit()
//
// Renderers live under pkg/page (HTML) and pkg/renderers/tui (terminal).
package contactform
