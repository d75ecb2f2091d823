// Package model defines the typed description of the contact page: fields,
// their kinds, options and requirement rules. Definitions are loaded by
// pkg/formdef and consumed by the form state, the validator and the
// renderers, so the structure carries both json and yaml tags to keep
// snapshots deterministic.
//
// A field's requirement is either static (Required) or conditional
// (RequiredWhen). Conditional rules use the small expression language of
// pkg/requirement/expr and are evaluated against checkbox toggles, for
// example `phone-checkbox == true`.
package model
