// Package model defines the declarative field schema shared by the validator
// and the form renderer. A Schema is an ordered, immutable collection of
// Fields keyed by id; iteration order drives both rendering order and the
// order in which validation errors are produced.
//
// Kinds map onto controls and coercion rules: text, textarea and select are
// recorded as submitted strings while integer, float and number are parsed.
// A number field carries a unit table; the submitted magnitude is multiplied
// by the selected unit's multiplier and must land on an integer, which lets
// money or length values be stored in their smallest unit. The selected unit
// travels in a companion input named UnitsKey(id).
//
// Schemas are validated once by NewSchema so that structural mistakes (a
// select without options, a number without a unit table) surface at
// declaration time instead of during a submission.
package model
