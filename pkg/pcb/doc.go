// Package pcb defines the board placement model: the board itself, the
// five component kinds with their footprints, placements as plain value
// types, and the keep-out zone derivation.
//
// A Placement is data, nothing more. Constraint checking lives in
// pcb/constraint, search in pcb/place, and scoring in pcb/score; all of
// them consume the types defined here.
//
// Placements serialize to JSON (files, API) and BSON (storage) with the
// same field names, so a document round-trips identically through either
// encoding.
package pcb
