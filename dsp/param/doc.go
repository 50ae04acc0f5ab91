// Package param describes ranged module parameters.
//
// A [Range] carries the inclusive bounds and default of one parameter, a
// [Spec] adds its name, unit and kind for UI and preset collaborators, and a
// [Table] binds specs to the fields of a module's plain state struct so that
// parameters can be read and written by name with the module's own clamping.
//
// Ranges and defaults are query-only metadata; only current values are
// persisted by state snapshots.
package param
