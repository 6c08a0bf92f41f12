// Package hints keeps the registry of extension attributes ("hints") that can
// be attached to schema fields beyond their built-in parameters.
//
// A hint is declared once, usually from a package-level variable, and the
// returned *Hint is the key used to read and write it. Two declarations with
// the same human-readable name produce distinct hints, so unrelated packages
// can reuse a name without colliding. Declarations are append-only for the
// lifetime of the registry.
package hints
