// Package textutil holds small string helpers shared by the reference library
// and the extractor: turning shot names and video stems into filesystem-safe
// tokens, plus a generic conditional used when composing log fields.
package textutil
