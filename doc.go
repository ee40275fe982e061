// Package anymatch provides structural pattern matching for JSON-shaped values:
//
// - Schema trees built from literals, kind placeholders, unions, wildcards and open containers
// - A recursive matcher with partial dict, prefix list and unordered set semantics
// - A Validator facade over Go values, JSON text and YAML text
// - A stable diagnostics model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - The node algebra is closed: TypeMatch, DictMatch, ListMatch, SetMatch, UnionMatch and Wildcard.
//   Any other value used in a schema position is a literal compared by deep equality.
// - Schemas are immutable after construction and safe for concurrent use.
// - Decoding lives under internal/engine and source/; the root package only exposes the matcher.
//
// Typical usage:
//
//	schema := anymatch.Any(map[string]any{
//	    "name":   anymatch.Any(anymatch.String),
//	    "status": anymatch.Any(anymatch.Bool, "success", "fail"),
//	    "tags":   anymatch.Any([]any{anymatch.Any(anymatch.String), anymatch.Rest}),
//	})
//	ok, err := anymatch.NewValidator(schema).ValidateText(`{"name":"x","status":true,"tags":["a"]}`)
//
// Open-ended containers:
//
//	// every value of the map must be a number
//	anymatch.Any(anymatch.Dict{anymatch.Rest: anymatch.Any(anymatch.Number)})
//	// a list of strings of any length
//	anymatch.Any([]any{anymatch.Any(anymatch.String), anymatch.Rest})
//	// a list containing 1 and 2 in any order
//	anymatch.Any(anymatch.Set{1, 2})
package anymatch
