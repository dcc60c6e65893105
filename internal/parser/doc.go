// Package parser turns prose with inline markup into a token tree.
//
// Parsing runs in two passes over one status value:
//
//   - the pairing pass walks the text once, classifies every rune, merges
//     letter runs, attaches whitespace to the preceding lexeme and pairs
//     marks with a LIFO stack;
//   - the build pass folds the flat lexeme stream into group tokens using
//     the resolved marks.
//
// Parse never fails. Problems are collected in Result.Errors (and forwarded
// to Options.Reporter when set) and the affected region degrades to
// Unmatched or Indeterminate tokens. A Result is read-only; edits go through
// package overlay.
package parser
