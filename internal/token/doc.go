// Package token defines the token-type lattice and the records produced by
// the parser.
// Invariants:
//   - Type is one flat enum; the overlapping groupings of the lattice
//     (letter/punctuation, width, visibility) are predicate methods on it.
//   - Tokens and marks live in arenas and refer to each other by ID
//     (ID, MarkID); there are no pointers between records.
//   - Token.Value is the literal source text; SpaceAfter is the whitespace
//     run that follows it. Group tokens cover their whole pair, delimiters
//     included.
//   - Pair.EndIndex is Unresolved until a matching closer is found, and
//     greater than StartIndex afterwards.
package token
