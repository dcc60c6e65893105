package token

type ID int32

const NoID ID = -1

// Token is a single or group token. Group-only fields are zero on single
// tokens.
type Token struct {
	ID         ID
	Type       Type
	Index      int
	Length     int
	Value      string
	SpaceAfter string

	// Mark is a lookup aid, not ownership.
	Mark     MarkID
	MarkSide MarkSide

	Pair             Pair
	InnerSpaceBefore string
	Children         []ID
}

func (t *Token) IsGroup() bool { return t.Type == Group }

// End is the exclusive end offset of the token's value.
func (t *Token) End() int { return t.Index + t.Length }

// Next is the offset right after the token's trailing space.
func (t *Token) Next() int { return t.End() + len(t.SpaceAfter) }

// HasMark reports whether the token carries a mark back-reference.
func (t *Token) HasMark() bool { return t.Mark != NoMark }
