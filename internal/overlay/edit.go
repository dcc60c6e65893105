package overlay

import "hyperlex/internal/token"

// edit holds the two overlay slots of one field. modified replaces the
// original on read; ignored records a change a pass decided not to apply.
type edit[T comparable] struct {
	modified    T
	hasModified bool
	ignored     T
	hasIgnored  bool
}

func (e *edit[T]) get(original T) T {
	if e != nil && e.hasModified {
		return e.modified
	}
	return original
}

func (e *edit[T]) getIgnored() T {
	var zero T
	if e != nil && e.hasIgnored {
		return e.ignored
	}
	return zero
}

func (e *edit[T]) set(v T) {
	e.modified, e.hasModified = v, true
}

func (e *edit[T]) ignore(v T) {
	e.ignored, e.hasIgnored = v, true
}

type tokenEdit struct {
	value            edit[string]
	spaceAfter       edit[string]
	innerSpaceBefore edit[string]
	typ              edit[token.Type]
}

type markEdit struct {
	startValue edit[string]
	endValue   edit[string]
}
