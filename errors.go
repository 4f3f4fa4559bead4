package polyvolume

import "errors"

// Errors returned by New and CreateGeometry. The underlying cause, when there
// is one, is wrapped alongside so that errors.Is matches both.
var (
	// ErrInvalidShape reports a cross-section with fewer than 3 distinct
	// points or no area.
	ErrInvalidShape = errors.New("polyvolume: invalid shape")

	// ErrInvalidPath reports a path with fewer than 2 distinct positions, a
	// vertical segment or a 180 degree reversal.
	ErrInvalidPath = errors.New("polyvolume: invalid path")

	// ErrInvalidGeometry reports an assembly failure after validation passed.
	ErrInvalidGeometry = errors.New("polyvolume: invalid geometry")

	// ErrUnknownCornerType reports an unrecognized corner type name.
	ErrUnknownCornerType = errors.New("polyvolume: unknown corner type")

	// ErrUnknownAttribute reports an unrecognized vertex attribute name.
	ErrUnknownAttribute = errors.New("polyvolume: unknown vertex attribute")
)
