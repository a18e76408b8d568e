package taxonomy

import "errors"

var (
	// ErrPackUnreadable is returned when a pack file cannot be read or parsed.
	ErrPackUnreadable = errors.New("taxonomy pack unreadable")

	// ErrInvalidPack is returned when a pack fails validation.
	ErrInvalidPack = errors.New("invalid taxonomy pack")
)
