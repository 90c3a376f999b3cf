package service

import "errors"

// Error kinds handlers convert into user-facing degraded messages. No error
// from this package may reach the dialogue engine undigested.
var (
	// ErrDataUnavailable means the catalog is missing or unreadable.
	ErrDataUnavailable = errors.New("catalog data unavailable")

	// ErrInvalidIndex means a cart-add referenced a position outside the
	// currently displayed page.
	ErrInvalidIndex = errors.New("product index out of range")

	// ErrItemNotFound means a cart update targeted an id no cart line has.
	ErrItemNotFound = errors.New("cart item not found")

	// ErrUpstreamUnavailable means the styling-advice service failed or
	// timed out.
	ErrUpstreamUnavailable = errors.New("styling service unavailable")
)
