package domain

import "errors"

var (
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrUnknownCity     = errors.New("unknown city")
	ErrUnknownAnchor   = errors.New("unknown anchor")
	ErrNoSelection     = errors.New("no city selected")
	ErrNoPhotos        = errors.New("city has no photos")
	ErrPhotoOutOfRange = errors.New("photo index out of range")
)
