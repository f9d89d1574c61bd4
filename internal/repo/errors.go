package repo

import "errors"

// ErrStorageCorrupt is returned when a stored table has a malformed header,
// row or value.
var ErrStorageCorrupt = errors.New("storage corrupt")

// ErrItemNotFound is returned when an update targets a key with no catalog row.
var ErrItemNotFound = errors.New("item not found")
