package errors

import "errors"

// ErrDocumentCorrupt the persisted board document could not be decoded
var ErrDocumentCorrupt = errors.New("board document is corrupt")

// ErrStoreClosed the store was used after Close
var ErrStoreClosed = errors.New("store is closed")
