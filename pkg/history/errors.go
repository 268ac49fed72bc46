package history

import "errors"

var (
	ErrRecordNotFound = errors.New("history.record_not_found")
	ErrInvalidRecord  = errors.New("history.invalid_record")
	ErrStoreFailed    = errors.New("history.store_failed")
)
