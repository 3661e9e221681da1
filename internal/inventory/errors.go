package inventory

import "errors"

var (
	// ErrNotFound means the referenced record does not resolve.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyDelivered rejects a delivery receipt on a purchase whose
	// arrival date is already set. The Pending -> Delivered transition is
	// one-way; a delivery event must never apply twice.
	ErrAlreadyDelivered = errors.New("purchase already delivered")
)
