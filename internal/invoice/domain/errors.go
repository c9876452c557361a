package domain

import "errors"

var (
	ErrInvalidPartyKind     = errors.New("invalid_party_kind")
	ErrInvalidLineItemField = errors.New("invalid_line_item_field")
)
