package packets

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteData is returned when fewer bytes remain than a decode step needs. The
	// datagram is truncated or malformed and should be discarded.
	ErrIncompleteData = errors.New("incomplete data")

	// ErrConversion is returned when a discriminant (packet kind byte or event code) does not
	// map to a known value.
	ErrConversion = errors.New("can't convert value")
)

func incompleteData(stage string, need, got int) error {
	return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrIncompleteData, stage, need, got)
}

// requireBytes is the upfront guard every decode stage runs before touching the reader
func requireBytes(r *reader, stage string, need int) error {
	if r.remaining() < need {
		return incompleteData(stage, need, r.remaining())
	}

	return nil
}
