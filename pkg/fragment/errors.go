package fragment

import (
	"errors"
	"fmt"
)

// ErrEmptyMTUPath is returned when no hops are supplied.
var ErrEmptyMTUPath = errors.New("MTU path cannot be empty")

// ErrNoData is returned when a fragmenter call receives nothing to fragment.
var ErrNoData = errors.New("no data to fragment")

// PacketSizeError reports a packet size outside the configured bounds or a
// packet with no payload.
type PacketSizeError struct {
	Size   int
	Reason string
}

func (e *PacketSizeError) Error() string {
	return fmt.Sprintf("invalid packet size %d: %s", e.Size, e.Reason)
}

// HeaderSizeError reports a header size outside the configured bounds or not
// a multiple of 4.
type HeaderSizeError struct {
	Size   int
	Reason string
}

func (e *HeaderSizeError) Error() string {
	return fmt.Sprintf("invalid header size %d: %s", e.Size, e.Reason)
}

// MTUError reports an invalid MTU value. Hop is the 1-indexed position in
// the MTU path.
type MTUError struct {
	Hop    int
	MTU    int
	Reason string
}

func (e *MTUError) Error() string {
	return fmt.Sprintf("invalid MTU %d at hop %d: %s", e.MTU, e.Hop, e.Reason)
}

// OffsetOverflowError reports a computed fragment offset that exceeds the
// 13-bit Fragment Offset field. It aborts the whole simulation.
type OffsetOverflowError struct {
	OffsetUnits int
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("fragment offset %d exceeds maximum (%d): packet too large to fragment at this MTU",
		e.OffsetUnits, MaxOffsetUnits)
}
