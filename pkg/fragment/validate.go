package fragment

import "fmt"

// Limits holds the validation bounds for simulation inputs. It is a plain
// value: callers that need different bounds pass their own copy instead of
// mutating process-wide state.
type Limits struct {
	MinPacketSize int
	MaxPacketSize int
	MinHeaderSize int
	MaxHeaderSize int
	MinMTU        int
	MaxMTU        int
}

// DefaultLimits returns the RFC 791 bounds: packets 20-65535 bytes, headers
// 20-60 bytes, MTUs 68-65535 bytes.
func DefaultLimits() Limits {
	return Limits{
		MinPacketSize: 20,
		MaxPacketSize: 65535,
		MinHeaderSize: 20,
		MaxHeaderSize: 60,
		MinMTU:        68,
		MaxMTU:        65535,
	}
}

// Validate checks simulation inputs against the limits and returns the first
// violated rule. MTU violations are annotated with their 1-indexed hop
// position. The check is pure; nothing is computed beyond the bounds.
func (l Limits) Validate(packetSize, headerSize int, mtuPath []int) error {
	if packetSize < l.MinPacketSize {
		return &PacketSizeError{Size: packetSize, Reason: fmt.Sprintf("must be at least %d bytes", l.MinPacketSize)}
	}
	if packetSize > l.MaxPacketSize {
		return &PacketSizeError{Size: packetSize, Reason: fmt.Sprintf("cannot exceed %d bytes", l.MaxPacketSize)}
	}

	if headerSize < l.MinHeaderSize {
		return &HeaderSizeError{Size: headerSize, Reason: fmt.Sprintf("must be at least %d bytes (RFC 791)", l.MinHeaderSize)}
	}
	if headerSize > l.MaxHeaderSize {
		return &HeaderSizeError{Size: headerSize, Reason: fmt.Sprintf("cannot exceed %d bytes (RFC 791)", l.MaxHeaderSize)}
	}
	if headerSize%4 != 0 {
		return &HeaderSizeError{Size: headerSize, Reason: "must be a multiple of 4 bytes (RFC 791)"}
	}

	if packetSize-headerSize <= 0 {
		return &PacketSizeError{Size: packetSize, Reason: fmt.Sprintf("packet carries no data (header is %d bytes)", headerSize)}
	}

	if len(mtuPath) == 0 {
		return ErrEmptyMTUPath
	}

	for i, mtu := range mtuPath {
		hop := i + 1
		if mtu < l.MinMTU {
			return &MTUError{Hop: hop, MTU: mtu, Reason: fmt.Sprintf("below minimum (%d bytes per RFC 791)", l.MinMTU)}
		}
		if mtu > l.MaxMTU {
			return &MTUError{Hop: hop, MTU: mtu, Reason: fmt.Sprintf("exceeds maximum (%d bytes)", l.MaxMTU)}
		}
		if mtu < headerSize+OffsetUnit {
			return &MTUError{Hop: hop, MTU: mtu, Reason: fmt.Sprintf("too small for header (%d bytes) plus minimum data (%d bytes)", headerSize, OffsetUnit)}
		}
	}

	return nil
}
