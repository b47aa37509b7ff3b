// Package fragment implements RFC 791 IPv4 fragmentation arithmetic and the
// multi-hop simulation built on top of it.
package fragment

import (
	"fmt"
	"time"
)

// OffsetUnit is the granularity of the RFC 791 Fragment Offset field.
const OffsetUnit = 8

// MaxOffsetUnits is the largest value the 13-bit Fragment Offset field can hold.
const MaxOffsetUnits = 8191

// Fragment represents a single IPv4 fragment within one hop.
type Fragment struct {
	ID          uint16 // Identification field, shared by all descendants of one packet
	DataLength  int    // Payload bytes carried by this fragment
	OffsetUnits int    // Fragment Offset field value, in 8-byte units
	Sequence    int    // 1-indexed position within the hop's fragment list
}

// OffsetBytes returns the byte offset of this fragment's data within the
// original payload.
func (f Fragment) OffsetBytes() int {
	return f.OffsetUnits * OffsetUnit
}

// TotalSize returns the on-wire size of the fragment including its header.
func (f Fragment) TotalSize(headerSize int) int {
	return f.DataLength + headerSize
}

// String formats the fragment for logs and diagnostics.
func (f Fragment) String() string {
	return fmt.Sprintf("seq=%d id=%d len=%d off=%d", f.Sequence, f.ID, f.DataLength, f.OffsetUnits)
}

// HopResult holds the fragment list produced at one hop.
type HopResult struct {
	HopNumber int // 1-indexed hop position in the MTU path
	MTU       int
	Fragments []Fragment
}

// TotalData sums the payload bytes over the hop's fragments.
func (h HopResult) TotalData() int {
	var total int
	for _, f := range h.Fragments {
		total += f.DataLength
	}
	return total
}

// MoreFragments reports the MF flag for the fragment at index i: set for
// every fragment except the last in the hop's list.
func (h HopResult) MoreFragments(i int) bool {
	return i < len(h.Fragments)-1
}

// HeaderOverhead returns the header bytes spent at this hop.
func (h HopResult) HeaderOverhead(headerSize int) int {
	return len(h.Fragments) * headerSize
}

// Report is the complete result of one simulation run. It is created once
// per run and never mutated afterwards.
type Report struct {
	FragmentID uint16
	PacketSize int
	HeaderSize int
	MTUPath    []int
	Hops       []HopResult
	Timestamp  time.Time
}

// DataSize returns the payload size of the original packet.
func (r *Report) DataSize() int {
	return r.PacketSize - r.HeaderSize
}

// TotalHops returns the number of hops simulated.
func (r *Report) TotalHops() int {
	return len(r.Hops)
}

// FinalFragmentCount returns the number of fragments after the last hop.
func (r *Report) FinalFragmentCount() int {
	if len(r.Hops) == 0 {
		return 0
	}
	return len(r.Hops[len(r.Hops)-1].Fragments)
}

// TotalHeaderOverhead sums the header bytes spent across all hops.
func (r *Report) TotalHeaderOverhead() int {
	var total int
	for _, h := range r.Hops {
		total += h.HeaderOverhead(r.HeaderSize)
	}
	return total
}

// NewID derives a 16-bit identification value from the wall clock.
func NewID() uint16 {
	return uint16(time.Now().UnixMilli() % 65536)
}
