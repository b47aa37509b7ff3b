package fragment

import (
	"time"

	"go.uber.org/zap"
)

// Simulator runs the multi-hop fragmentation simulation. It is stateless
// between calls: every Simulate invocation builds a fresh Report, so
// concurrent use needs no locking.
type Simulator struct {
	limits Limits
	log    *zap.SugaredLogger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLimits overrides the default RFC 791 validation bounds.
func WithLimits(l Limits) Option {
	return func(s *Simulator) { s.limits = l }
}

// WithLogger sets the logger used for per-hop debug output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Simulator) { s.log = log }
}

// NewSimulator creates a Simulator with RFC 791 default limits and a no-op
// logger.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		limits: DefaultLimits(),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the validation bounds the simulator applies.
func (s *Simulator) Limits() Limits {
	return s.limits
}

// Simulate validates the inputs and threads the packet's fragments through
// each MTU in order. A fragment whose total size already fits a hop's MTU
// passes through unchanged, as real routers do not re-split fragments that
// fit; oversized fragments are re-fragmented keeping their identification
// value. Sequence numbers are renumbered 1..n across each hop's whole list.
//
// Any OffsetOverflowError from a per-fragment split fails the entire run; no
// partial report is returned.
func (s *Simulator) Simulate(packetSize, headerSize int, mtuPath []int, id uint16) (*Report, error) {
	if err := s.limits.Validate(packetSize, headerSize, mtuPath); err != nil {
		return nil, err
	}

	dataSize := packetSize - headerSize
	s.log.Debugw("starting simulation",
		"id", id, "packet_size", packetSize, "header_size", headerSize, "data_size", dataSize, "hops", len(mtuPath))

	current := []Fragment{{ID: id, DataLength: dataSize, OffsetUnits: 0, Sequence: 1}}
	hops := make([]HopResult, 0, len(mtuPath))

	for i, mtu := range mtuPath {
		next := make([]Fragment, 0, len(current))

		for _, f := range current {
			if f.TotalSize(headerSize) <= mtu {
				next = append(next, f)
				continue
			}

			s.log.Debugw("re-fragmenting", "hop", i+1, "mtu", mtu, "fragment", f.String())
			subs, err := FragmentPayload(f.DataLength, f.OffsetBytes(), headerSize, mtu, f.ID)
			if err != nil {
				return nil, err
			}
			next = append(next, subs...)
		}

		for j := range next {
			next[j].Sequence = j + 1
		}

		hops = append(hops, HopResult{HopNumber: i + 1, MTU: mtu, Fragments: next})
		s.log.Debugw("hop complete", "hop", i+1, "mtu", mtu, "fragments", len(next))

		current = next
	}

	return &Report{
		FragmentID: id,
		PacketSize: packetSize,
		HeaderSize: headerSize,
		MTUPath:    mtuPath,
		Hops:       hops,
		Timestamp:  time.Now(),
	}, nil
}
