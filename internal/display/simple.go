// Package display provides output rendering for simulation reports.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/aroussi/fragsim/pkg/fragment"
)

// SimpleRenderer renders simulation reports in plain text format.
type SimpleRenderer struct {
	ShowSummary bool
}

// NewSimpleRenderer creates a new SimpleRenderer with default settings.
func NewSimpleRenderer() *SimpleRenderer {
	return &SimpleRenderer{
		ShowSummary: true,
	}
}

// RenderHop renders one hop's fragment table as a multi-line string.
func (r *SimpleRenderer) RenderHop(hop fragment.HopResult, headerSize int) string {
	var b strings.Builder

	fragWord := "fragments"
	if len(hop.Fragments) == 1 {
		fragWord = "fragment"
	}
	fmt.Fprintf(&b, "Network Hop %d  [MTU: %d bytes]  %d %s\n",
		hop.HopNumber, hop.MTU, len(hop.Fragments), fragWord)
	fmt.Fprintf(&b, "  %-5s %-8s %-10s %-10s %-11s %-11s %s\n",
		"Seq", "ID", "Total", "Data", "Offset(B)", "Offset(8B)", "MF")

	for i, f := range hop.Fragments {
		mf := "0 (Last)"
		if hop.MoreFragments(i) {
			mf = "1 (More)"
		}
		fmt.Fprintf(&b, "  #%-4d %-8d %-10d %-10d %-11d %-11d %s\n",
			f.Sequence, f.ID, f.TotalSize(headerSize), f.DataLength,
			f.OffsetBytes(), f.OffsetUnits, mf)
	}

	return b.String()
}

// RenderReport renders a complete simulation report to the writer.
func (r *SimpleRenderer) RenderReport(w io.Writer, rep *fragment.Report) {
	// Header
	fmt.Fprintf(w, "fragmenting %d-byte packet (%d header + %d data), ID %d\n",
		rep.PacketSize, rep.HeaderSize, rep.DataSize(), rep.FragmentID)
	fmt.Fprintf(w, "MTU path: %s\n\n", formatPath(rep.MTUPath))

	// Each hop
	for _, hop := range rep.Hops {
		fmt.Fprintln(w, r.RenderHop(hop, rep.HeaderSize))
	}

	// Summary
	if r.ShowSummary {
		fmt.Fprintf(w, "Simulation complete: %d final fragments over %d hops, %d bytes header overhead\n",
			rep.FinalFragmentCount(), rep.TotalHops(), rep.TotalHeaderOverhead())
	}
}
