package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/aroussi/fragsim/pkg/fragment"
)

// TextExporter exports simulation reports to human-readable text format.
type TextExporter struct{}

// NewTextExporter creates a new text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export writes the simulation report as text to the writer.
func (e *TextExporter) Export(w io.Writer, rep *fragment.Report) error {
	// Header
	fmt.Fprintln(w, "IPv4 Fragmentation Analysis Report")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Generated:   %s\n", rep.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Fragment ID: %d\n", rep.FragmentID)
	fmt.Fprintf(w, "Packet:      %d bytes (%d header + %d data)\n",
		rep.PacketSize, rep.HeaderSize, rep.DataSize())
	fmt.Fprintf(w, "MTU Path:    %s\n", formatMTUPath(rep.MTUPath))
	fmt.Fprintln(w)

	// Hops
	for _, hop := range rep.Hops {
		e.writeHop(w, hop, rep.HeaderSize)
	}

	// Summary
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Final fragments: %d\n", rep.FinalFragmentCount())
	fmt.Fprintf(w, "Hops simulated:  %d\n", rep.TotalHops())
	fmt.Fprintf(w, "Header overhead: %d bytes\n", rep.TotalHeaderOverhead())

	return nil
}

func (e *TextExporter) writeHop(w io.Writer, hop fragment.HopResult, headerSize int) {
	fragWord := "fragments"
	if len(hop.Fragments) == 1 {
		fragWord = "fragment"
	}
	fmt.Fprintf(w, "Network Hop %d (MTU %d bytes) - %d %s\n",
		hop.HopNumber, hop.MTU, len(hop.Fragments), fragWord)
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "%-5s %-8s %-11s %-10s %-12s %-12s %s\n",
		"Seq", "ID", "Total", "Data", "Offset(B)", "Offset(8B)", "MF")

	for i, f := range hop.Fragments {
		fmt.Fprintf(w, "%-5d %-8d %-11d %-10d %-12d %-12d %s\n",
			f.Sequence, f.ID, f.TotalSize(headerSize), f.DataLength,
			f.OffsetBytes(), f.OffsetUnits, mfFlagString(hop.MoreFragments(i)))
	}

	fmt.Fprintln(w)
}
