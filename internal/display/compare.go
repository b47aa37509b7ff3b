package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/aroussi/fragsim/pkg/fragment"
)

// CompareRenderer renders two simulation reports side by side so the
// effect of different MTU paths on the same packet can be inspected.
type CompareRenderer struct{}

// NewCompareRenderer creates a new CompareRenderer.
func NewCompareRenderer() *CompareRenderer {
	return &CompareRenderer{}
}

// Render writes a side-by-side comparison of two reports to the writer.
func (r *CompareRenderer) Render(w io.Writer, a, b *fragment.Report) {
	const colWidth = 36

	fmt.Fprintf(w, "Comparing MTU paths for a %d-byte packet (%d-byte header)\n\n",
		a.PacketSize, a.HeaderSize)
	fmt.Fprintf(w, "%-*s %s\n",
		colWidth, "Path A: "+formatPath(a.MTUPath), "Path B: "+formatPath(b.MTUPath))
	fmt.Fprintf(w, "%-*s %s\n",
		colWidth, strings.Repeat("-", colWidth-2), strings.Repeat("-", colWidth-2))

	hops := len(a.Hops)
	if len(b.Hops) > hops {
		hops = len(b.Hops)
	}
	for i := 0; i < hops; i++ {
		fmt.Fprintf(w, "%-*s %s\n", colWidth, hopLine(a, i), hopLine(b, i))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-*s %s\n",
		colWidth,
		fmt.Sprintf("final fragments: %d", a.FinalFragmentCount()),
		fmt.Sprintf("final fragments: %d", b.FinalFragmentCount()))
	fmt.Fprintf(w, "%-*s %s\n",
		colWidth,
		fmt.Sprintf("header overhead: %d bytes", a.TotalHeaderOverhead()),
		fmt.Sprintf("header overhead: %d bytes", b.TotalHeaderOverhead()))

	diff := b.TotalHeaderOverhead() - a.TotalHeaderOverhead()
	switch {
	case diff > 0:
		fmt.Fprintf(w, "\nPath B costs %d extra bytes of header overhead\n", diff)
	case diff < 0:
		fmt.Fprintf(w, "\nPath A costs %d extra bytes of header overhead\n", -diff)
	default:
		fmt.Fprintln(w, "\nBoth paths carry the same header overhead")
	}
}

// hopLine formats one hop of a report for a comparison column, or a
// placeholder when that report has fewer hops.
func hopLine(rep *fragment.Report, i int) string {
	if i >= len(rep.Hops) {
		return fmt.Sprintf("hop %d: -", i+1)
	}
	hop := rep.Hops[i]
	return fmt.Sprintf("hop %d: MTU %d, %d frags", hop.HopNumber, hop.MTU, len(hop.Fragments))
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, mtu := range path {
		parts[i] = fmt.Sprintf("%d", mtu)
	}
	return strings.Join(parts, " -> ")
}
