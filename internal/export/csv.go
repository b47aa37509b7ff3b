package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aroussi/fragsim/pkg/fragment"
)

// CSVExporter exports simulation reports as a sectioned CSV document:
// configuration, per-hop fragment tables, and a summary.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the simulation report as CSV to the writer.
func (e *CSVExporter) Export(w io.Writer, rep *fragment.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	rows := [][]string{
		{"IPv4 Fragmentation Analysis Report"},
		{""},
		{"Generated:", rep.Timestamp.Format("2006-01-02 15:04:05")},
		{""},
		{"CONFIGURATION"},
		{"Fragment ID:", strconv.Itoa(int(rep.FragmentID))},
		{"Original Packet Size:", fmt.Sprintf("%d bytes", rep.PacketSize)},
		{"Header Size:", fmt.Sprintf("%d bytes", rep.HeaderSize)},
		{"Data Size:", fmt.Sprintf("%d bytes", rep.DataSize())},
		{"MTU Path:", formatMTUPath(rep.MTUPath)},
		{"Number of Hops:", strconv.Itoa(rep.TotalHops())},
		{""},
		{"FRAGMENTATION DETAILS"},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, hop := range rep.Hops {
		if err := e.writeHop(writer, hop, rep.HeaderSize); err != nil {
			return err
		}
	}

	summary := [][]string{
		{""},
		{"SUMMARY"},
		{"Final Fragment Count:", strconv.Itoa(rep.FinalFragmentCount())},
		{"Total Hops:", strconv.Itoa(rep.TotalHops())},
		{"Total Header Overhead:", fmt.Sprintf("%d bytes", rep.TotalHeaderOverhead())},
	}
	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return nil
}

// writeHop writes one hop's section: a title row, the column header, and one
// row per fragment.
func (e *CSVExporter) writeHop(writer *csv.Writer, hop fragment.HopResult, headerSize int) error {
	title := [][]string{
		{""},
		{fmt.Sprintf("Network Hop %d", hop.HopNumber), fmt.Sprintf("MTU: %d bytes", hop.MTU)},
		{"Seq", "Fragment ID", "Total Size (bytes)", "Data Size (bytes)",
			"Offset (bytes)", "Offset (8-byte units)", "MF Flag"},
	}
	for _, row := range title {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write hop header: %w", err)
		}
	}

	for i, f := range hop.Fragments {
		row := []string{
			strconv.Itoa(f.Sequence),
			strconv.Itoa(int(f.ID)),
			strconv.Itoa(f.TotalSize(headerSize)),
			strconv.Itoa(f.DataLength),
			strconv.Itoa(f.OffsetBytes()),
			strconv.Itoa(f.OffsetUnits),
			mfFlagString(hop.MoreFragments(i)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write fragment row: %w", err)
		}
	}

	return nil
}

// formatMTUPath joins MTU values with arrows, as shown in the UI.
func formatMTUPath(path []int) string {
	parts := make([]string, len(path))
	for i, mtu := range path {
		parts[i] = strconv.Itoa(mtu)
	}
	return strings.Join(parts, " -> ")
}

// mfFlagString renders the More Fragments bit.
func mfFlagString(more bool) string {
	if more {
		return "1 (More)"
	}
	return "0 (Last)"
}
