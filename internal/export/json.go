// Package export provides functionality to export simulation reports to
// various formats.
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/aroussi/fragsim/pkg/fragment"
)

// ExportedReport is the JSON representation of a simulation report.
type ExportedReport struct {
	FragmentID uint16          `json:"fragmentId"`
	PacketSize int             `json:"packetSize"`
	HeaderSize int             `json:"headerSize"`
	DataSize   int             `json:"dataSize"`
	MTUPath    []int           `json:"mtuPath"`
	Timestamp  time.Time       `json:"timestamp"`
	Hops       []ExportedHop   `json:"hops"`
	Summary    ExportedSummary `json:"summary"`
}

// ExportedHop is the JSON representation of a single hop.
type ExportedHop struct {
	Hop       int                `json:"hop"`
	MTU       int                `json:"mtu"`
	Fragments []ExportedFragment `json:"fragments"`
}

// ExportedFragment is the JSON representation of a single fragment.
type ExportedFragment struct {
	Sequence      int    `json:"sequence"`
	FragmentID    uint16 `json:"fragmentId"`
	TotalSize     int    `json:"totalSize"`
	DataSize      int    `json:"dataSize"`
	OffsetBytes   int    `json:"offsetBytes"`
	OffsetUnits   int    `json:"offsetUnits"`
	MoreFragments bool   `json:"moreFragments"`
}

// ExportedSummary aggregates the end-of-run statistics.
type ExportedSummary struct {
	FinalFragments int `json:"finalFragments"`
	TotalHops      int `json:"totalHops"`
	HeaderOverhead int `json:"headerOverhead"`
}

// JSONExporter exports simulation reports to JSON format.
type JSONExporter struct {
	Pretty bool // Whether to pretty-print the JSON
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{
		Pretty: false,
	}
}

// Export writes the simulation report as JSON to the writer.
func (e *JSONExporter) Export(w io.Writer, rep *fragment.Report) error {
	exported := e.convert(rep)

	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(exported)
}

// convert transforms a Report to an ExportedReport.
func (e *JSONExporter) convert(rep *fragment.Report) *ExportedReport {
	exported := &ExportedReport{
		FragmentID: rep.FragmentID,
		PacketSize: rep.PacketSize,
		HeaderSize: rep.HeaderSize,
		DataSize:   rep.DataSize(),
		MTUPath:    rep.MTUPath,
		Timestamp:  rep.Timestamp,
		Hops:       make([]ExportedHop, 0, len(rep.Hops)),
		Summary: ExportedSummary{
			FinalFragments: rep.FinalFragmentCount(),
			TotalHops:      rep.TotalHops(),
			HeaderOverhead: rep.TotalHeaderOverhead(),
		},
	}

	for _, hop := range rep.Hops {
		exported.Hops = append(exported.Hops, e.convertHop(hop, rep.HeaderSize))
	}

	return exported
}

// convertHop transforms a HopResult to an ExportedHop.
func (e *JSONExporter) convertHop(hop fragment.HopResult, headerSize int) ExportedHop {
	exported := ExportedHop{
		Hop:       hop.HopNumber,
		MTU:       hop.MTU,
		Fragments: make([]ExportedFragment, 0, len(hop.Fragments)),
	}

	for i, f := range hop.Fragments {
		exported.Fragments = append(exported.Fragments, ExportedFragment{
			Sequence:      f.Sequence,
			FragmentID:    f.ID,
			TotalSize:     f.TotalSize(headerSize),
			DataSize:      f.DataLength,
			OffsetBytes:   f.OffsetBytes(),
			OffsetUnits:   f.OffsetUnits,
			MoreFragments: hop.MoreFragments(i),
		})
	}

	return exported
}
