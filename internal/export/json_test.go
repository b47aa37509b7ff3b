package export

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONExporter_Export_ProducesValidJSON(t *testing.T) {
	rep := createTestReport()
	exporter := NewJSONExporter()

	var buf bytes.Buffer
	err := exporter.Export(&buf, rep)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ExportedReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.FragmentID != 12345 {
		t.Errorf("expected fragment ID 12345, got %d", decoded.FragmentID)
	}
	if len(decoded.Hops) != 2 {
		t.Fatalf("expected 2 hops, got %d", len(decoded.Hops))
	}
}

func TestJSONExporter_Export_ComputesDerivedFields(t *testing.T) {
	rep := createTestReport()
	exporter := NewJSONExporter()

	var buf bytes.Buffer
	_ = exporter.Export(&buf, rep)

	var decoded ExportedReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.DataSize != 1480 {
		t.Errorf("expected data size 1480, got %d", decoded.DataSize)
	}

	hop2 := decoded.Hops[1]
	if hop2.Fragments[0].TotalSize != 572 {
		t.Errorf("expected total size 572, got %d", hop2.Fragments[0].TotalSize)
	}
	if hop2.Fragments[1].OffsetBytes != 552 {
		t.Errorf("expected offset 552 bytes, got %d", hop2.Fragments[1].OffsetBytes)
	}
	if !hop2.Fragments[0].MoreFragments {
		t.Error("expected MF set on first fragment")
	}
	if hop2.Fragments[2].MoreFragments {
		t.Error("expected MF clear on last fragment")
	}
}

func TestJSONExporter_Export_IncludesSummary(t *testing.T) {
	rep := createTestReport()
	exporter := NewJSONExporter()

	var buf bytes.Buffer
	_ = exporter.Export(&buf, rep)

	var decoded ExportedReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Summary.FinalFragments != 3 {
		t.Errorf("expected 3 final fragments, got %d", decoded.Summary.FinalFragments)
	}
	if decoded.Summary.TotalHops != 2 {
		t.Errorf("expected 2 hops, got %d", decoded.Summary.TotalHops)
	}
	if decoded.Summary.HeaderOverhead != 80 {
		t.Errorf("expected 80 bytes overhead, got %d", decoded.Summary.HeaderOverhead)
	}
}

func TestJSONExporter_Export_PrettyPrint(t *testing.T) {
	rep := createTestReport()
	exporter := NewJSONExporter()
	exporter.Pretty = true

	var buf bytes.Buffer
	_ = exporter.Export(&buf, rep)

	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Error("expected indented output in pretty mode")
	}
}
