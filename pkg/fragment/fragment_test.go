package fragment

import (
	"strings"
	"testing"
)

func TestFragment_OffsetBytes_ConvertsUnits(t *testing.T) {
	f := Fragment{OffsetUnits: 69}

	if f.OffsetBytes() != 552 {
		t.Errorf("expected 552 bytes, got %d", f.OffsetBytes())
	}
}

func TestFragment_TotalSize_AddsHeader(t *testing.T) {
	f := Fragment{DataLength: 552}

	if f.TotalSize(20) != 572 {
		t.Errorf("expected 572 bytes, got %d", f.TotalSize(20))
	}
}

func TestFragment_String_IncludesFields(t *testing.T) {
	f := Fragment{ID: 42, DataLength: 552, OffsetUnits: 69, Sequence: 2}

	s := f.String()

	for _, want := range []string{"seq=2", "id=42", "len=552", "off=69"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestHopResult_TotalData_SumsFragments(t *testing.T) {
	hop := HopResult{Fragments: []Fragment{
		{DataLength: 552},
		{DataLength: 552},
		{DataLength: 376},
	}}

	if hop.TotalData() != 1480 {
		t.Errorf("expected 1480, got %d", hop.TotalData())
	}
}

func TestHopResult_MoreFragments_SetForAllButLast(t *testing.T) {
	hop := HopResult{Fragments: make([]Fragment, 3)}

	if !hop.MoreFragments(0) || !hop.MoreFragments(1) {
		t.Error("expected MF set on non-final fragments")
	}
	if hop.MoreFragments(2) {
		t.Error("expected MF clear on the last fragment")
	}
}

func TestHopResult_HeaderOverhead_CountsHeaders(t *testing.T) {
	hop := HopResult{Fragments: make([]Fragment, 3)}

	if hop.HeaderOverhead(20) != 60 {
		t.Errorf("expected 60 bytes, got %d", hop.HeaderOverhead(20))
	}
}

func TestReport_FinalFragmentCount_EmptyReport(t *testing.T) {
	rep := &Report{}

	if rep.FinalFragmentCount() != 0 {
		t.Errorf("expected 0, got %d", rep.FinalFragmentCount())
	}
}
