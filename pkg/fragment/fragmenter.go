package fragment

import "fmt"

// maxFragmentData returns the largest payload one fragment can carry at the
// given MTU, rounded down to a multiple of 8. Every fragment except the last
// must carry a multiple of 8 bytes so the offset field can address the next
// fragment exactly.
func maxFragmentData(mtu, headerSize int) int {
	return (mtu - headerSize) / OffsetUnit * OffsetUnit
}

// FragmentPayload splits a payload of dataSize bytes, starting at
// startOffset bytes within the original packet, into fragments that fit the
// given MTU. The returned fragments tile [startOffset, startOffset+dataSize)
// with no gaps or overlaps; only the last may have a length that is not a
// multiple of 8. Sequence numbers start at 1 and are relative to this call;
// Simulate renumbers them per hop.
//
// FragmentPayload does not apply Limits: callers are expected to have
// validated their inputs. It still guards the 13-bit offset field and
// returns OffsetOverflowError when a chunk's offset cannot be encoded.
func FragmentPayload(dataSize, startOffset, headerSize, mtu int, id uint16) ([]Fragment, error) {
	if dataSize <= 0 {
		return nil, ErrNoData
	}
	if mtu < headerSize+OffsetUnit {
		return nil, fmt.Errorf("MTU %d too small for header %d + minimum data (%d)", mtu, headerSize, OffsetUnit)
	}

	maxData := maxFragmentData(mtu, headerSize)

	var fragments []Fragment
	offset := startOffset
	remaining := dataSize
	seq := 1

	for remaining > 0 {
		chunk := remaining
		if chunk > maxData {
			// Not the final chunk: maxData is already 8-byte aligned.
			chunk = maxData
		}

		units := offset / OffsetUnit
		if units > MaxOffsetUnits {
			return nil, &OffsetOverflowError{OffsetUnits: units}
		}

		fragments = append(fragments, Fragment{
			ID:          id,
			DataLength:  chunk,
			OffsetUnits: units,
			Sequence:    seq,
		})

		offset += chunk
		remaining -= chunk
		seq++
	}

	return fragments, nil
}
