package pdu

import "encoding/binary"

// Tag identifies an optional TLV parameter.
type Tag uint16

// Optional parameter tags referenced by the PDUs in this package. The
// full space is much larger; vendor-specific tags (0x1400-0x3FFF) are
// intentionally absent here and pass through as opaque TLVs per spec §9.
const (
	TagScInterfaceVersion       Tag = 0x0210
	TagMsAvailabilityStatus     Tag = 0x0422
	TagMessagePayload           Tag = 0x0424
	TagCongestionState          Tag = 0x0428
	TagBroadcastContentType     Tag = 0x0601
	TagBroadcastFrequencyInterval Tag = 0x0604
	TagBroadcastRepNum          Tag = 0x0605
	TagBroadcastAreaIdentifier  Tag = 0x0606
)

// repeatableTags marks the tags the spec permits to appear more than
// once in a single PDU's TLV list (spec §3 invariant 5).
var repeatableTags = map[Tag]bool{
	TagBroadcastAreaIdentifier: true,
}

// TLV is a single Tag-Length-Value optional parameter. It is immutable
// and owned by the PDU that contains it; its Value borrows from the
// decode buffer.
type TLV struct {
	Tag   Tag
	Value []byte
}

// WireLen returns the encoded size of the TLV: 2+2+len(Value).
func (t TLV) WireLen() int { return 4 + len(t.Value) }

// ReadTLVList repeatedly decodes tag/length/value triples until the
// reader is exhausted. Duplicate non-repeatable tags are rejected: the
// first occurrence wins per spec §3 invariant 5.
func ReadTLVList(r *Reader) ([]TLV, error) {
	var out []TLV
	seen := make(map[Tag]bool)
	for r.Remaining() > 0 {
		if r.Remaining() < 4 {
			return nil, &Truncated{Field: "tlv_header"}
		}
		tag := Tag(binary.BigEndian.Uint16(r.buf[r.pos:]))
		length := binary.BigEndian.Uint16(r.buf[r.pos+2:])
		r.pos += 4
		if r.Remaining() < int(length) {
			return nil, &Truncated{Field: "tlv_value"}
		}
		value := r.buf[r.pos : r.pos+int(length)]
		r.pos += int(length)

		if seen[tag] && !repeatableTags[tag] {
			continue // first occurrence wins
		}
		seen[tag] = true
		out = append(out, TLV{Tag: tag, Value: value})
	}
	return out, nil
}

// TLVListWireLen sums the encoded size of a TLV list.
func TLVListWireLen(tlvs []TLV) int {
	n := 0
	for _, t := range tlvs {
		n += t.WireLen()
	}
	return n
}

// WriteTLVList appends each TLV's tag, length, and value to w.
func WriteTLVList(w *Writer, tlvs []TLV) {
	for _, t := range tlvs {
		w.PutU16(uint16(t.Tag))
		w.PutU16(uint16(len(t.Value)))
		w.PutOctetString(t.Value)
	}
}

// FindTLV returns the first TLV with the given tag, if present.
func FindTLV(tlvs []TLV, tag Tag) (TLV, bool) {
	for _, t := range tlvs {
		if t.Tag == tag {
			return t, true
		}
	}
	return TLV{}, false
}

// FindAllTLV returns every TLV with the given tag, preserving order —
// used for repeatable tags such as broadcast_area_identifier.
func FindAllTLV(tlvs []TLV, tag Tag) []TLV {
	var out []TLV
	for _, t := range tlvs {
		if t.Tag == tag {
			out = append(out, t)
		}
	}
	return out
}
