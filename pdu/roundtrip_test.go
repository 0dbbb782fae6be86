package pdu

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeFrameDecodeFrame_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body Body
	}{
		{"enquire_link", EnquireLink{}},
		{"unbind", Unbind{}},
		{"generic_nack", GenericNack{}},
		{"bind_transmitter", BindTransmitter{bindBody{
			SystemID: "smppclient", Password: "secret", SystemType: "VMS",
			InterfaceVersion: Version34, AddressRange: "",
		}}},
		{"bind_transceiver_resp", BindTransceiverResp{bindRespBody{
			SystemID: "smsc01",
			TLVs:     []TLV{{Tag: TagScInterfaceVersion, Value: []byte{Version50}}},
		}}},
		{"submit_sm", SubmitSm{smBody{
			ServiceType: "",
			Source:      AddressField{TON: 1, NPI: 1, Address: "12025550123"},
			Dest:        AddressField{TON: 1, NPI: 1, Address: "12025550199"},
			DataCoding:  0,
			ShortMessage: ShortMessage{Bytes: []byte("hello world")},
		}}},
		{"submit_sm_resp", SubmitSmResp{smRespBody{MessageID: "msg-1"}}},
		{"data_sm", DataSm{
			ServiceType: "",
			Source:      AddressField{Address: "1001"},
			Dest:        AddressField{Address: "1002"},
			TLVs:        []TLV{{Tag: TagMessagePayload, Value: []byte("payload")}},
		}},
		{"alert_notification", AlertNotification{
			Source: AddressField{TON: 1, NPI: 1, Address: "1234"},
			ESME:   AddressField{TON: 1, NPI: 1, Address: "5678"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeFrame(StatusOK, 7, tt.body)
			if err != nil {
				t.Fatalf("EncodeFrame() error = %v", err)
			}

			frame, err := DecodeFrame(raw)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if frame.Header.CommandID != tt.body.CommandID() {
				t.Errorf("command_id = %v, want %v", frame.Header.CommandID, tt.body.CommandID())
			}
			if frame.Header.SequenceNumber != 7 {
				t.Errorf("sequence_number = %d, want 7", frame.Header.SequenceNumber)
			}

			// Re-encoding the decoded body must reproduce the same bytes.
			raw2, err := EncodeFrame(StatusOK, 7, frame.Body)
			if err != nil {
				t.Fatalf("re-EncodeFrame() error = %v", err)
			}
			if !bytes.Equal(raw, raw2) {
				t.Errorf("round-trip mismatch:\n got %x\nwant %x", raw2, raw)
			}
		})
	}
}

// TestEnquireLinkWireBytes pins the exact on-wire encoding of an
// enquire_link request at sequence_number 42.
func TestEnquireLinkWireBytes(t *testing.T) {
	raw, err := EncodeFrame(StatusOK, 42, EnquireLink{})
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}
	want := []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x15,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x2A,
	}
	if !bytes.Equal(raw, want) {
		t.Errorf("enquire_link bytes = %x, want %x", raw, want)
	}
}

func TestDecodeFrame_UnknownCommandID(t *testing.T) {
	raw := make([]byte, HeaderLength)
	Header{CommandLength: HeaderLength, CommandID: 0x7FFFFFFF, SequenceNumber: 1}.Encode(raw)

	_, err := DecodeFrame(raw)
	var unknown *UnknownCommandID
	if !errors.As(err, &unknown) {
		t.Fatalf("DecodeFrame() error = %v, want *UnknownCommandID", err)
	}
}

func TestDecodeFrame_TrailingBytes(t *testing.T) {
	raw, err := EncodeFrame(StatusOK, 1, EnquireLink{})
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}
	raw = append(raw, 0x00) // extra byte beyond the declared body
	Header{CommandLength: uint32(len(raw)), CommandID: CmdEnquireLink, SequenceNumber: 1}.Encode(raw)

	_, err = DecodeFrame(raw)
	if _, ok := err.(*TrailingBytes); !ok {
		t.Fatalf("DecodeFrame() error = %v (%T), want *TrailingBytes", err, err)
	}
}

func TestCommandID_ResponsePairing(t *testing.T) {
	if CmdSubmitSm.ResponseID() != CmdSubmitSmResp {
		t.Errorf("CmdSubmitSm.ResponseID() = %v, want %v", CmdSubmitSm.ResponseID(), CmdSubmitSmResp)
	}
	if !CmdSubmitSmResp.IsResponse() {
		t.Error("CmdSubmitSmResp.IsResponse() = false, want true")
	}
	if CmdSubmitSmResp.RequestID() != CmdSubmitSm {
		t.Errorf("CmdSubmitSmResp.RequestID() = %v, want %v", CmdSubmitSmResp.RequestID(), CmdSubmitSm)
	}
	if CmdSubmitSm.IsResponse() {
		t.Error("CmdSubmitSm.IsResponse() = true, want false")
	}
}

func TestTLV_DuplicateNonRepeatableTagFirstWins(t *testing.T) {
	w := NewWriter(make([]byte, 64))
	WriteTLVList(w, []TLV{
		{Tag: TagScInterfaceVersion, Value: []byte{Version34}},
		{Tag: TagScInterfaceVersion, Value: []byte{Version50}},
	})
	r := NewReader(w.Bytes())
	tlvs, err := ReadTLVList(r)
	if err != nil {
		t.Fatalf("ReadTLVList() error = %v", err)
	}
	if len(tlvs) != 1 {
		t.Fatalf("len(tlvs) = %d, want 1", len(tlvs))
	}
	if tlvs[0].Value[0] != Version34 {
		t.Errorf("first occurrence did not win: got %x, want %x", tlvs[0].Value[0], Version34)
	}
}

func TestTLV_RepeatableTagAllPreserved(t *testing.T) {
	w := NewWriter(make([]byte, 64))
	WriteTLVList(w, []TLV{
		{Tag: TagBroadcastAreaIdentifier, Value: []byte("area1")},
		{Tag: TagBroadcastAreaIdentifier, Value: []byte("area2")},
	})
	r := NewReader(w.Bytes())
	tlvs, err := ReadTLVList(r)
	if err != nil {
		t.Fatalf("ReadTLVList() error = %v", err)
	}
	all := FindAllTLV(tlvs, TagBroadcastAreaIdentifier)
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
}

func TestCOctetString_MaxLengthBoundary(t *testing.T) {
	// maxSystemIDLen is 16: a 15-char system_id (16 bytes incl. NUL) is
	// legal, a 16-char one overflows the NUL terminator.
	ok := string(bytes.Repeat([]byte("a"), maxSystemIDLen-1))
	if err := validateCOctetString("system_id", ok, maxSystemIDLen); err != nil {
		t.Errorf("validateCOctetString(%d chars) error = %v, want nil", len(ok), err)
	}

	tooLong := string(bytes.Repeat([]byte("a"), maxSystemIDLen))
	if err := validateCOctetString("system_id", tooLong, maxSystemIDLen); err == nil {
		t.Errorf("validateCOctetString(%d chars) error = nil, want error", len(tooLong))
	}
}

func TestSubmitMulti_DestinationCountBoundary(t *testing.T) {
	for _, n := range []int{1, 254} {
		dests := make([]DestAddress, n)
		for i := range dests {
			dests[i] = DestAddress{Flag: 1, SME: AddressField{TON: 1, NPI: 1, Address: "1000"}}
		}
		body := SubmitMulti{
			Source:       AddressField{Address: "1"},
			Dests:        dests,
			ShortMessage: ShortMessage{Bytes: []byte("x")},
		}
		raw, err := EncodeFrame(StatusOK, 1, body)
		if err != nil {
			t.Fatalf("n=%d: EncodeFrame() error = %v", n, err)
		}
		frame, err := DecodeFrame(raw)
		if err != nil {
			t.Fatalf("n=%d: DecodeFrame() error = %v", n, err)
		}
		got := frame.Body.(SubmitMulti)
		if len(got.Dests) != n {
			t.Errorf("n=%d: len(Dests) = %d", n, len(got.Dests))
		}
	}
}
