package pdu

import "testing"

// FuzzDecodeFrame mirrors the teacher's FuzzDecipherPDU: decoding must
// never panic on arbitrary input, however malformed.
func FuzzDecodeFrame(f *testing.F) {
	validEnquireLink, _ := EncodeFrame(StatusOK, 1, EnquireLink{})
	f.Add(validEnquireLink)

	validSubmit, _ := EncodeFrame(StatusOK, 1, SubmitSm{smBody{
		Source:       AddressField{Address: "1"},
		Dest:         AddressField{Address: "2"},
		ShortMessage: ShortMessage{Bytes: []byte("hi")},
	}})
	f.Add(validSubmit)

	f.Add([]byte{0x00, 0x00, 0x00, 0x10}) // short header
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("DecodeFrame panicked: %v", r)
			}
		}()
		_, _ = DecodeFrame(data)
	})
}
