package pdu

import (
	"bytes"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"
)

func TestReadFrame_RoundTrip(t *testing.T) {
	raw, err := EncodeFrame(StatusOK, 5, EnquireLink{})
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}

	frame, err := ReadFrame(bytes.NewReader(raw), DefaultMaxFrameSize)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if frame.Header.CommandID != CmdEnquireLink {
		t.Errorf("command_id = %v, want %v", frame.Header.CommandID, CmdEnquireLink)
	}
}

func TestReadFrame_PartialHeaderYieldsEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x00, 0x00}), DefaultMaxFrameSize)
	if !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadFrame() error = %v, want EOF-family", err)
	}
}

func TestReadFrame_ExceedsMaxFrameSize(t *testing.T) {
	raw, err := EncodeFrame(StatusOK, 1, SubmitSm{smBody{
		Source:       AddressField{Address: "1"},
		Dest:         AddressField{Address: "2"},
		ShortMessage: ShortMessage{Bytes: bytes.Repeat([]byte("x"), 200)},
	}})
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}

	_, err = ReadFrame(bytes.NewReader(raw), 32)
	var tooLarge *FrameTooLarge
	if !errors.As(err, &tooLarge) {
		t.Fatalf("ReadFrame() error = %v, want *FrameTooLarge", err)
	}
}

func TestReadFrame_BelowMinCommandLength(t *testing.T) {
	head := make([]byte, HeaderLength)
	Header{CommandLength: 4, CommandID: CmdEnquireLink, SequenceNumber: 1}.Encode(head)

	_, err := ReadFrame(bytes.NewReader(head), DefaultMaxFrameSize)
	var invalid *InvalidFrameLength
	if !errors.As(err, &invalid) {
		t.Fatalf("ReadFrame() error = %v, want *InvalidFrameLength", err)
	}
}

func TestFrameWriter_WriteFrame(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf)

	if err := fw.WriteFrame(StatusOK, 3, EnquireLink{}); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	frame, err := ReadFrame(&buf, DefaultMaxFrameSize)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if frame.Header.SequenceNumber != 3 {
		t.Errorf("sequence_number = %d, want 3", frame.Header.SequenceNumber)
	}
}

// TestFrameWriter_ConcurrentWritesDoNotInterleave pushes many concurrent
// writers at one FrameWriter and checks every frame the peer read back is
// intact: no byte from one frame leaks into another.
func TestFrameWriter_ConcurrentWritesDoNotInterleave(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	fw := NewFrameWriter(clientConn)

	const writers = 8
	const perWriter = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(seq uint32) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = fw.WriteFrame(StatusOK, seq, EnquireLink{})
			}
		}(uint32(i + 1))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	received := 0
	serverConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received < writers*perWriter {
		frame, err := ReadFrame(serverConn, DefaultMaxFrameSize)
		if err != nil {
			t.Fatalf("ReadFrame() error = %v after %d frames", err, received)
		}
		if frame.Header.CommandID != CmdEnquireLink {
			t.Fatalf("frame %d: command_id = %v, want enquire_link (interleaved write)", received, frame.Header.CommandID)
		}
		received++
	}
	<-done
}
