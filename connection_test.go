package smpp

import (
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/iainh/smpp/internal/logging"
	"github.com/iainh/smpp/pdu"
	"github.com/stretchr/testify/require"
)

// testSession wires up a Session directly over a net.Pipe, skipping
// ConnectAndBind's dial step so tests can drive the peer side by hand.
func testSession(t *testing.T, cfg Config) (*Session, net.Conn) {
	t.Helper()
	clientConn, peerConn := net.Pipe()

	cfg = cfg.withDefaults()
	logger := logging.New("error")

	s := &Session{
		id:       "test-session",
		logger:   logger.With("session", "test-session"),
		cfg:      cfg,
		fw:       pdu.NewFrameWriter(clientConn),
		conn:     clientConn,
		role:     cfg.BindRole,
		state:    StateOpen,
		pending:  newPendingTable(),
		flow:     newFlowControl(cfg.MaxRatePerSecond),
		incoming: make(chan *InboundRequest, 16),
		closed:   make(chan struct{}),
	}

	s.wg.Add(1)
	go s.readLoop()

	t.Cleanup(func() {
		s.fail(ErrSessionClosed)
	})

	return s, peerConn
}

// peerReadFrame is a small helper so scenario tests read what the
// session under test just wrote without re-deriving the frame codec.
func peerReadFrame(t *testing.T, peer net.Conn) *pdu.Frame {
	t.Helper()
	peer.SetReadDeadline(time.Now().Add(5 * time.Second))
	frame, err := pdu.ReadFrame(peer, pdu.DefaultMaxFrameSize)
	require.NoError(t, err)
	return frame
}

func peerWriteFrame(t *testing.T, peer net.Conn, status pdu.CommandStatus, seq uint32, body pdu.Body) {
	t.Helper()
	raw, err := pdu.EncodeFrame(status, seq, body)
	require.NoError(t, err)
	_, err = peer.Write(raw)
	require.NoError(t, err)
}

// TestBindAndUnbind drives scenario 1: a transceiver bind succeeds, the
// negotiated effective version is recorded, and UnbindAndClose is a
// clean, idempotent round trip.
func TestBindAndUnbind(t *testing.T) {
	cfg := Config{BindRole: RoleTransceiver, InterfaceVersion: pdu.Version50}
	s, peer := testSession(t, cfg)
	defer peer.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.bind(context.Background())
	}()

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdBindTransceiver, frame.Header.CommandID)

	peerWriteFrame(t, peer, pdu.StatusOK, frame.Header.SequenceNumber, pdu.BindTransceiverResp{})
	require.NoError(t, <-done)
	require.Equal(t, StateBoundTRX, s.State())
	require.Equal(t, pdu.Version50, s.EffectiveVersion())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.UnbindAndClose(ctx)
	}()

	unbindFrame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdUnbind, unbindFrame.Header.CommandID)
	peerWriteFrame(t, peer, pdu.StatusOK, unbindFrame.Header.SequenceNumber, pdu.UnbindResp{})

	require.Eventually(t, func() bool { return s.State() == StateClosed }, 2*time.Second, 10*time.Millisecond)

	// A second UnbindAndClose must be a no-op: no panic, no duplicate wire
	// traffic, same terminal state.
	require.NoError(t, s.UnbindAndClose(context.Background()))
	require.Equal(t, StateClosed, s.State())
}

// TestSendRequest_SubmitSmRoundTrip drives scenario 2: a bound session
// submits a message and receives a correlated response.
func TestSendRequest_SubmitSmRoundTrip(t *testing.T) {
	cfg := Config{BindRole: RoleTransmitter, MaxRatePerSecond: -1}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTX)

	result := make(chan struct {
		body pdu.Body
		err  error
	}, 1)
	go func() {
		body, err := s.SendRequest(context.Background(), pdu.SubmitSm{})
		result <- struct {
			body pdu.Body
			err  error
		}{body, err}
	}()

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdSubmitSm, frame.Header.CommandID)
	peerWriteFrame(t, peer, pdu.StatusOK, frame.Header.SequenceNumber, pdu.SubmitSmResp{})

	r := <-result
	require.NoError(t, r.err)
	resp, ok := r.body.(pdu.SubmitSmResp)
	require.True(t, ok)
	_ = resp
}

// TestSendRequest_AppError drives the nonzero-command_status path: a
// peer-rejected submit_sm surfaces as *AppError, not a generic error.
func TestSendRequest_AppError(t *testing.T) {
	cfg := Config{BindRole: RoleTransmitter, MaxRatePerSecond: -1}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTX)

	result := make(chan error, 1)
	go func() {
		_, err := s.SendRequest(context.Background(), pdu.SubmitSm{})
		result <- err
	}()

	frame := peerReadFrame(t, peer)
	peerWriteFrame(t, peer, pdu.StatusMsgQFull, frame.Header.SequenceNumber, pdu.SubmitSmResp{})

	err := <-result
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, pdu.StatusMsgQFull, appErr.Status)
}

// TestSendRequest_Timeout drives scenario 5: no response arrives within
// ResponseTimeout, so the caller sees ErrTimeout.
func TestSendRequest_Timeout(t *testing.T) {
	cfg := Config{BindRole: RoleTransmitter, MaxRatePerSecond: -1, ResponseTimeout: 50 * time.Millisecond}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTX)

	// net.Pipe is unbuffered: the peer must read the submit_sm for the
	// write to complete, then it never answers.
	go func() { _, _ = pdu.ReadFrame(peer, pdu.DefaultMaxFrameSize) }()

	_, err := s.SendRequest(context.Background(), pdu.SubmitSm{})
	require.ErrorIs(t, err, ErrTimeout)
}

// TestDispatch_IllegalInboundRequestSendsGenericNack checks the state
// legality rule: a request not legal in the session's current state is
// answered generic_nack(ESME_RINVBNDSTS) rather than queued.
func TestDispatch_IllegalInboundRequestSendsGenericNack(t *testing.T) {
	cfg := Config{BindRole: RoleTransmitter}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTX) // deliver_sm is not legal for a TX-only session

	peerWriteFrame(t, peer, pdu.StatusOK, 9, pdu.DeliverSm{})

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdGenericNack, frame.Header.CommandID)
	require.Equal(t, pdu.StatusInvBndSts, frame.Header.CommandStatus)
}

// TestReadLoop_UnknownCommandIDNacksAndSurvives drives scenario 4: a
// frame with an unrecognized command_id gets generic_nack(ESME_RINVCMDID)
// carrying the offending sequence_number, and the session keeps reading
// rather than tearing down (spec §4.3 step 4, §7 item 3).
func TestReadLoop_UnknownCommandIDNacksAndSurvives(t *testing.T) {
	cfg := Config{BindRole: RoleTransceiver}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTRX)

	raw := make([]byte, 16)
	binary.BigEndian.PutUint32(raw[0:4], 16)
	binary.BigEndian.PutUint32(raw[4:8], 0xDEADBEEF)
	binary.BigEndian.PutUint32(raw[8:12], uint32(pdu.StatusOK))
	binary.BigEndian.PutUint32(raw[12:16], 7)
	_, err := peer.Write(raw)
	require.NoError(t, err)

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdGenericNack, frame.Header.CommandID)
	require.Equal(t, pdu.StatusInvCmdID, frame.Header.CommandStatus)
	require.Equal(t, uint32(7), frame.Header.SequenceNumber)

	// The loop must still be alive: a well-formed frame right after gets
	// its own normal response.
	peerWriteFrame(t, peer, pdu.StatusOK, 8, pdu.EnquireLink{})
	frame = peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdEnquireLinkResp, frame.Header.CommandID)
	require.Equal(t, uint32(8), frame.Header.SequenceNumber)
}

// TestDispatch_EnquireLinkAutoResponds exercises the default responder:
// an inbound enquire_link gets an immediate enquire_link_resp without
// the application ever seeing it on NextIncoming.
func TestDispatch_EnquireLinkAutoResponds(t *testing.T) {
	cfg := Config{BindRole: RoleTransceiver}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundTRX)

	peerWriteFrame(t, peer, pdu.StatusOK, 11, pdu.EnquireLink{})

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdEnquireLinkResp, frame.Header.CommandID)
	require.Equal(t, uint32(11), frame.Header.SequenceNumber)
}

// TestDispatch_DeliverSmQueuedForApplication checks that a legal inbound
// request reaches NextIncoming rather than being auto-answered, and that
// Respond answers it correctly.
func TestDispatch_DeliverSmQueuedForApplication(t *testing.T) {
	cfg := Config{BindRole: RoleReceiver}
	s, peer := testSession(t, cfg)
	defer peer.Close()
	s.setState(StateBoundRX)

	peerWriteFrame(t, peer, pdu.StatusOK, 21, pdu.DeliverSm{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := s.NextIncoming(ctx)
	require.NoError(t, err)
	require.Equal(t, pdu.CmdDeliverSm, req.CommandID)

	require.NoError(t, s.Respond(req.SequenceNumber, pdu.DeliverSmResp{}))

	frame := peerReadFrame(t, peer)
	require.Equal(t, pdu.CmdDeliverSmResp, frame.Header.CommandID)
	require.Equal(t, uint32(21), frame.Header.SequenceNumber)
}

// TestNextSequence_WrapsAt0x7FFFFFFF checks the sequence_number wraparound
// invariant (spec §4.4).
func TestNextSequence_WrapsAt0x7FFFFFFF(t *testing.T) {
	cfg := Config{BindRole: RoleTransmitter}
	s, peer := testSession(t, cfg)
	defer peer.Close()

	s.seq = 0x7FFFFFFF
	if got := s.nextSequence(); got != 1 {
		t.Errorf("nextSequence() after wrap = %d, want 1", got)
	}
}
