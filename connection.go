package smpp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/iainh/smpp/pdu"
	"go.uber.org/zap"
)

// ConnectAndBind dials cfg.Address, sends the bind_* request for
// cfg.BindRole, and — on a successful bind_*_resp — starts the
// connection runtime (reader, enquire-link timer) and returns a bound
// Session. The dial itself retries with exponential backoff so a
// transient SMSC restart doesn't fail the caller outright.
func ConnectAndBind(ctx context.Context, cfg Config, logger *zap.SugaredLogger) (*Session, error) {
	cfg = cfg.withDefaults()
	if cfg.Address == "" {
		return nil, fmt.Errorf("smpp: Config.Address is required")
	}
	if cfg.MaxRatePerSecond < -1 {
		return nil, fmt.Errorf("smpp: Config.MaxRatePerSecond must be >= -1")
	}

	id := uuid.New().String()
	sessLogger := logger.With("session", id)

	var conn net.Conn
	dial := func() error {
		var err error
		d := net.Dialer{}
		conn, err = d.DialContext(ctx, "tcp", cfg.Address)
		return err
	}
	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	notify := func(err error, wait time.Duration) {
		sessLogger.Warnf("dial %s failed, retrying in %s: %v", cfg.Address, wait, err)
	}
	if err := backoff.RetryNotify(dial, bo, notify); err != nil {
		return nil, fmt.Errorf("smpp: dial %s: %w", cfg.Address, err)
	}

	s := &Session{
		id:       id,
		logger:   sessLogger,
		cfg:      cfg,
		fw:       pdu.NewFrameWriter(conn),
		conn:     conn,
		role:     cfg.BindRole,
		state:    StateOpen,
		pending:  newPendingTable(),
		flow:     newFlowControl(cfg.MaxRatePerSecond),
		incoming: make(chan *InboundRequest, 16),
		closed:   make(chan struct{}),
	}

	s.wg.Add(1)
	go s.readLoop()

	if err := s.bind(ctx); err != nil {
		s.fail(err)
		return nil, err
	}

	s.wg.Add(1)
	go s.enquireLinkLoop()

	sessLogger.Infof("session bound: role=%s effective_version=0x%02x", s.role, s.effectiveVersion)
	return s, nil
}

// bind performs the bind request/response round-trip and, on success,
// advances state and records the negotiated effective version (spec
// §4.4, §4.7).
func (s *Session) bind(ctx context.Context) error {
	req := buildBindRequest(s.cfg)
	body, err := s.roundTrip(ctx, req.CommandID(), req)
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return &BindFailure{Status: appErr.Status}
		}
		return err
	}

	systemID, peerVersion, peerSent := bindRespFields(body)
	s.logger.Debugf("bind_resp system_id=%q", systemID)

	s.mu.Lock()
	s.effectiveVersion = pdu.EffectiveVersion(s.cfg.InterfaceVersion, peerVersion, peerSent)
	s.state = s.role.boundState()
	s.mu.Unlock()
	return nil
}

// buildBindRequest constructs the bind_* request for cfg.BindRole. Field
// names are promoted from pdu's unexported bindBody embed, which is
// still settable across packages because promotion exposes exported
// names regardless of the embedding type's own visibility.
func buildBindRequest(cfg Config) pdu.Body {
	switch cfg.BindRole {
	case RoleReceiver:
		var b pdu.BindReceiver
		fillBindBody(&b.SystemID, &b.Password, &b.SystemType, &b.InterfaceVersion, &b.AddrTON, &b.AddrNPI, &b.AddressRange, cfg)
		return b
	case RoleTransceiver:
		var b pdu.BindTransceiver
		fillBindBody(&b.SystemID, &b.Password, &b.SystemType, &b.InterfaceVersion, &b.AddrTON, &b.AddrNPI, &b.AddressRange, cfg)
		return b
	default:
		var b pdu.BindTransmitter
		fillBindBody(&b.SystemID, &b.Password, &b.SystemType, &b.InterfaceVersion, &b.AddrTON, &b.AddrNPI, &b.AddressRange, cfg)
		return b
	}
}

func fillBindBody(systemID, password, systemType *string, ifaceVersion, ton, npi *uint8, addrRange *string, cfg Config) {
	*systemID = cfg.SystemID
	*password = cfg.Password
	*systemType = cfg.SystemType
	*ifaceVersion = cfg.InterfaceVersion
	*ton = 0
	*npi = 0
	*addrRange = ""
}

// bindRespFields extracts system_id and the optional sc_interface_version
// TLV from whichever bind_*_resp shape body actually is.
func bindRespFields(body pdu.Body) (systemID string, peerVersion uint8, peerSent bool) {
	switch r := body.(type) {
	case pdu.BindTransmitterResp:
		systemID = r.SystemID
		peerVersion, peerSent = r.ScInterfaceVersion()
	case pdu.BindReceiverResp:
		systemID = r.SystemID
		peerVersion, peerSent = r.ScInterfaceVersion()
	case pdu.BindTransceiverResp:
		systemID = r.SystemID
		peerVersion, peerSent = r.ScInterfaceVersion()
	}
	return
}

// readLoop owns the transport's read side for the session's lifetime: it
// frames inbound bytes via C3, dispatches responses to their waiters,
// and routes unsolicited/inbound requests to the incoming queue or the
// default auto-responder (spec §4.5). A framing-level failure (short
// header, an out-of-range or oversized command_length) leaves the
// stream's frame boundary unrecoverable and is fatal; a frame that
// reads in full but fails to decode (unknown command_id, malformed
// body) is answered generic_nack and the loop continues, per spec §4.3
// step 4 and §7 item 3.
func (s *Session) readLoop() {
	defer s.wg.Done()
	for {
		raw, err := pdu.ReadRawFrame(s.conn, s.cfg.MaxFrameSize)
		if err != nil {
			select {
			case <-s.closed:
				return
			default:
			}
			s.handleFrameError(raw, err)
			return
		}

		frame, err := pdu.DecodeFrame(raw)
		if err != nil {
			s.logger.Warnf("frame decode error: %v", err)
			s.nackHeader(raw, err)
			continue
		}
		s.dispatch(frame)
	}
}

// handleFrameError answers a framing-level failure with generic_nack
// when the header was read in full (ReadRawFrame returns it alongside
// InvalidFrameLength/FrameTooLarge), then tears the session down: once
// command_length itself can't be trusted, the connection can't locate
// the next frame either. A clean disconnect (io.EOF) is logged at info
// without a nack attempt; anything else at warn.
func (s *Session) handleFrameError(raw []byte, err error) {
	if errors.Is(err, io.EOF) {
		s.logger.Info("peer closed connection")
	} else {
		s.logger.Warnf("frame read error: %v", err)
	}
	s.nackHeader(raw, err)
	s.fail(err)
}

// nackHeader recovers command_id/sequence_number from a frame that was
// at least header-readable and answers generic_nack carrying the
// error's command_status, per spec §4.3. A no-op when raw doesn't even
// hold a full header (true transport failures: EOF, reset, timeout).
func (s *Session) nackHeader(raw []byte, err error) {
	_, seq, ok := pdu.PeekCommandID(raw)
	if !ok {
		return
	}
	status := pdu.StatusUnknownErr
	var decErr pdu.DecodeError
	if errors.As(err, &decErr) {
		status = decErr.Status()
	}
	_ = s.fw.WriteFrame(status, seq, pdu.GenericNack{})
}

// dispatch classifies a decoded frame and routes it: responses complete
// a PendingRequest, requests legal in the current state go to the
// incoming queue (or the default auto-responder for enquire_link and
// unhandled traffic), everything else is answered generic_nack.
func (s *Session) dispatch(frame *pdu.Frame) {
	hdr := frame.Header
	id := hdr.CommandID

	if id.IsResponse() {
		if resp, ok := frame.Body.(interface{ CongestionState() (uint8, bool) }); ok {
			if sample, present := resp.CongestionState(); present {
				s.flow.observeCongestion(sample)
			}
		}
		if err := s.pending.deliver(hdr.SequenceNumber, frame.Body, hdr.CommandStatus); err != nil {
			var mismatch *pdu.ResponseMismatch
			if errors.As(err, &mismatch) {
				s.logger.Warnf("response command_id mismatch seq=%d: %v", hdr.SequenceNumber, mismatch)
			} else {
				s.logger.Warnf("orphan response %s seq=%d", id, hdr.SequenceNumber)
			}
		}
		return
	}

	state := s.State()
	if !legalInboundRequest(state, id) {
		s.logger.Warnf("%s not legal in state %s, sending generic_nack", id, state)
		_ = s.fw.WriteFrame(pdu.StatusInvBndSts, hdr.SequenceNumber, pdu.GenericNack{})
		return
	}

	switch id {
	case pdu.CmdEnquireLink:
		_ = s.fw.WriteFrame(pdu.StatusOK, hdr.SequenceNumber, pdu.EnquireLinkResp{})
		return
	case pdu.CmdUnbind:
		_ = s.fw.WriteFrame(pdu.StatusOK, hdr.SequenceNumber, pdu.UnbindResp{})
		s.setState(StateUnbound)
		s.fail(ErrSessionClosed)
		return
	}

	select {
	case s.incoming <- &InboundRequest{CommandID: id, SequenceNumber: hdr.SequenceNumber, Body: frame.Body}:
	case <-s.closed:
	default:
		s.logger.Warnf("%s dropped: inbound queue full", id)
		_ = s.fw.WriteFrame(pdu.StatusRXTAppn, hdr.SequenceNumber, pdu.GenericNack{})
	}
}

// enquireLinkLoop sends an unsolicited enquire_link on every tick of a
// fixed EnquireLinkInterval ticker and declares the session dead if no
// response arrives within ResponseTimeout (spec §4.5). The ticker is not
// reset by other outbound traffic, so probes are sent on schedule even
// while the connection is busy.
func (s *Session) enquireLinkLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.EnquireLinkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ResponseTimeout)
			_, err := s.roundTrip(ctx, pdu.CmdEnquireLink, pdu.EnquireLink{})
			cancel()
			if err != nil && !errors.Is(err, ErrSessionClosed) {
				s.logger.Warnf("enquire_link failed, closing session: %v", err)
				s.fail(fmt.Errorf("smpp: enquire_link liveness check failed: %w", err))
				return
			}
		}
	}
}
