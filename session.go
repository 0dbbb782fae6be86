package smpp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/iainh/smpp/pdu"
	"go.uber.org/zap"
)

// InboundRequest is an unsolicited or correlated-but-unanswered request
// delivered by NextIncoming: deliver_sm, data_sm, or alert_notification.
// A peer enquire_link or unbind never appears here; the runtime answers
// those itself.
type InboundRequest struct {
	CommandID      pdu.CommandID
	SequenceNumber uint32
	Body           pdu.Body
}

// Session is a bound (or binding) SMPP connection: the state machine
// (C4) plus the correlation table and flow control that the connection
// runtime (C5) drives. Callers obtain one from ConnectAndBind and talk
// to it exclusively through SendRequest/NextIncoming/Respond/
// UnbindAndClose; the transport itself is never exposed.
type Session struct {
	id     string
	logger *zap.SugaredLogger
	cfg    Config
	fw     *pdu.FrameWriter
	conn   net.Conn

	mu               sync.Mutex
	state            State
	role             BindRole
	effectiveVersion uint8

	seq uint32

	pending *pendingTable
	flow    *flowControl

	incoming chan *InboundRequest
	closed   chan struct{}

	teardownOnce sync.Once
	closeOnce    sync.Once

	wg sync.WaitGroup
}

// ID returns the session's correlation id, stable across the session's
// lifetime independent of the underlying transport's remote address.
func (s *Session) ID() string { return s.id }

// State returns the session's current position in the bind lifecycle.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EffectiveVersion returns the negotiated interface_version (spec §4.7).
func (s *Session) EffectiveVersion() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveVersion
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// nextSequence allocates the next sequence_number, wrapping 0x7FFFFFFF
// back to 1 (spec §4.4).
func (s *Session) nextSequence() uint32 {
	for {
		old := atomic.LoadUint32(&s.seq)
		next := old + 1
		if next > 0x7FFFFFFF {
			next = 1
		}
		if atomic.CompareAndSwapUint32(&s.seq, old, next) {
			return next
		}
	}
}

// SendRequest assigns a sequence_number, registers a PendingRequest,
// flushes the frame, and blocks until the matching response arrives, ctx
// is done, or the session closes. A nonzero response command_status is
// returned as *AppError alongside the (possibly empty) response body.
func (s *Session) SendRequest(ctx context.Context, body pdu.Body) (pdu.Body, error) {
	s.mu.Lock()
	state, role, version := s.state, s.role, s.effectiveVersion
	s.mu.Unlock()

	id := body.CommandID()
	if !legalOutboundRequest(state, role, id) {
		return nil, &StateError{State: state, CommandID: id}
	}
	if isV5Only(id) && version < pdu.Version50 {
		return nil, &UnsupportedInVersion{CommandID: id, EffectiveVersion: version}
	}
	var priority uint8
	switch b := body.(type) {
	case pdu.SubmitSm:
		priority = b.PriorityFlag
	case pdu.SubmitMulti:
		priority = b.PriorityFlag
	case pdu.BroadcastSm:
		priority = b.PriorityFlag
	}
	if err := pdu.ValidatePriorityFlag(priority, version); err != nil {
		return nil, err
	}
	if isRateLimited(id) {
		if err := s.flow.acquire(ctx); err != nil {
			return nil, err
		}
	}

	return s.roundTrip(ctx, id, body)
}

// roundTrip is the shared send-then-wait machinery used by SendRequest
// and the unbind handshake, which bypasses the outbound legality table
// (unbind is legal from any bound state).
func (s *Session) roundTrip(ctx context.Context, id pdu.CommandID, body pdu.Body) (pdu.Body, error) {
	seq := s.nextSequence()
	pr := s.pending.register(seq, id, s.cfg.ResponseTimeout)

	if err := s.fw.WriteFrame(pdu.StatusOK, seq, body); err != nil {
		s.pending.cancel(seq, err)
		s.fail(err)
		return nil, err
	}

	select {
	case res := <-pr.resultCh:
		if res.err != nil {
			return nil, res.err
		}
		if res.status != pdu.StatusOK {
			if res.status == pdu.StatusThrottled {
				s.flow.observeThrottled()
			}
			return res.body, &AppError{CommandID: id, Status: res.status}
		}
		return res.body, nil
	case <-ctx.Done():
		s.pending.cancel(seq, ctx.Err())
		return nil, ctx.Err()
	case <-s.closed:
		return nil, ErrSessionClosed
	}
}

// NextIncoming blocks until an unsolicited or unanswered inbound request
// arrives, ctx is done, or the session closes.
func (s *Session) NextIncoming(ctx context.Context) (*InboundRequest, error) {
	select {
	case req, ok := <-s.incoming:
		if !ok {
			return nil, ErrSessionClosed
		}
		return req, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closed:
		return nil, ErrSessionClosed
	}
}

// Respond answers a correlated inbound request with status ESME_ROK.
// Use RespondStatus to answer with a nonzero command_status.
func (s *Session) Respond(seq uint32, body pdu.Body) error {
	return s.RespondStatus(seq, pdu.StatusOK, body)
}

// RespondStatus answers a correlated inbound request with an explicit
// command_status.
func (s *Session) RespondStatus(seq uint32, status pdu.CommandStatus, body pdu.Body) error {
	state := s.State()
	id := body.CommandID()
	if !legalResponseCommand(state, id) {
		return &StateError{State: state, CommandID: id}
	}
	return s.fw.WriteFrame(status, seq, body)
}

// UnbindAndClose sends unbind, waits up to ResponseTimeout for
// unbind_resp, then closes the transport regardless (spec §5 "Graceful
// shutdown"). Idempotent: a second call is a no-op that returns nil.
func (s *Session) UnbindAndClose(ctx context.Context) error {
	var sendErr error
	s.closeOnce.Do(func() {
		state := s.State()
		if state != StateOpen && state != StateClosed {
			s.setState(StateUnbound)
			_, sendErr = s.roundTrip(ctx, pdu.CmdUnbind, pdu.Unbind{})
		}
		s.fail(ErrSessionClosed)
	})
	return sendErr
}

// fail tears the session down exactly once: marks it CLOSED, closes the
// transport, fails every outstanding waiter, and lets the reader/writer
// goroutines observe s.closed and exit on their own.
func (s *Session) fail(err error) {
	s.teardownOnce.Do(func() {
		s.setState(StateClosed)
		close(s.closed)
		_ = s.conn.Close()
		s.pending.failAll(err)
		go func() {
			s.wg.Wait()
			close(s.incoming)
		}()
	})
}
