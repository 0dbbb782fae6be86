package smpp

import (
	"errors"
	"sync"
	"time"

	"github.com/iainh/smpp/pdu"
)

// errOrphanResponse marks a deliver() call whose sequence_number has no
// registered waiter: either it never existed, or its timeout already
// fired and removed it.
var errOrphanResponse = errors.New("smpp: orphan response")

// pendingResult is delivered to a SendRequest caller exactly once: either
// a matched response body/status, or a terminal error (Timeout,
// SessionClosed).
type pendingResult struct {
	body   pdu.Body
	status pdu.CommandStatus
	err    error
}

// pendingRequest is one in-flight correlated request (spec §3
// "PendingRequest" entity).
type pendingRequest struct {
	commandID pdu.CommandID
	resultCh  chan pendingResult
	timer     *time.Timer
}

// pendingTable is a Session's sequence_number -> pendingRequest
// correlation table, guarded by its own mutex per spec §5 ("a single
// per-session mutex held only briefly around pending-table mutations").
type pendingTable struct {
	mu      sync.Mutex
	entries map[uint32]*pendingRequest
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[uint32]*pendingRequest)}
}

// register inserts a PendingRequest under seq before the frame carrying
// it is flushed, and arms its deadline timer.
func (t *pendingTable) register(seq uint32, commandID pdu.CommandID, timeout time.Duration) *pendingRequest {
	pr := &pendingRequest{commandID: commandID, resultCh: make(chan pendingResult, 1)}
	t.mu.Lock()
	t.entries[seq] = pr
	t.mu.Unlock()
	pr.timer = time.AfterFunc(timeout, func() { t.timeoutFire(seq) })
	return pr
}

func (t *pendingTable) remove(seq uint32) *pendingRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	pr, ok := t.entries[seq]
	if !ok {
		return nil
	}
	delete(t.entries, seq)
	return pr
}

// timeoutFire is the deadline timer's callback; it is a no-op if the
// response arrived and was already removed.
func (t *pendingTable) timeoutFire(seq uint32) {
	pr := t.remove(seq)
	if pr == nil {
		return
	}
	pr.resultCh <- pendingResult{err: ErrTimeout}
}

// deliver completes the PendingRequest registered under seq, if any,
// provided body's command_id actually pairs with the request
// (invariant 4, spec §3/§8 "command-id pairing"). Returns
// errOrphanResponse when no waiter was registered under seq, or a
// *pdu.ResponseMismatch when one was but the command_id doesn't pair —
// in the mismatch case the waiter is left pending (re-inserted) rather
// than completed with the wrong body, since a later frame (or the
// timeout) may still be the real response.
func (t *pendingTable) deliver(seq uint32, body pdu.Body, status pdu.CommandStatus) error {
	pr := t.remove(seq)
	if pr == nil {
		return errOrphanResponse
	}
	if got := body.CommandID().RequestID(); got != pr.commandID {
		t.mu.Lock()
		t.entries[seq] = pr
		t.mu.Unlock()
		return &pdu.ResponseMismatch{Request: pr.commandID, Response: body.CommandID()}
	}
	pr.timer.Stop()
	pr.resultCh <- pendingResult{body: body, status: status}
	return nil
}

// cancel removes seq and fails its waiter without waiting for a timeout,
// e.g. when the caller's context is cancelled.
func (t *pendingTable) cancel(seq uint32, err error) {
	pr := t.remove(seq)
	if pr == nil {
		return
	}
	pr.timer.Stop()
	pr.resultCh <- pendingResult{err: err}
}

// failAll drains the table and fails every outstanding waiter with err;
// called once when the session transport is lost (spec §5).
func (t *pendingTable) failAll(err error) {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[uint32]*pendingRequest)
	t.mu.Unlock()

	for _, pr := range entries {
		pr.timer.Stop()
		pr.resultCh <- pendingResult{err: err}
	}
}
