package smpp

import "github.com/iainh/smpp/pdu"

// State is a Session's position in the bind lifecycle (spec §4.4).
type State int

const (
	StateOpen State = iota
	StateBoundTX
	StateBoundRX
	StateBoundTRX
	StateUnbound
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateBoundTX:
		return "BOUND_TX"
	case StateBoundRX:
		return "BOUND_RX"
	case StateBoundTRX:
		return "BOUND_TRX"
	case StateUnbound:
		return "UNBOUND"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// BindRole is the role negotiated at bind time.
type BindRole int

const (
	RoleTransmitter BindRole = iota
	RoleReceiver
	RoleTransceiver
)

func (r BindRole) String() string {
	switch r {
	case RoleTransmitter:
		return "transmitter"
	case RoleReceiver:
		return "receiver"
	case RoleTransceiver:
		return "transceiver"
	default:
		return "unknown"
	}
}

// bindCommandID returns the bind_* command this role sends to open a
// session.
func (r BindRole) bindCommandID() pdu.CommandID {
	switch r {
	case RoleReceiver:
		return pdu.CmdBindReceiver
	case RoleTransceiver:
		return pdu.CmdBindTransceiver
	default:
		return pdu.CmdBindTransmitter
	}
}

// boundState returns the state a successful bind of this role enters.
func (r BindRole) boundState() State {
	switch r {
	case RoleReceiver:
		return StateBoundRX
	case RoleTransceiver:
		return StateBoundTRX
	default:
		return StateBoundTX
	}
}

// txOutbound is the set of request command_ids a transmitter-capable
// session (BOUND_TX, BOUND_TRX) may originate via SendRequest.
var txOutbound = map[pdu.CommandID]bool{
	pdu.CmdSubmitSm:    true,
	pdu.CmdSubmitMulti: true,
	pdu.CmdDataSm:      true,
	pdu.CmdQuerySm:     true,
	pdu.CmdCancelSm:    true,
	pdu.CmdReplaceSm:   true,
}

// rxOutbound is the set of response command_ids a receiver-capable
// session (BOUND_RX, BOUND_TRX) answers inbound traffic with; these are
// not sent via SendRequest but via Respond. legalResponseCommand lists
// the same two ids in its own switch and does not read this map.
var rxOutbound = map[pdu.CommandID]bool{
	pdu.CmdDeliverSmResp: true,
	pdu.CmdDataSmResp:    true,
}

// broadcastOutbound is the v5.0 broadcast family, permitted alongside
// txOutbound for a transmitter-capable session.
var broadcastOutbound = map[pdu.CommandID]bool{
	pdu.CmdBroadcastSm:       true,
	pdu.CmdQueryBroadcastSm:  true,
	pdu.CmdCancelBroadcastSm: true,
}

// legalOutboundRequest reports whether state/role permit originating a
// new correlated request of command_id id via SendRequest. enquire_link
// and unbind are always legal from any bound state; they are handled by
// dedicated methods rather than routed through this table.
func legalOutboundRequest(state State, role BindRole, id pdu.CommandID) bool {
	switch state {
	case StateBoundTX:
		return txOutbound[id] || broadcastOutbound[id]
	case StateBoundRX:
		return false
	case StateBoundTRX:
		return txOutbound[id] || broadcastOutbound[id]
	default:
		return false
	}
}

// legalInboundRequest reports whether state permits receiving an
// unsolicited request of command_id id from the peer (spec §4.4).
// enquire_link and unbind are answered by the runtime itself; the others
// arrive on the inbound queue for the application to answer via Respond.
func legalInboundRequest(state State, id pdu.CommandID) bool {
	switch id {
	case pdu.CmdEnquireLink, pdu.CmdUnbind:
		return state == StateBoundTX || state == StateBoundRX || state == StateBoundTRX
	case pdu.CmdAlertNotification:
		return state == StateBoundTX || state == StateBoundRX || state == StateBoundTRX
	case pdu.CmdDeliverSm, pdu.CmdDataSm:
		return state == StateBoundRX || state == StateBoundTRX
	default:
		return false
	}
}

// legalResponseCommand reports whether command_id id is a legal
// response-type PDU for the session to send in state via Respond.
func legalResponseCommand(state State, id pdu.CommandID) bool {
	if state == StateClosed {
		return false
	}
	switch id {
	case pdu.CmdEnquireLinkResp, pdu.CmdUnbindResp, pdu.CmdGenericNack:
		return true
	case pdu.CmdDeliverSmResp, pdu.CmdDataSmResp:
		return state == StateBoundRX || state == StateBoundTRX
	default:
		return false
	}
}

// isRateLimited reports whether id is a submit-class command gated by
// the token bucket (spec §4.6: "A submit operation must acquire one
// token before enqueue").
func isRateLimited(id pdu.CommandID) bool {
	switch id {
	case pdu.CmdSubmitSm, pdu.CmdSubmitMulti, pdu.CmdDataSm, pdu.CmdBroadcastSm:
		return true
	default:
		return false
	}
}

// isV5Only reports whether id requires an effective interface_version of
// 0x50 or higher (spec §4.7).
func isV5Only(id pdu.CommandID) bool {
	return broadcastOutbound[id]
}
