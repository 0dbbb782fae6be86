package smpp

import (
	"testing"

	"github.com/iainh/smpp/pdu"
)

func TestLegalOutboundRequest(t *testing.T) {
	tests := []struct {
		name  string
		state State
		role  BindRole
		id    pdu.CommandID
		want  bool
	}{
		{"TX can submit_sm", StateBoundTX, RoleTransmitter, pdu.CmdSubmitSm, true},
		{"RX cannot submit_sm", StateBoundRX, RoleReceiver, pdu.CmdSubmitSm, false},
		{"TRX can submit_sm", StateBoundTRX, RoleTransceiver, pdu.CmdSubmitSm, true},
		{"TX can broadcast_sm", StateBoundTX, RoleTransmitter, pdu.CmdBroadcastSm, true},
		{"OPEN cannot submit_sm", StateOpen, RoleTransmitter, pdu.CmdSubmitSm, false},
		{"UNBOUND cannot submit_sm", StateUnbound, RoleTransmitter, pdu.CmdSubmitSm, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legalOutboundRequest(tt.state, tt.role, tt.id); got != tt.want {
				t.Errorf("legalOutboundRequest(%v, %v, %v) = %v, want %v", tt.state, tt.role, tt.id, got, tt.want)
			}
		})
	}
}

func TestLegalInboundRequest(t *testing.T) {
	tests := []struct {
		name  string
		state State
		id    pdu.CommandID
		want  bool
	}{
		{"RX accepts deliver_sm", StateBoundRX, pdu.CmdDeliverSm, true},
		{"TX rejects deliver_sm", StateBoundTX, pdu.CmdDeliverSm, false},
		{"TRX accepts deliver_sm", StateBoundTRX, pdu.CmdDeliverSm, true},
		{"TX accepts enquire_link", StateBoundTX, pdu.CmdEnquireLink, true},
		{"OPEN rejects enquire_link", StateOpen, pdu.CmdEnquireLink, false},
		{"TX accepts alert_notification", StateBoundTX, pdu.CmdAlertNotification, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legalInboundRequest(tt.state, tt.id); got != tt.want {
				t.Errorf("legalInboundRequest(%v, %v) = %v, want %v", tt.state, tt.id, got, tt.want)
			}
		})
	}
}

func TestIsV5Only(t *testing.T) {
	if !isV5Only(pdu.CmdBroadcastSm) {
		t.Error("isV5Only(CmdBroadcastSm) = false, want true")
	}
	if isV5Only(pdu.CmdSubmitSm) {
		t.Error("isV5Only(CmdSubmitSm) = true, want false")
	}
}

func TestBindRoleBoundState(t *testing.T) {
	tests := []struct {
		role BindRole
		want State
	}{
		{RoleTransmitter, StateBoundTX},
		{RoleReceiver, StateBoundRX},
		{RoleTransceiver, StateBoundTRX},
	}
	for _, tt := range tests {
		if got := tt.role.boundState(); got != tt.want {
			t.Errorf("%v.boundState() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
