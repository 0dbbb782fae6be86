package pdu

import (
	"encoding/binary"
	"fmt"
)

// HeaderLength is the fixed size in octets of every SMPP PDU header.
const HeaderLength = 16

// MinCommandLength and MaxCommandLength bound a legal command_length per
// the wire invariant: 16 <= command_length <= 65536.
const (
	MinCommandLength = 16
	MaxCommandLength = 65536
)

// respFlag is the bit that distinguishes a response command_id from its
// request: response_id = request_id | respFlag.
const respFlag CommandID = 0x80000000

// CommandID identifies a PDU's wire shape.
type CommandID uint32

// SMPP command ids, per spec Table B-1 (v3.4) and the v5.0 extensions.
// These are named with a Cmd prefix to stay distinct from the Body
// struct of the same PDU (e.g. CmdSubmitSm vs the SubmitSm struct).
const (
	CmdGenericNack CommandID = 0x80000000

	CmdBindReceiver          CommandID = 0x00000001
	CmdBindReceiverResp      CommandID = 0x80000001
	CmdBindTransmitter       CommandID = 0x00000002
	CmdBindTransmitterResp   CommandID = 0x80000002
	CmdQuerySm               CommandID = 0x00000003
	CmdQuerySmResp           CommandID = 0x80000003
	CmdSubmitSm              CommandID = 0x00000004
	CmdSubmitSmResp          CommandID = 0x80000004
	CmdDeliverSm             CommandID = 0x00000005
	CmdDeliverSmResp         CommandID = 0x80000005
	CmdUnbind                CommandID = 0x00000006
	CmdUnbindResp            CommandID = 0x80000006
	CmdReplaceSm             CommandID = 0x00000007
	CmdReplaceSmResp         CommandID = 0x80000007
	CmdCancelSm              CommandID = 0x00000008
	CmdCancelSmResp          CommandID = 0x80000008
	CmdBindTransceiver       CommandID = 0x00000009
	CmdBindTransceiverResp   CommandID = 0x80000009
	CmdOutbind               CommandID = 0x0000000B
	CmdEnquireLink           CommandID = 0x00000015
	CmdEnquireLinkResp       CommandID = 0x80000015
	CmdSubmitMulti           CommandID = 0x00000021
	CmdSubmitMultiResp       CommandID = 0x80000021
	CmdAlertNotification     CommandID = 0x00000102
	CmdDataSm                CommandID = 0x00000103
	CmdDataSmResp            CommandID = 0x80000103
	CmdBroadcastSm           CommandID = 0x00000111
	CmdBroadcastSmResp       CommandID = 0x80000111
	CmdQueryBroadcastSm      CommandID = 0x00000112
	CmdQueryBroadcastSmResp  CommandID = 0x80000112
	CmdCancelBroadcastSm     CommandID = 0x00000113
	CmdCancelBroadcastSmResp CommandID = 0x80000113
)

var commandIDNames = map[CommandID]string{
	CmdGenericNack:           "generic_nack",
	CmdBindReceiver:          "bind_receiver",
	CmdBindReceiverResp:      "bind_receiver_resp",
	CmdBindTransmitter:       "bind_transmitter",
	CmdBindTransmitterResp:   "bind_transmitter_resp",
	CmdQuerySm:               "query_sm",
	CmdQuerySmResp:           "query_sm_resp",
	CmdSubmitSm:              "submit_sm",
	CmdSubmitSmResp:          "submit_sm_resp",
	CmdDeliverSm:             "deliver_sm",
	CmdDeliverSmResp:         "deliver_sm_resp",
	CmdUnbind:                "unbind",
	CmdUnbindResp:            "unbind_resp",
	CmdReplaceSm:             "replace_sm",
	CmdReplaceSmResp:         "replace_sm_resp",
	CmdCancelSm:              "cancel_sm",
	CmdCancelSmResp:          "cancel_sm_resp",
	CmdBindTransceiver:       "bind_transceiver",
	CmdBindTransceiverResp:   "bind_transceiver_resp",
	CmdOutbind:               "outbind",
	CmdEnquireLink:           "enquire_link",
	CmdEnquireLinkResp:       "enquire_link_resp",
	CmdSubmitMulti:           "submit_multi",
	CmdSubmitMultiResp:       "submit_multi_resp",
	CmdAlertNotification:     "alert_notification",
	CmdDataSm:                "data_sm",
	CmdDataSmResp:            "data_sm_resp",
	CmdBroadcastSm:           "broadcast_sm",
	CmdBroadcastSmResp:       "broadcast_sm_resp",
	CmdQueryBroadcastSm:      "query_broadcast_sm",
	CmdQueryBroadcastSmResp:  "query_broadcast_sm_resp",
	CmdCancelBroadcastSm:     "cancel_broadcast_sm",
	CmdCancelBroadcastSmResp: "cancel_broadcast_sm_resp",
}

func (c CommandID) String() string {
	if n, ok := commandIDNames[c]; ok {
		return n
	}
	return fmt.Sprintf("command_id(0x%08x)", uint32(c))
}

// IsResponse reports whether the high bit of the command_id is set.
func (c CommandID) IsResponse() bool { return c&respFlag != 0 }

// ResponseID returns request_id | 0x80000000, the command_id a response
// to this request must carry.
func (c CommandID) ResponseID() CommandID { return c | respFlag }

// RequestID strips the response bit, returning the command_id of the
// request this response pairs with.
func (c CommandID) RequestID() CommandID { return c &^ respFlag }

// Header is the fixed 16-octet PDU header shared by every PDU.
type Header struct {
	CommandLength  uint32
	CommandID      CommandID
	CommandStatus  CommandStatus
	SequenceNumber uint32
}

// DecodeHeader reads a 16-byte header from buf. buf must be at least
// HeaderLength bytes; callers peek the header before reading the rest of
// the frame.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLength {
		return Header{}, &InsufficientBytes{Field: "header", Want: HeaderLength, Have: len(buf)}
	}
	return Header{
		CommandLength:  binary.BigEndian.Uint32(buf[0:4]),
		CommandID:      CommandID(binary.BigEndian.Uint32(buf[4:8])),
		CommandStatus:  CommandStatus(binary.BigEndian.Uint32(buf[8:12])),
		SequenceNumber: binary.BigEndian.Uint32(buf[12:16]),
	}, nil
}

// Encode writes the header into the first HeaderLength bytes of buf.
func (h Header) Encode(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:4], h.CommandLength)
	binary.BigEndian.PutUint32(buf[4:8], uint32(h.CommandID))
	binary.BigEndian.PutUint32(buf[8:12], uint32(h.CommandStatus))
	binary.BigEndian.PutUint32(buf[12:16], h.SequenceNumber)
}

// ValidateSequenceNumber checks the 1 <= n <= 0x7FFFFFFF invariant.
func ValidateSequenceNumber(n uint32) error {
	if n < 1 || n > 0x7FFFFFFF {
		return &InvalidEnum{Field: "sequence_number", Value: int(n)}
	}
	return nil
}
