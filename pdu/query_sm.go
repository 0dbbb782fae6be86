package pdu

// QuerySm asks the SMSC for the current status of a previously
// submitted message.
type QuerySm struct {
	MessageID string
	Source    AddressField
}

func (QuerySm) CommandID() CommandID { return CmdQuerySm }

func (b QuerySm) BodyLen() int {
	return cOctetWireLen(b.MessageID) + b.Source.wireLen(maxSourceAddrLen)
}

func (b QuerySm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	b.Source.write(w)
	return nil
}

// MessageState values returned in query_sm_resp, per spec Table B-2.
const (
	MessageStateEnroute       uint8 = 1
	MessageStateDelivered     uint8 = 2
	MessageStateExpired       uint8 = 3
	MessageStateDeleted       uint8 = 4
	MessageStateUndeliverable uint8 = 5
	MessageStateAccepted      uint8 = 6
	MessageStateUnknown       uint8 = 7
	MessageStateRejected      uint8 = 8
)

// QuerySmResp answers a QuerySm.
type QuerySmResp struct {
	MessageID  string
	FinalDate  string // 0 or 17 octets, C-Octet string
	MessageState uint8
	ErrorCode  uint8
}

func (QuerySmResp) CommandID() CommandID { return CmdQuerySmResp }

func (b QuerySmResp) BodyLen() int {
	return cOctetWireLen(b.MessageID) + cOctetWireLen(b.FinalDate) + 1 + 1
}

func (b QuerySmResp) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if len(b.FinalDate) != 0 && len(b.FinalDate) != scheduleTimeLen {
		return &StringTooLong{Field: "final_date", MaxLen: scheduleTimeLen + 1}
	}
	w.PutCOctetString(b.MessageID)
	w.PutCOctetString(b.FinalDate)
	w.PutU8(b.MessageState)
	w.PutU8(b.ErrorCode)
	return nil
}

func init() {
	register(CmdQuerySm, func(r *Reader) (Body, error) {
		var b QuerySm
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdQuerySmResp, func(r *Reader) (Body, error) {
		var b QuerySmResp
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.FinalDate, err = r.ReadCOctetString("final_date", scheduleTimeLen+1); err != nil {
			return nil, err
		}
		if b.MessageState, err = r.ReadU8("message_state"); err != nil {
			return nil, err
		}
		if b.ErrorCode, err = r.ReadU8("error_code"); err != nil {
			return nil, err
		}
		return b, nil
	})
}
