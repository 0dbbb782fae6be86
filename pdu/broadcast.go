package pdu

// BroadcastSm submits a message for broadcast to one or more broadcast
// areas. v5.0 only. The content travels either in the message_payload
// TLV or is implied by broadcast_content_type; broadcast_area_identifier,
// broadcast_content_type, broadcast_rep_num and broadcast_frequency_interval
// are mandatory optional-parameters per spec Table 4-23.
type BroadcastSm struct {
	ServiceType          string
	Source               AddressField
	MessageID            string
	PriorityFlag         uint8
	ScheduleDeliveryTime string
	ValidityPeriod       string
	DataCoding           uint8
	SmDefaultMsgID       uint8
	TLVs                 []TLV
}

func (BroadcastSm) CommandID() CommandID { return CmdBroadcastSm }

func (b BroadcastSm) BodyLen() int {
	return cOctetWireLen(b.ServiceType) + b.Source.wireLen(maxSourceAddrLen) +
		cOctetWireLen(b.MessageID) + 1 + cOctetWireLen(b.ScheduleDeliveryTime) +
		cOctetWireLen(b.ValidityPeriod) + 1 + 1 + TLVListWireLen(b.TLVs)
}

func (b BroadcastSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	w.PutCOctetString(b.ServiceType)
	b.Source.write(w)
	w.PutCOctetString(b.MessageID)
	w.PutU8(b.PriorityFlag)
	w.PutCOctetString(b.ScheduleDeliveryTime)
	w.PutCOctetString(b.ValidityPeriod)
	w.PutU8(b.DataCoding)
	w.PutU8(b.SmDefaultMsgID)
	WriteTLVList(w, b.TLVs)
	return nil
}

// BroadcastAreaIdentifiers returns every broadcast_area_identifier TLV
// value (the tag is repeatable, one entry per target area).
func (b BroadcastSm) BroadcastAreaIdentifiers() [][]byte {
	tlvs := FindAllTLV(b.TLVs, TagBroadcastAreaIdentifier)
	out := make([][]byte, len(tlvs))
	for i, t := range tlvs {
		out[i] = t.Value
	}
	return out
}

// BroadcastSmResp answers a BroadcastSm.
type BroadcastSmResp struct {
	MessageID string
	TLVs      []TLV
}

func (BroadcastSmResp) CommandID() CommandID { return CmdBroadcastSmResp }

func (b BroadcastSmResp) BodyLen() int {
	return cOctetWireLen(b.MessageID) + TLVListWireLen(b.TLVs)
}

func (b BroadcastSmResp) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	WriteTLVList(w, b.TLVs)
	return nil
}

// QueryBroadcastSm asks the SMSC for the current state of a previously
// submitted broadcast.
type QueryBroadcastSm struct {
	MessageID string
	Source    AddressField
	TLVs      []TLV
}

func (QueryBroadcastSm) CommandID() CommandID { return CmdQueryBroadcastSm }

func (b QueryBroadcastSm) BodyLen() int {
	return cOctetWireLen(b.MessageID) + b.Source.wireLen(maxSourceAddrLen) + TLVListWireLen(b.TLVs)
}

func (b QueryBroadcastSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	b.Source.write(w)
	WriteTLVList(w, b.TLVs)
	return nil
}

// QueryBroadcastSmResp answers a QueryBroadcastSm; message_state and
// broadcast_area_identifier travel as TLVs per spec Table 4-26.
type QueryBroadcastSmResp struct {
	MessageID string
	TLVs      []TLV
}

func (QueryBroadcastSmResp) CommandID() CommandID { return CmdQueryBroadcastSmResp }

func (b QueryBroadcastSmResp) BodyLen() int {
	return cOctetWireLen(b.MessageID) + TLVListWireLen(b.TLVs)
}

func (b QueryBroadcastSmResp) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	WriteTLVList(w, b.TLVs)
	return nil
}

// CancelBroadcastSm cancels a broadcast that has not yet completed.
type CancelBroadcastSm struct {
	ServiceType string
	MessageID   string
	Source      AddressField
	TLVs        []TLV
}

func (CancelBroadcastSm) CommandID() CommandID { return CmdCancelBroadcastSm }

func (b CancelBroadcastSm) BodyLen() int {
	return cOctetWireLen(b.ServiceType) + cOctetWireLen(b.MessageID) +
		b.Source.wireLen(maxSourceAddrLen) + TLVListWireLen(b.TLVs)
}

func (b CancelBroadcastSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	w.PutCOctetString(b.ServiceType)
	w.PutCOctetString(b.MessageID)
	b.Source.write(w)
	WriteTLVList(w, b.TLVs)
	return nil
}

// CancelBroadcastSmResp carries no mandatory fields beyond the header.
type CancelBroadcastSmResp struct{}

func (CancelBroadcastSmResp) CommandID() CommandID     { return CmdCancelBroadcastSmResp }
func (CancelBroadcastSmResp) BodyLen() int             { return 0 }
func (CancelBroadcastSmResp) EncodeBody(*Writer) error { return nil }

func init() {
	register(CmdBroadcastSm, func(r *Reader) (Body, error) {
		var b BroadcastSm
		var err error
		if b.ServiceType, err = r.ReadCOctetString("service_type", maxServiceTypeLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.PriorityFlag, err = r.ReadU8("priority_flag"); err != nil {
			return nil, err
		}
		if b.ScheduleDeliveryTime, err = r.ReadCOctetString("schedule_delivery_time", scheduleTimeLen+1); err != nil {
			return nil, err
		}
		if b.ValidityPeriod, err = r.ReadCOctetString("validity_period", scheduleTimeLen+1); err != nil {
			return nil, err
		}
		if b.DataCoding, err = r.ReadU8("data_coding"); err != nil {
			return nil, err
		}
		if b.SmDefaultMsgID, err = r.ReadU8("sm_default_msg_id"); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdBroadcastSmResp, func(r *Reader) (Body, error) {
		var b BroadcastSmResp
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdQueryBroadcastSm, func(r *Reader) (Body, error) {
		var b QueryBroadcastSm
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdQueryBroadcastSmResp, func(r *Reader) (Body, error) {
		var b QueryBroadcastSmResp
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdCancelBroadcastSm, func(r *Reader) (Body, error) {
		var b CancelBroadcastSm
		var err error
		if b.ServiceType, err = r.ReadCOctetString("service_type", maxServiceTypeLen); err != nil {
			return nil, err
		}
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdCancelBroadcastSmResp, func(r *Reader) (Body, error) { return CancelBroadcastSmResp{}, nil })
}
