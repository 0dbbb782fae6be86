package pdu

// CancelSm cancels a previously submitted, not-yet-delivered message.
type CancelSm struct {
	ServiceType string
	MessageID   string
	Source      AddressField
	Dest        AddressField
}

func (CancelSm) CommandID() CommandID { return CmdCancelSm }

func (b CancelSm) BodyLen() int {
	return cOctetWireLen(b.ServiceType) + cOctetWireLen(b.MessageID) +
		b.Source.wireLen(maxSourceAddrLen) + b.Dest.wireLen(maxDestAddrLen)
}

func (b CancelSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if err := b.Dest.validate("dest", maxDestAddrLen); err != nil {
		return err
	}
	w.PutCOctetString(b.ServiceType)
	w.PutCOctetString(b.MessageID)
	b.Source.write(w)
	b.Dest.write(w)
	return nil
}

// CancelSmResp carries no mandatory fields beyond the header.
type CancelSmResp struct{}

func (CancelSmResp) CommandID() CommandID     { return CmdCancelSmResp }
func (CancelSmResp) BodyLen() int             { return 0 }
func (CancelSmResp) EncodeBody(*Writer) error { return nil }

// ReplaceSm replaces the short message, validity, and delivery options
// of a previously submitted, not-yet-delivered message.
type ReplaceSm struct {
	MessageID            string
	Source               AddressField
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   uint8
	SmDefaultMsgID       uint8
	ShortMessage         ShortMessage
}

func (ReplaceSm) CommandID() CommandID { return CmdReplaceSm }

func (b ReplaceSm) BodyLen() int {
	return cOctetWireLen(b.MessageID) + b.Source.wireLen(maxSourceAddrLen) +
		cOctetWireLen(b.ScheduleDeliveryTime) + cOctetWireLen(b.ValidityPeriod) +
		1 + 1 + b.ShortMessage.wireLen()
}

func (b ReplaceSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if len(b.ScheduleDeliveryTime) != 0 && len(b.ScheduleDeliveryTime) != scheduleTimeLen {
		return &StringTooLong{Field: "schedule_delivery_time", MaxLen: scheduleTimeLen + 1}
	}
	if len(b.ValidityPeriod) != 0 && len(b.ValidityPeriod) != scheduleTimeLen {
		return &StringTooLong{Field: "validity_period", MaxLen: scheduleTimeLen + 1}
	}
	if err := b.ShortMessage.validate(); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	b.Source.write(w)
	w.PutCOctetString(b.ScheduleDeliveryTime)
	w.PutCOctetString(b.ValidityPeriod)
	w.PutU8(b.RegisteredDelivery)
	w.PutU8(b.SmDefaultMsgID)
	b.ShortMessage.write(w)
	return nil
}

// ReplaceSmResp carries no mandatory fields beyond the header.
type ReplaceSmResp struct{}

func (ReplaceSmResp) CommandID() CommandID     { return CmdReplaceSmResp }
func (ReplaceSmResp) BodyLen() int             { return 0 }
func (ReplaceSmResp) EncodeBody(*Writer) error { return nil }

func init() {
	register(CmdCancelSm, func(r *Reader) (Body, error) {
		var b CancelSm
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
		if b.Dest, err = readAddressField(r, "dest", maxDestAddrLen); err != nil {
			return nil, err
		}
		return b, nil
	})
	register(CmdCancelSmResp, func(r *Reader) (Body, error) { return CancelSmResp{}, nil })

	register(CmdReplaceSm, func(r *Reader) (Body, error) {
		var b ReplaceSm
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.ScheduleDeliveryTime, err = r.ReadCOctetString("schedule_delivery_time", scheduleTimeLen+1); err != nil {
			return nil, err
		}
		if b.ValidityPeriod, err = r.ReadCOctetString("validity_period", scheduleTimeLen+1); err != nil {
			return nil, err
		}
		if b.RegisteredDelivery, err = r.ReadU8("registered_delivery"); err != nil {
			return nil, err
		}
		if b.SmDefaultMsgID, err = r.ReadU8("sm_default_msg_id"); err != nil {
			return nil, err
		}
		if b.ShortMessage, err = readShortMessage(r); err != nil {
			return nil, err
		}
		return b, nil
	})
	register(CmdReplaceSmResp, func(r *Reader) (Body, error) { return ReplaceSmResp{}, nil })
}
