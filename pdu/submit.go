package pdu

const (
	maxServiceTypeLen = 6
	maxSourceAddrLen  = 21
	maxDestAddrLen    = 21
	scheduleTimeLen   = 17 // absolute or relative time string, excluding NUL
	maxMessageIDLen   = 65
)

// smBody is the mandatory-field layout shared by submit_sm and
// deliver_sm: they are wire-identical, differing only in direction and
// command_id (spec §4.2).
type smBody struct {
	ServiceType            string
	Source                 AddressField
	Dest                    AddressField
	EsmClass                uint8
	ProtocolID              uint8
	PriorityFlag            uint8
	ScheduleDeliveryTime    string
	ValidityPeriod          string
	RegisteredDelivery      uint8
	ReplaceIfPresentFlag    uint8
	DataCoding              uint8
	SmDefaultMsgID          uint8
	ShortMessage            ShortMessage
	TLVs                    []TLV
}

func (b smBody) bodyLen() int {
	return cOctetWireLen(b.ServiceType) +
		b.Source.wireLen(maxSourceAddrLen) +
		b.Dest.wireLen(maxDestAddrLen) +
		1 + 1 + 1 +
		cOctetWireLen(b.ScheduleDeliveryTime) +
		cOctetWireLen(b.ValidityPeriod) +
		1 + 1 + 1 + 1 +
		b.ShortMessage.wireLen() +
		TLVListWireLen(b.TLVs)
}

func (b smBody) validate() error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if err := b.Dest.validate("dest", maxDestAddrLen); err != nil {
		return err
	}
	if b.ReplaceIfPresentFlag > 1 {
		return &InvalidEnum{Field: "replace_if_present_flag", Value: int(b.ReplaceIfPresentFlag)}
	}
	if len(b.ScheduleDeliveryTime) != 0 && len(b.ScheduleDeliveryTime) != scheduleTimeLen {
		return &StringTooLong{Field: "schedule_delivery_time", MaxLen: scheduleTimeLen + 1}
	}
	if len(b.ValidityPeriod) != 0 && len(b.ValidityPeriod) != scheduleTimeLen {
		return &StringTooLong{Field: "validity_period", MaxLen: scheduleTimeLen + 1}
	}
	return b.ShortMessage.validate()
}

func (b smBody) encode(w *Writer) {
	w.PutCOctetString(b.ServiceType)
	b.Source.write(w)
	b.Dest.write(w)
	w.PutU8(b.EsmClass)
	w.PutU8(b.ProtocolID)
	w.PutU8(b.PriorityFlag)
	w.PutCOctetString(b.ScheduleDeliveryTime)
	w.PutCOctetString(b.ValidityPeriod)
	w.PutU8(b.RegisteredDelivery)
	w.PutU8(b.ReplaceIfPresentFlag)
	w.PutU8(b.DataCoding)
	w.PutU8(b.SmDefaultMsgID)
	b.ShortMessage.write(w)
	WriteTLVList(w, b.TLVs)
}

func readSmBody(r *Reader) (smBody, error) {
	var b smBody
	var err error
	if b.ServiceType, err = r.ReadCOctetString("service_type", maxServiceTypeLen); err != nil {
		return b, err
	}
	if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
		return b, err
	}
	if b.Dest, err = readAddressField(r, "dest", maxDestAddrLen); err != nil {
		return b, err
	}
	if b.EsmClass, err = r.ReadU8("esm_class"); err != nil {
		return b, err
	}
	if b.ProtocolID, err = r.ReadU8("protocol_id"); err != nil {
		return b, err
	}
	if b.PriorityFlag, err = r.ReadU8("priority_flag"); err != nil {
		return b, err
	}
	if b.ScheduleDeliveryTime, err = r.ReadCOctetString("schedule_delivery_time", scheduleTimeLen+1); err != nil {
		return b, err
	}
	if b.ValidityPeriod, err = r.ReadCOctetString("validity_period", scheduleTimeLen+1); err != nil {
		return b, err
	}
	if b.RegisteredDelivery, err = r.ReadU8("registered_delivery"); err != nil {
		return b, err
	}
	if b.ReplaceIfPresentFlag, err = r.ReadU8("replace_if_present_flag"); err != nil {
		return b, err
	}
	if b.ReplaceIfPresentFlag > 1 {
		return b, &InvalidEnum{Field: "replace_if_present_flag", Value: int(b.ReplaceIfPresentFlag)}
	}
	if b.DataCoding, err = r.ReadU8("data_coding"); err != nil {
		return b, err
	}
	if b.SmDefaultMsgID, err = r.ReadU8("sm_default_msg_id"); err != nil {
		return b, err
	}
	if b.ShortMessage, err = readShortMessage(r); err != nil {
		return b, err
	}
	if b.TLVs, err = readTrailingTLVs(r); err != nil {
		return b, err
	}
	return b, nil
}

// SubmitSm is an ESME-to-SMSC request to submit a short message for
// mobile-terminated delivery.
type SubmitSm struct{ smBody }

func (SubmitSm) CommandID() CommandID { return CmdSubmitSm }
func (b SubmitSm) BodyLen() int       { return b.bodyLen() }
func (b SubmitSm) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// DeliverSm is wire-identical to SubmitSm; the SMSC uses it to deliver
// mobile-originated traffic or delivery receipts to a bound receiver.
type DeliverSm struct{ smBody }

func (DeliverSm) CommandID() CommandID { return CmdDeliverSm }
func (b DeliverSm) BodyLen() int       { return b.bodyLen() }
func (b DeliverSm) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// smRespBody is the shared layout of submit_sm_resp / deliver_sm_resp:
// message_id, and nothing else when command_status is non-zero per
// spec §3 invariant 6.
type smRespBody struct {
	MessageID string
}

func (b smRespBody) bodyLen() int { return cOctetWireLen(b.MessageID) }

func (b smRespBody) validate() error {
	return validateCOctetString("message_id", b.MessageID, maxMessageIDLen)
}

func (b smRespBody) encode(w *Writer) { w.PutCOctetString(b.MessageID) }

func readSmRespBody(r *Reader) (smRespBody, error) {
	// An error response (non-zero command_status) may carry no body at
	// all per spec §3 invariant 6; an empty reader is legal here rather
	// than a truncated message_id.
	if r.Remaining() == 0 {
		return smRespBody{}, nil
	}
	id, err := r.ReadCOctetString("message_id", maxMessageIDLen)
	if err != nil {
		return smRespBody{}, err
	}
	return smRespBody{MessageID: id}, nil
}

// SubmitSmResp answers a SubmitSm.
type SubmitSmResp struct{ smRespBody }

func (SubmitSmResp) CommandID() CommandID { return CmdSubmitSmResp }
func (b SubmitSmResp) BodyLen() int       { return b.bodyLen() }
func (b SubmitSmResp) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// DeliverSmResp answers a DeliverSm.
type DeliverSmResp struct{ smRespBody }

func (DeliverSmResp) CommandID() CommandID { return CmdDeliverSmResp }
func (b DeliverSmResp) BodyLen() int       { return b.bodyLen() }
func (b DeliverSmResp) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

func init() {
	register(CmdSubmitSm, func(r *Reader) (Body, error) {
		b, err := readSmBody(r)
		if err != nil {
			return nil, err
		}
		return SubmitSm{b}, nil
	})
	register(CmdDeliverSm, func(r *Reader) (Body, error) {
		b, err := readSmBody(r)
		if err != nil {
			return nil, err
		}
		return DeliverSm{b}, nil
	})
	register(CmdSubmitSmResp, func(r *Reader) (Body, error) {
		b, err := readSmRespBody(r)
		if err != nil {
			return nil, err
		}
		return SubmitSmResp{b}, nil
	})
	register(CmdDeliverSmResp, func(r *Reader) (Body, error) {
		b, err := readSmRespBody(r)
		if err != nil {
			return nil, err
		}
		return DeliverSmResp{b}, nil
	})
}

// PriorityFlagMax returns the upper bound for priority_flag under the
// given effective protocol version: 3 for v3.4, 4 for v5.0 (spec §9).
func PriorityFlagMax(version uint8) uint8 {
	if version >= Version50 {
		return 4
	}
	return 3
}

// ValidatePriorityFlag applies the version-sensitive priority_flag bound.
// This lives outside smBody.validate because the codec itself is
// version-agnostic; the session layer calls this once it knows the
// negotiated effective version.
func ValidatePriorityFlag(flag, effectiveVersion uint8) error {
	if flag > PriorityFlagMax(effectiveVersion) {
		return &InvalidEnum{Field: "priority_flag", Value: int(flag)}
	}
	return nil
}
