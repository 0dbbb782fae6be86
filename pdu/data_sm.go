package pdu

// DataSm carries its payload exclusively in the message_payload TLV
// (0x0424); unlike submit_sm it has no sm_length/short_message pair.
type DataSm struct {
	ServiceType        string
	Source             AddressField
	Dest               AddressField
	EsmClass           uint8
	RegisteredDelivery uint8
	DataCoding         uint8
	TLVs               []TLV
}

func (DataSm) CommandID() CommandID { return CmdDataSm }

func (b DataSm) BodyLen() int {
	return cOctetWireLen(b.ServiceType) + b.Source.wireLen(maxSourceAddrLen) +
		b.Dest.wireLen(maxDestAddrLen) + 1 + 1 + 1 + TLVListWireLen(b.TLVs)
}

func (b DataSm) EncodeBody(w *Writer) error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if err := b.Dest.validate("dest", maxDestAddrLen); err != nil {
		return err
	}
	w.PutCOctetString(b.ServiceType)
	b.Source.write(w)
	b.Dest.write(w)
	w.PutU8(b.EsmClass)
	w.PutU8(b.RegisteredDelivery)
	w.PutU8(b.DataCoding)
	WriteTLVList(w, b.TLVs)
	return nil
}

// MessagePayload returns the message_payload TLV's value, if present.
func (b DataSm) MessagePayload() ([]byte, bool) {
	if t, ok := FindTLV(b.TLVs, TagMessagePayload); ok {
		return t.Value, true
	}
	return nil, false
}

// DataSmResp answers a DataSm with a message_id plus optional TLVs
// (including, under v5.0, congestion_state feedback — spec §4.6).
type DataSmResp struct {
	MessageID string
	TLVs      []TLV
}

func (DataSmResp) CommandID() CommandID { return CmdDataSmResp }

func (b DataSmResp) BodyLen() int {
	return cOctetWireLen(b.MessageID) + TLVListWireLen(b.TLVs)
}

func (b DataSmResp) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	w.PutCOctetString(b.MessageID)
	WriteTLVList(w, b.TLVs)
	return nil
}

// CongestionState returns the peer-reported congestion_state TLV value
// (0..100), if present.
func (b DataSmResp) CongestionState() (uint8, bool) {
	if t, ok := FindTLV(b.TLVs, TagCongestionState); ok && len(t.Value) == 1 {
		return t.Value[0], true
	}
	return 0, false
}

func init() {
	register(CmdDataSm, func(r *Reader) (Body, error) {
		var b DataSm
		var err error
		if b.ServiceType, err = r.ReadCOctetString("service_type", maxServiceTypeLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.Dest, err = readAddressField(r, "dest", maxDestAddrLen); err != nil {
			return nil, err
		}
		if b.EsmClass, err = r.ReadU8("esm_class"); err != nil {
			return nil, err
		}
		if b.RegisteredDelivery, err = r.ReadU8("registered_delivery"); err != nil {
			return nil, err
		}
		if b.DataCoding, err = r.ReadU8("data_coding"); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdDataSmResp, func(r *Reader) (Body, error) {
		var b DataSmResp
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})
}
