package pdu

const (
	maxSystemIDLen     = 16
	maxPasswordLen     = 9
	maxSystemTypeLen   = 13
	maxAddressRangeLen = 41
)

// bindBody is the shared mandatory-field layout of bind_transmitter,
// bind_receiver, and bind_transceiver. The three PDUs differ only in
// command_id, so one struct backs all three via a small wrapper.
type bindBody struct {
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion uint8
	AddrTON          uint8
	AddrNPI          uint8
	AddressRange     string
}

func (b bindBody) bodyLen() int {
	return cOctetWireLen(b.SystemID) + cOctetWireLen(b.Password) + cOctetWireLen(b.SystemType) +
		1 + 1 + 1 + cOctetWireLen(b.AddressRange)
}

func (b bindBody) validate() error {
	if err := validateCOctetString("system_id", b.SystemID, maxSystemIDLen); err != nil {
		return err
	}
	if err := validateCOctetString("password", b.Password, maxPasswordLen); err != nil {
		return err
	}
	if err := validateCOctetString("system_type", b.SystemType, maxSystemTypeLen); err != nil {
		return err
	}
	return validateCOctetString("address_range", b.AddressRange, maxAddressRangeLen)
}

func (b bindBody) encode(w *Writer) {
	w.PutCOctetString(b.SystemID)
	w.PutCOctetString(b.Password)
	w.PutCOctetString(b.SystemType)
	w.PutU8(b.InterfaceVersion)
	w.PutU8(b.AddrTON)
	w.PutU8(b.AddrNPI)
	w.PutCOctetString(b.AddressRange)
}

func readBindBody(r *Reader) (bindBody, error) {
	var b bindBody
	var err error
	if b.SystemID, err = r.ReadCOctetString("system_id", maxSystemIDLen); err != nil {
		return b, err
	}
	if b.Password, err = r.ReadCOctetString("password", maxPasswordLen); err != nil {
		return b, err
	}
	if b.SystemType, err = r.ReadCOctetString("system_type", maxSystemTypeLen); err != nil {
		return b, err
	}
	if b.InterfaceVersion, err = r.ReadU8("interface_version"); err != nil {
		return b, err
	}
	if b.AddrTON, err = r.ReadU8("addr_ton"); err != nil {
		return b, err
	}
	if b.AddrNPI, err = r.ReadU8("addr_npi"); err != nil {
		return b, err
	}
	if b.AddressRange, err = r.ReadCOctetString("address_range", maxAddressRangeLen); err != nil {
		return b, err
	}
	return b, nil
}

// BindTransmitter opens a session that may only send mobile-terminated
// traffic (submit_sm and friends).
type BindTransmitter struct{ bindBody }

func (BindTransmitter) CommandID() CommandID { return CmdBindTransmitter }
func (b BindTransmitter) BodyLen() int       { return b.bodyLen() }
func (b BindTransmitter) Validate() error    { return b.validate() }
func (b BindTransmitter) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// BindReceiver opens a session that may only receive mobile-originated
// traffic (deliver_sm and friends).
type BindReceiver struct{ bindBody }

func (BindReceiver) CommandID() CommandID { return CmdBindReceiver }
func (b BindReceiver) BodyLen() int       { return b.bodyLen() }
func (b BindReceiver) Validate() error    { return b.validate() }
func (b BindReceiver) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// BindTransceiver opens a session that may both send and receive.
type BindTransceiver struct{ bindBody }

func (BindTransceiver) CommandID() CommandID { return CmdBindTransceiver }
func (b BindTransceiver) BodyLen() int       { return b.bodyLen() }
func (b BindTransceiver) Validate() error    { return b.validate() }
func (b BindTransceiver) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// bindRespBody is the shared layout of the three bind_*_resp PDUs:
// system_id plus an optional sc_interface_version TLV.
type bindRespBody struct {
	SystemID string
	TLVs     []TLV
}

func (b bindRespBody) bodyLen() int {
	return cOctetWireLen(b.SystemID) + TLVListWireLen(b.TLVs)
}

func (b bindRespBody) validate() error {
	return validateCOctetString("system_id", b.SystemID, maxSystemIDLen)
}

func (b bindRespBody) encode(w *Writer) {
	w.PutCOctetString(b.SystemID)
	WriteTLVList(w, b.TLVs)
}

// ScInterfaceVersion returns the peer's sc_interface_version TLV value,
// if present, used by version negotiation (spec §4.7).
func (b bindRespBody) ScInterfaceVersion() (uint8, bool) {
	if t, ok := FindTLV(b.TLVs, TagScInterfaceVersion); ok && len(t.Value) == 1 {
		return t.Value[0], true
	}
	return 0, false
}

func readBindRespBody(r *Reader) (bindRespBody, error) {
	var b bindRespBody
	var err error
	if b.SystemID, err = r.ReadCOctetString("system_id", maxSystemIDLen); err != nil {
		return b, err
	}
	if b.TLVs, err = readTrailingTLVs(r); err != nil {
		return b, err
	}
	return b, nil
}

// BindTransmitterResp acknowledges a bind_transmitter.
type BindTransmitterResp struct{ bindRespBody }

func (BindTransmitterResp) CommandID() CommandID     { return CmdBindTransmitterResp }
func (b BindTransmitterResp) BodyLen() int           { return b.bodyLen() }
func (b BindTransmitterResp) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// BindReceiverResp acknowledges a bind_receiver.
type BindReceiverResp struct{ bindRespBody }

func (BindReceiverResp) CommandID() CommandID { return CmdBindReceiverResp }
func (b BindReceiverResp) BodyLen() int       { return b.bodyLen() }
func (b BindReceiverResp) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// BindTransceiverResp acknowledges a bind_transceiver.
type BindTransceiverResp struct{ bindRespBody }

func (BindTransceiverResp) CommandID() CommandID { return CmdBindTransceiverResp }
func (b BindTransceiverResp) BodyLen() int       { return b.bodyLen() }
func (b BindTransceiverResp) EncodeBody(w *Writer) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.encode(w)
	return nil
}

// Outbind is sent unsolicited by an SMSC inviting an ESME to bind back.
type Outbind struct {
	SystemID string
	Password string
}

func (Outbind) CommandID() CommandID { return CmdOutbind }
func (o Outbind) BodyLen() int {
	return cOctetWireLen(o.SystemID) + cOctetWireLen(o.Password)
}
func (o Outbind) EncodeBody(w *Writer) error {
	if err := validateCOctetString("system_id", o.SystemID, maxSystemIDLen); err != nil {
		return err
	}
	if err := validateCOctetString("password", o.Password, maxPasswordLen); err != nil {
		return err
	}
	w.PutCOctetString(o.SystemID)
	w.PutCOctetString(o.Password)
	return nil
}

func init() {
	register(CmdBindTransmitter, func(r *Reader) (Body, error) {
		b, err := readBindBody(r)
		if err != nil {
			return nil, err
		}
		return BindTransmitter{b}, nil
	})
	register(CmdBindReceiver, func(r *Reader) (Body, error) {
		b, err := readBindBody(r)
		if err != nil {
			return nil, err
		}
		return BindReceiver{b}, nil
	})
	register(CmdBindTransceiver, func(r *Reader) (Body, error) {
		b, err := readBindBody(r)
		if err != nil {
			return nil, err
		}
		return BindTransceiver{b}, nil
	})
	register(CmdBindTransmitterResp, func(r *Reader) (Body, error) {
		b, err := readBindRespBody(r)
		if err != nil {
			return nil, err
		}
		return BindTransmitterResp{b}, nil
	})
	register(CmdBindReceiverResp, func(r *Reader) (Body, error) {
		b, err := readBindRespBody(r)
		if err != nil {
			return nil, err
		}
		return BindReceiverResp{b}, nil
	})
	register(CmdBindTransceiverResp, func(r *Reader) (Body, error) {
		b, err := readBindRespBody(r)
		if err != nil {
			return nil, err
		}
		return BindTransceiverResp{b}, nil
	})
	register(CmdOutbind, func(r *Reader) (Body, error) {
		var o Outbind
		var err error
		if o.SystemID, err = r.ReadCOctetString("system_id", maxSystemIDLen); err != nil {
			return nil, err
		}
		if o.Password, err = r.ReadCOctetString("password", maxPasswordLen); err != nil {
			return nil, err
		}
		return o, nil
	})
}
