package pdu

const (
	destFlagSME uint8 = 1
	destFlagDL  uint8 = 2

	maxDLNameLen = 21
)

// DestAddress is one entry of submit_multi's destination list: either an
// SME address (ton, npi, addr) or a distribution list name.
type DestAddress struct {
	Flag    uint8
	SME     AddressField
	DLName  string
}

func (d DestAddress) wireLen() int {
	switch d.Flag {
	case destFlagDL:
		return 1 + cOctetWireLen(d.DLName)
	default:
		return 1 + d.SME.wireLen(maxDestAddrLen)
	}
}

func (d DestAddress) validate() error {
	switch d.Flag {
	case destFlagSME:
		return d.SME.validate("dest", maxDestAddrLen)
	case destFlagDL:
		return validateCOctetString("dl_name", d.DLName, maxDLNameLen)
	default:
		return &InvalidEnum{Field: "dest_flag", Value: int(d.Flag)}
	}
}

func (d DestAddress) write(w *Writer) {
	w.PutU8(d.Flag)
	switch d.Flag {
	case destFlagDL:
		w.PutCOctetString(d.DLName)
	default:
		d.SME.write(w)
	}
}

func readDestAddress(r *Reader) (DestAddress, error) {
	flag, err := r.ReadU8("dest_flag")
	if err != nil {
		return DestAddress{}, err
	}
	switch flag {
	case destFlagSME:
		addr, err := readAddressField(r, "dest", maxDestAddrLen)
		if err != nil {
			return DestAddress{}, err
		}
		return DestAddress{Flag: flag, SME: addr}, nil
	case destFlagDL:
		name, err := r.ReadCOctetString("dl_name", maxDLNameLen)
		if err != nil {
			return DestAddress{}, err
		}
		return DestAddress{Flag: flag, DLName: name}, nil
	default:
		return DestAddress{}, &InvalidEnum{Field: "dest_flag", Value: int(flag)}
	}
}

// SubmitMulti submits a short message to between 1 and 254 destinations
// in one request.
type SubmitMulti struct {
	ServiceType          string
	Source               AddressField
	Dests                []DestAddress
	EsmClass             uint8
	ProtocolID           uint8
	PriorityFlag         uint8
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   uint8
	ReplaceIfPresentFlag uint8
	DataCoding           uint8
	SmDefaultMsgID       uint8
	ShortMessage         ShortMessage
	TLVs                 []TLV
}

func (SubmitMulti) CommandID() CommandID { return CmdSubmitMulti }

func (b SubmitMulti) BodyLen() int {
	n := cOctetWireLen(b.ServiceType) + b.Source.wireLen(maxSourceAddrLen) + 1
	for _, d := range b.Dests {
		n += d.wireLen()
	}
	n += 1 + 1 + 1 + cOctetWireLen(b.ScheduleDeliveryTime) + cOctetWireLen(b.ValidityPeriod)
	n += 1 + 1 + 1 + 1
	n += b.ShortMessage.wireLen()
	n += TLVListWireLen(b.TLVs)
	return n
}

func (b SubmitMulti) EncodeBody(w *Writer) error {
	if err := validateCOctetString("service_type", b.ServiceType, maxServiceTypeLen); err != nil {
		return err
	}
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if len(b.Dests) < 1 || len(b.Dests) > 254 {
		return &InvalidEnum{Field: "number_of_dests", Value: len(b.Dests)}
	}
	for _, d := range b.Dests {
		if err := d.validate(); err != nil {
			return err
		}
	}
	if b.ReplaceIfPresentFlag > 1 {
		return &InvalidEnum{Field: "replace_if_present_flag", Value: int(b.ReplaceIfPresentFlag)}
	}
	if err := b.ShortMessage.validate(); err != nil {
		return err
	}

	w.PutCOctetString(b.ServiceType)
	b.Source.write(w)
	w.PutU8(uint8(len(b.Dests)))
	for _, d := range b.Dests {
		d.write(w)
	}
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
	return nil
}

// UnsuccessSme is one entry of submit_multi_resp's unsuccess list: a
// destination the SMSC could not accept, with its error_status.
type UnsuccessSme struct {
	Addr        AddressField
	ErrorStatus CommandStatus
}

func (u UnsuccessSme) wireLen() int { return 2 + cOctetWireLen(u.Addr.Address) + 4 }

// SubmitMultiResp answers a SubmitMulti: a message_id for the batch plus
// the list of destinations that failed.
type SubmitMultiResp struct {
	MessageID string
	Unsuccess []UnsuccessSme
}

func (SubmitMultiResp) CommandID() CommandID { return CmdSubmitMultiResp }

func (b SubmitMultiResp) BodyLen() int {
	n := cOctetWireLen(b.MessageID) + 1
	for _, u := range b.Unsuccess {
		n += u.wireLen()
	}
	return n
}

func (b SubmitMultiResp) EncodeBody(w *Writer) error {
	if err := validateCOctetString("message_id", b.MessageID, maxMessageIDLen); err != nil {
		return err
	}
	if len(b.Unsuccess) > 254 {
		return &InvalidEnum{Field: "no_unsuccess", Value: len(b.Unsuccess)}
	}
	w.PutCOctetString(b.MessageID)
	w.PutU8(uint8(len(b.Unsuccess)))
	for _, u := range b.Unsuccess {
		u.Addr.write(w)
		w.PutU32(uint32(u.ErrorStatus))
	}
	return nil
}

func init() {
	register(CmdSubmitMulti, func(r *Reader) (Body, error) {
		var b SubmitMulti
		var err error
		if b.ServiceType, err = r.ReadCOctetString("service_type", maxServiceTypeLen); err != nil {
			return nil, err
		}
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		n, err := r.ReadU8("number_of_dests")
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 254 {
			return nil, &InvalidEnum{Field: "number_of_dests", Value: int(n)}
		}
		b.Dests = make([]DestAddress, 0, n)
		for i := 0; i < int(n); i++ {
			d, err := readDestAddress(r)
			if err != nil {
				return nil, err
			}
			b.Dests = append(b.Dests, d)
		}
		if b.EsmClass, err = r.ReadU8("esm_class"); err != nil {
			return nil, err
		}
		if b.ProtocolID, err = r.ReadU8("protocol_id"); err != nil {
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
		if b.RegisteredDelivery, err = r.ReadU8("registered_delivery"); err != nil {
			return nil, err
		}
		if b.ReplaceIfPresentFlag, err = r.ReadU8("replace_if_present_flag"); err != nil {
			return nil, err
		}
		if b.ReplaceIfPresentFlag > 1 {
			return nil, &InvalidEnum{Field: "replace_if_present_flag", Value: int(b.ReplaceIfPresentFlag)}
		}
		if b.DataCoding, err = r.ReadU8("data_coding"); err != nil {
			return nil, err
		}
		if b.SmDefaultMsgID, err = r.ReadU8("sm_default_msg_id"); err != nil {
			return nil, err
		}
		if b.ShortMessage, err = readShortMessage(r); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})

	register(CmdSubmitMultiResp, func(r *Reader) (Body, error) {
		var b SubmitMultiResp
		var err error
		if b.MessageID, err = r.ReadCOctetString("message_id", maxMessageIDLen); err != nil {
			return nil, err
		}
		n, err := r.ReadU8("no_unsuccess")
		if err != nil {
			return nil, err
		}
		b.Unsuccess = make([]UnsuccessSme, 0, n)
		for i := 0; i < int(n); i++ {
			addr, err := readAddressField(r, "dest", maxDestAddrLen)
			if err != nil {
				return nil, err
			}
			status, err := r.ReadU32("error_status")
			if err != nil {
				return nil, err
			}
			b.Unsuccess = append(b.Unsuccess, UnsuccessSme{Addr: addr, ErrorStatus: CommandStatus(status)})
		}
		return b, nil
	})
}
