package pdu

// AlertNotification is sent by the SMSC to a receiver/transceiver ESME
// when a mobile subscriber becomes available after being unreachable.
// It has no response.
type AlertNotification struct {
	Source AddressField
	ESME   AddressField
	TLVs   []TLV
}

func (AlertNotification) CommandID() CommandID { return CmdAlertNotification }

func (b AlertNotification) BodyLen() int {
	return b.Source.wireLen(maxSourceAddrLen) + b.ESME.wireLen(maxDestAddrLen) + TLVListWireLen(b.TLVs)
}

func (b AlertNotification) EncodeBody(w *Writer) error {
	if err := b.Source.validate("source", maxSourceAddrLen); err != nil {
		return err
	}
	if err := b.ESME.validate("esme_addr", maxDestAddrLen); err != nil {
		return err
	}
	b.Source.write(w)
	b.ESME.write(w)
	WriteTLVList(w, b.TLVs)
	return nil
}

func init() {
	register(CmdAlertNotification, func(r *Reader) (Body, error) {
		var b AlertNotification
		var err error
		if b.Source, err = readAddressField(r, "source", maxSourceAddrLen); err != nil {
			return nil, err
		}
		if b.ESME, err = readAddressField(r, "esme_addr", maxDestAddrLen); err != nil {
			return nil, err
		}
		if b.TLVs, err = readTrailingTLVs(r); err != nil {
			return nil, err
		}
		return b, nil
	})
}
