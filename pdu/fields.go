package pdu

// AddressField is the recurring (ton, npi, address) triple used by
// source/destination/esme addresses across most PDUs.
type AddressField struct {
	TON     uint8
	NPI     uint8
	Address string // C-Octet string, caller-specified max length
}

func readAddressField(r *Reader, prefix string, maxAddrLen int) (AddressField, error) {
	ton, err := r.ReadU8(prefix + "_ton")
	if err != nil {
		return AddressField{}, err
	}
	npi, err := r.ReadU8(prefix + "_npi")
	if err != nil {
		return AddressField{}, err
	}
	addr, err := r.ReadCOctetString(prefix+"_addr", maxAddrLen)
	if err != nil {
		return AddressField{}, err
	}
	return AddressField{TON: ton, NPI: npi, Address: addr}, nil
}

func (a AddressField) wireLen(maxAddrLen int) int {
	return 2 + cOctetWireLen(a.Address)
}

func (a AddressField) validate(prefix string, maxAddrLen int) error {
	return validateCOctetString(prefix+"_addr", a.Address, maxAddrLen)
}

func (a AddressField) write(w *Writer) {
	w.PutU8(a.TON)
	w.PutU8(a.NPI)
	w.PutCOctetString(a.Address)
}

// ShortMessage is an octet string preceded by its own length octet
// (0..254), per the sm_length/short_message pair in submit_sm,
// deliver_sm, and replace_sm.
type ShortMessage struct {
	Bytes []byte
}

func readShortMessage(r *Reader) (ShortMessage, error) {
	n, err := r.ReadU8("sm_length")
	if err != nil {
		return ShortMessage{}, err
	}
	if n > 254 {
		return ShortMessage{}, &InvalidEnum{Field: "sm_length", Value: int(n)}
	}
	b, err := r.ReadOctetString("short_message", int(n))
	if err != nil {
		return ShortMessage{}, err
	}
	return ShortMessage{Bytes: b}, nil
}

func (s ShortMessage) wireLen() int { return 1 + len(s.Bytes) }

func (s ShortMessage) validate() error {
	if len(s.Bytes) > 254 {
		return &InvalidEnum{Field: "sm_length", Value: len(s.Bytes)}
	}
	return nil
}

func (s ShortMessage) write(w *Writer) {
	w.PutU8(uint8(len(s.Bytes)))
	w.PutOctetString(s.Bytes)
}
