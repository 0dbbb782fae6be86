package pdu

// Unbind carries no mandatory fields.
type Unbind struct{}

func (Unbind) CommandID() CommandID     { return CmdUnbind }
func (Unbind) BodyLen() int             { return 0 }
func (Unbind) EncodeBody(*Writer) error { return nil }

// UnbindResp carries no mandatory fields.
type UnbindResp struct{}

func (UnbindResp) CommandID() CommandID     { return CmdUnbindResp }
func (UnbindResp) BodyLen() int             { return 0 }
func (UnbindResp) EncodeBody(*Writer) error { return nil }

// EnquireLink carries no mandatory fields.
type EnquireLink struct{}

func (EnquireLink) CommandID() CommandID     { return CmdEnquireLink }
func (EnquireLink) BodyLen() int             { return 0 }
func (EnquireLink) EncodeBody(*Writer) error { return nil }

// EnquireLinkResp carries no mandatory fields.
type EnquireLinkResp struct{}

func (EnquireLinkResp) CommandID() CommandID     { return CmdEnquireLinkResp }
func (EnquireLinkResp) BodyLen() int             { return 0 }
func (EnquireLinkResp) EncodeBody(*Writer) error { return nil }

// GenericNack carries no mandatory fields; it answers a frame or
// decode error that predates knowing the offending PDU's own shape.
type GenericNack struct{}

func (GenericNack) CommandID() CommandID     { return CmdGenericNack }
func (GenericNack) BodyLen() int             { return 0 }
func (GenericNack) EncodeBody(*Writer) error { return nil }

func init() {
	register(CmdUnbind, func(r *Reader) (Body, error) {
		return Unbind{}, nil
	})
	register(CmdUnbindResp, func(r *Reader) (Body, error) {
		return UnbindResp{}, nil
	})
	register(CmdEnquireLink, func(r *Reader) (Body, error) {
		return EnquireLink{}, nil
	})
	register(CmdEnquireLinkResp, func(r *Reader) (Body, error) {
		return EnquireLinkResp{}, nil
	})
	register(CmdGenericNack, func(r *Reader) (Body, error) {
		return GenericNack{}, nil
	})
}
