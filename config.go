package smpp

import (
	"time"

	"github.com/iainh/smpp/pdu"
)

// Config holds everything needed to dial and bind a session (spec §6
// "Session configuration"). Library callers build one directly; the
// cmd/smpp-session example populates it from internal/config's
// flag-parsed settings.
type Config struct {
	// Address is the host:port of the SMSC, default port 2775.
	Address string

	SystemID   string
	Password   string
	SystemType string

	// InterfaceVersion is the version requested at bind time:
	// pdu.Version34 or pdu.Version50.
	InterfaceVersion uint8

	BindRole BindRole

	// EnquireLinkInterval is the period at which the runtime sends an
	// unsolicited enquire_link. Other outbound traffic does not postpone
	// the next probe. Default 30s.
	EnquireLinkInterval time.Duration

	// ResponseTimeout bounds how long a PendingRequest waits for its
	// matching response, including the bind handshake itself and the
	// enquire_link liveness probe. Default 60s.
	ResponseTimeout time.Duration

	// MaxRatePerSecond bounds outbound submit-class traffic under v5.0
	// flow control (spec §4.6). Zero (the Go zero value, so also the
	// default for a caller who doesn't set this field) installs a bucket
	// that never refills: every submit-class send fails fast with
	// ErrBackpressure. -1 disables flow control entirely; callers that
	// want it off must set it explicitly. ConnectAndBind rejects values
	// below -1.
	MaxRatePerSecond int

	// MaxFrameSize bounds command_length accepted by the frame reader.
	// Default pdu.MaxCommandLength.
	MaxFrameSize uint32
}

// withDefaults returns a copy of cfg with zero-valued optional fields
// filled in per spec §6's stated defaults.
func (cfg Config) withDefaults() Config {
	if cfg.InterfaceVersion == 0 {
		cfg.InterfaceVersion = pdu.Version34
	}
	if cfg.EnquireLinkInterval == 0 {
		cfg.EnquireLinkInterval = 30 * time.Second
	}
	if cfg.ResponseTimeout == 0 {
		cfg.ResponseTimeout = 60 * time.Second
	}
	if cfg.MaxFrameSize == 0 {
		cfg.MaxFrameSize = pdu.MaxCommandLength
	}
	return cfg
}
