package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/iainh/smpp"
	"github.com/iainh/smpp/pdu"
)

// Config is the flag-derived configuration for the cmd/smpp-session demo
// binary. It maps directly onto an smpp.Config; see Session.
type Config struct {
	Address             string
	SystemID            string
	Password            string
	SystemType          string
	BindRole             string
	InterfaceVersion    string
	EnquireLinkInterval time.Duration
	ResponseTimeout     time.Duration
	MaxRatePerSecond    int
	LogLevel            string
}

// Load reads configuration from CLI flags.
func Load() (*Config, error) {
	cfg := &Config{
		Address:             "localhost:2775",
		BindRole:            "transceiver",
		InterfaceVersion:    "3.4",
		EnquireLinkInterval: 30 * time.Second,
		ResponseTimeout:     60 * time.Second,
		MaxRatePerSecond:    -1,
		LogLevel:            "info",
	}

	address := flag.String("address", cfg.Address, "SMSC address (host:port)")
	systemID := flag.String("system-id", "", "bind system_id")
	password := flag.String("password", "", "bind password")
	systemType := flag.String("system-type", "", "bind system_type")
	bindRole := flag.String("bind-role", cfg.BindRole, "bind role: transmitter, receiver, or transceiver")
	ifaceVersion := flag.String("interface-version", cfg.InterfaceVersion, "SMPP interface version: 3.4 or 5.0")
	enquireLink := flag.Duration("enquire-link-interval", cfg.EnquireLinkInterval, "enquire_link keepalive interval")
	responseTimeout := flag.Duration("response-timeout", cfg.ResponseTimeout, "per-request response timeout")
	maxRate := flag.Int("max-rate-per-second", cfg.MaxRatePerSecond, "submit-class token bucket rate, -1 disables")
	loglevel := flag.String("loglevel", cfg.LogLevel, "log level (debug, info, warn, error)")

	flag.Parse()

	cfg.Address = *address
	cfg.SystemID = *systemID
	cfg.Password = *password
	cfg.SystemType = *systemType
	cfg.BindRole = *bindRole
	cfg.InterfaceVersion = *ifaceVersion
	cfg.EnquireLinkInterval = *enquireLink
	cfg.ResponseTimeout = *responseTimeout
	cfg.MaxRatePerSecond = *maxRate
	cfg.LogLevel = *loglevel

	return cfg, nil
}

// SMPPConfig translates the flag-derived Config into an smpp.Config.
func (c *Config) SMPPConfig() (smpp.Config, error) {
	var role smpp.BindRole
	switch c.BindRole {
	case "transmitter":
		role = smpp.RoleTransmitter
	case "receiver":
		role = smpp.RoleReceiver
	case "transceiver":
		role = smpp.RoleTransceiver
	default:
		return smpp.Config{}, fmt.Errorf("config: unknown bind-role %q", c.BindRole)
	}

	var version uint8
	switch c.InterfaceVersion {
	case "3.4":
		version = pdu.Version34
	case "5.0":
		version = pdu.Version50
	default:
		return smpp.Config{}, fmt.Errorf("config: unknown interface-version %q", c.InterfaceVersion)
	}

	return smpp.Config{
		Address:             c.Address,
		SystemID:            c.SystemID,
		Password:            c.Password,
		SystemType:          c.SystemType,
		InterfaceVersion:    version,
		BindRole:            role,
		EnquireLinkInterval: c.EnquireLinkInterval,
		ResponseTimeout:     c.ResponseTimeout,
		MaxRatePerSecond:    c.MaxRatePerSecond,
	}, nil
}
