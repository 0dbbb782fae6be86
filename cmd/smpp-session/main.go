// This app binds a single SMPP session to an SMSC and relays inbound
// deliver_sm/data_sm traffic to the log until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iainh/smpp"
	"github.com/iainh/smpp/internal/config"
	"github.com/iainh/smpp/internal/logging"
	"github.com/iainh/smpp/pdu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	smppCfg, err := cfg.SMPPConfig()
	if err != nil {
		logger.Fatalf("bad configuration: %v", err)
	}

	logger.Infof("dialing %s as %s", smppCfg.Address, smppCfg.BindRole)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	sess, err := smpp.ConnectAndBind(ctx, smppCfg, logger)
	cancel()
	if err != nil {
		logger.Fatalf("bind failed: %v", err)
	}

	go relayInbound(sess, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Infof("signal received: %s, unbinding...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := sess.UnbindAndClose(shutdownCtx); err != nil {
		logger.Errorf("unbind error: %v", err)
	} else {
		logger.Info("session closed cleanly")
	}
}

// relayInbound drains NextIncoming and auto-acknowledges deliver_sm/data_sm
// so the peer never sees a response timeout during the demo.
func relayInbound(sess *smpp.Session, logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
}) {
	for {
		req, err := sess.NextIncoming(context.Background())
		if err != nil {
			return
		}

		logger.Infof("inbound %s seq=%d", req.CommandID, req.SequenceNumber)

		switch req.Body.(type) {
		case pdu.DeliverSm:
			if err := sess.Respond(req.SequenceNumber, pdu.DeliverSmResp{}); err != nil {
				logger.Warnf("failed to respond to deliver_sm: %v", err)
			}
		case pdu.DataSm:
			if err := sess.Respond(req.SequenceNumber, pdu.DataSmResp{}); err != nil {
				logger.Warnf("failed to respond to data_sm: %v", err)
			}
		}
	}
}
