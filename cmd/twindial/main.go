// twindial serves a fake Twilio REST API backed by an in-process fake
// client: requests are validated like the real API, recorded in a call
// ledger, and answered with synthesized or fixture-configured responses.
// Nothing ever reaches the real provider.
package main

import (
	"log"

	"github.com/wondertwin-ai/twindial/internal/api"
	"github.com/wondertwin-ai/twindial/internal/callback"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/fixture"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

func main() {
	cfg := httpd.ParseFlags("twindial")
	if cfg.Port == 0 {
		cfg.Port = 12100
	}

	srv := httpd.New(cfg)

	// Build the fake client, seeded from a fixture when one is given.
	var client *twindial.Client
	if cfg.FixtureFile != "" {
		f, err := fixture.Load(cfg.FixtureFile)
		if err != nil {
			log.Fatalf("failed to load fixture: %v", err)
		}
		client = f.NewClient()
		srv.Logger.Info("loaded fixture", "file", cfg.FixtureFile)
	} else {
		client = twindial.New(twindial.Config{
			AccountSID: cfg.AccountSID,
			AuthToken:  cfg.AuthToken,
		})
	}

	// Status callbacks are signed with the client's auth token, so receivers
	// can validate them exactly as they would validate the real provider's.
	dispatcher := callback.New(client.AuthToken(), srv.Logger)

	handler := api.NewHandler(client, dispatcher, srv.Logger)
	handler.SetDefaultCallbackURL(cfg.CallbackURL)
	handler.SetRequestLog(srv.ReqLog)
	handler.Routes(srv.Router)

	srv.Logger.Info("twindial ready",
		"port", cfg.Port,
		"account_sid", client.AccountSID(),
	)

	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
