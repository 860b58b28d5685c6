package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/goproof/internal/mailer"
	"github.com/shandysiswandi/goproof/internal/passcode"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.passcode.enabled") {
		if err := passcode.New(passcode.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			Codegen:    a.codegen,
			UID:        a.uid,
			OID:        a.oid,
			HMAC:       a.hmac,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module passcode", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.mailer.enabled") {
		if err := mailer.New(mailer.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Router:      a.router,
			Mail:        a.mail,
			Idempotency: a.idemp,
		}); err != nil {
			slog.Error("failed to init module mailer", "error", err)
			os.Exit(1)
		}
	}
}
