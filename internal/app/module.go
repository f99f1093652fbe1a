package app

import (
	"log/slog"
	"os"

	"github.com/designdynasty/authkit/internal/contact"
	"github.com/designdynasty/authkit/internal/identity"
	"github.com/designdynasty/authkit/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(a.ctx, identity.Dependency{
			Database:   a.database,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			SecretUUID: a.secretUUID,
			OtpGen:     a.otpGen,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Mail:        a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.contact.enabled") {
		if err := contact.New(contact.Dependency{
			Router:      a.router,
			Storage:     a.storage,
			Mail:        a.mail,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			RefID:       a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module contact", "error", err)
			os.Exit(1)
		}
	}
}
