package notification

import (
	"context"

	"github.com/designdynasty/authkit/internal/notification/inbound"
	"github.com/designdynasty/authkit/internal/notification/outbound/email"
	"github.com/designdynasty/authkit/internal/notification/usecase"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goroutine"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/messaging"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	Messaging   messaging.Messaging
	Idempotency idempotency.Idempotency
	Config      config.Config
	Instrument  instrument.Instrumentation
	UUID        uid.StringID
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Mail        mail.Mail
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoMail:    repoMail,
		Idempotency: dep.Idempotency,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Instrument:  dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
