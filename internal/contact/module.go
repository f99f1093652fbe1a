package contact

import (
	"github.com/designdynasty/authkit/internal/contact/inbound"
	"github.com/designdynasty/authkit/internal/contact/outbound/email"
	"github.com/designdynasty/authkit/internal/contact/outbound/store"
	"github.com/designdynasty/authkit/internal/contact/usecase"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/router"
	"github.com/designdynasty/authkit/internal/pkg/storage"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
)

type Dependency struct {
	Router      *router.Router             `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	RefID       uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoStore := store.New(
		dep.Storage,
		dep.Config.GetString("modules.contact.bucket"),
		dep.Config.GetHour("modules.contact.link_ttl_hours"),
		dep.Instrument,
	)
	repoEmail := email.New(
		dep.Mail,
		dep.Config.GetString("email.from"),
		dep.Config.GetString("modules.contact.owner_email"),
		dep.Instrument,
	)

	uc := usecase.New(usecase.Dependency{
		RepoEmail:   repoEmail,
		RepoStore:   repoStore,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		RefID:       dep.RefID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
