package identity

import (
	"context"

	"github.com/designdynasty/authkit/internal/identity/inbound"
	"github.com/designdynasty/authkit/internal/identity/outbound/db"
	"github.com/designdynasty/authkit/internal/identity/outbound/email"
	"github.com/designdynasty/authkit/internal/identity/outbound/mq"
	"github.com/designdynasty/authkit/internal/identity/usecase"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goroutine"
	"github.com/designdynasty/authkit/internal/pkg/hash"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/messaging"
	"github.com/designdynasty/authkit/internal/pkg/otp"
	"github.com/designdynasty/authkit/internal/pkg/router"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependency struct {
	Database   *mongo.Database            `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	SecretUUID uid.StringID               `validate:"required"`
	OtpGen     otp.Generator              `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.Database, dep.Instrument)
	if err := dbAuth.EnsureIndexes(ctx); err != nil {
		return err
	}

	repoMsg := mq.NewMessaging(dep.Messaging, dep.UUID, dep.Instrument)
	repoEmail := email.New(dep.Mail, dep.Config.GetString("email.from"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		RepoEmail:     repoEmail,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UUID:          dep.UUID,
		SecretUUID:    dep.SecretUUID,
		OtpGen:        dep.OtpGen,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
