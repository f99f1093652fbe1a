package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goroutine"
	"github.com/designdynasty/authkit/internal/pkg/hash"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/messaging"
	"github.com/designdynasty/authkit/internal/pkg/otp"
	"github.com/designdynasty/authkit/internal/pkg/router"
	"github.com/designdynasty/authkit/internal/pkg/storage"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine  *goroutine.Manager
	validator  validator.Validator
	clock      clock.Clocker
	bcrypt     hash.Hash
	uid        uid.NumberID
	uuid       uid.StringID
	secretUUID uid.StringID
	otpGen     otp.Generator
	jwt        jwt.JWT

	// resources
	mongoClient *mongo.Client
	database    *mongo.Database
	cacheConn   *redis.Client
	idemp       idempotency.Idempotency
	mail        mail.Mail
	messaging   messaging.Messaging
	storage     storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
