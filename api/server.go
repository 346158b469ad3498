package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/models"
	"github.com/LedgerPay/LedgerPay-Backend/providers"
	"github.com/LedgerPay/LedgerPay-Backend/providers/fiat"
	"github.com/LedgerPay/LedgerPay-Backend/providers/identity"
	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/services/notification"
	"github.com/LedgerPay/LedgerPay-Backend/services/security"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router     *gin.Engine
	store      db.TxStore
	config     *utils.Config
	logger     *logging.Logger
	provider   *providers.ProviderService
	cache      *security.Cache
	identity   *identity.GoogleProvider
	fiat       *fiat.PaystackProvider
	mailer     *notification.Plunk
	keyService *apikey.APIKeyService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	store := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger(c)
	p := providers.NewProviderService()

	// Set up the payment processor
	fp := fiat.NewFiatProvider(envPath, l)
	p.AddProvider(fp)

	registerValidators()

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:     g,
		store:      store,
		config:     c,
		logger:     l,
		provider:   p,
		cache:      security.NewCache(),
		identity:   identity.NewGoogleProvider(c),
		fiat:       fp,
		mailer:     notification.NewPlunk(c),
		keyService: apikey.NewAPIKeyService(store, l),
	}
}

// registerValidators wires custom binding tags into gin's validator engine.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
			_, err := apikey.ParseExpiry(fl.Field().String(), time.Now())
			return err == nil
		})
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to LedgerPay!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallet{}.router(s)
	Keys{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
