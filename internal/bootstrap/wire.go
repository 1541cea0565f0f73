package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/ekklesia/church-directory/internal/application/auth"
	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/config"
	"github.com/ekklesia/church-directory/internal/database"
	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/infrastructure/db/postgres"
	"github.com/ekklesia/church-directory/internal/infrastructure/security"
	"github.com/ekklesia/church-directory/internal/logger"
	http_handlers "github.com/ekklesia/church-directory/internal/transport/http/handlers"
	"github.com/ekklesia/church-directory/internal/transport/http/middleware"
	"github.com/ekklesia/church-directory/internal/transport/http/response"
	"github.com/ekklesia/church-directory/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewDB      func(addr string, debug bool) (DBCloser, error)
	MigrateUp  func(databaseURL string) error
	NewRouter  func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		MigrateUp: database.RunMigrations,
		NewRouter: router.New,
	}
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) migrations
	if deps.MigrateUp != nil {
		if err := deps.MigrateUp(cfg.DBAddr); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	// 3) repositories
	userRepo := postgres.NewUserRepo(sqlDB)
	churchRepo := postgres.NewChurchRepo(sqlDB)

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)

	// 5) services
	authSvc := auth.NewService(userRepo, hasher, signer)
	churchSvc := church.NewService(churchRepo, churchRepo)

	// 6) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	churchH := http_handlers.NewChurchHandler(churchSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)
	curatorMW := middleware.RequireAtLeast(domain.RoleDataCurator, response.WriteError)
	adminMW := middleware.RequireAtLeast(domain.RoleAdmin, response.WriteError)

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:    healthH,
		Auth:      authH,
		Churches:  churchH,
		AuthMW:    authMW,
		CuratorMW: curatorMW,
		AdminMW:   adminMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() { runCleanup(cleanupFns) }
	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	// reverse order, like defers
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
