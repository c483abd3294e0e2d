package app

import (
	"net/http"

	"github.com/Raimguhinov/alarm-go/internal/alarm/db"
	"github.com/Raimguhinov/alarm-go/internal/auth"
	"github.com/Raimguhinov/alarm-go/internal/config"
	mwlogger "github.com/Raimguhinov/alarm-go/internal/delivery/http/middleware/logger"
	v1 "github.com/Raimguhinov/alarm-go/internal/delivery/http/v1"
	"github.com/Raimguhinov/alarm-go/pkg/logger"
	"github.com/Raimguhinov/alarm-go/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func SetupRouter(l *logger.Logger, pg *postgres.Postgres, cfg *config.Config) http.Handler {
	s := chi.NewRouter()
	s.Use(middleware.RequestID)
	s.Use(mwlogger.New(l))
	s.Use(middleware.Recoverer)
	s.Use(cors.New(cors.Options{
		AllowedMethods:   cfg.HTTP.CORS.AllowedMethods,
		AllowedOrigins:   cfg.HTTP.CORS.AllowedOrigins,
		AllowCredentials: cfg.HTTP.CORS.AllowCredentials,
		AllowedHeaders:   cfg.HTTP.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.HTTP.CORS.ExposedHeaders,
		Debug:            cfg.HTTP.CORS.Debug,
	}).Handler)

	ownerResolver := auth.NewStaticResolver(cfg.HTTP.DefaultOwner)
	s.Use(ownerResolver.Middleware())

	repo := db.NewRepository(pg, l)
	handler := v1.NewHandler(repo, l, cfg.HTTP.DefaultOwner, cfg.App.Version)
	handler.Register(s)

	return s
}
