package auth

import (
	"time"

	"github.com/facturio/facturio/internal/auth/repository"
	"github.com/facturio/facturio/internal/auth/service"
	"github.com/facturio/facturio/internal/auth/token"
	"github.com/facturio/facturio/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideIssuer),
	fx.Provide(service.New),
)

func provideIssuer(cfg config.Config) *token.Issuer {
	return token.NewIssuer(cfg.AuthJWTSecret, time.Duration(cfg.AuthTokenTTLHrs)*time.Hour)
}
