package auth

import (
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/repository"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/service"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
