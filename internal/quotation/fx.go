package quotation

import (
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/repository"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quotation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
