package pricing

import (
	"github.com/ParthhMahajann/rera-quotation-system/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(service.New),
)
