// Package providers wires external document providers.
package providers

import (
	"github.com/ParthhMahajann/rera-quotation-system/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	fx.Provide(pdf.New),
)
