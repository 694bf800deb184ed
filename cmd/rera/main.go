package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/ParthhMahajann/rera-quotation-system/internal/auth"
	"github.com/ParthhMahajann/rera-quotation-system/internal/authorization"
	"github.com/ParthhMahajann/rera-quotation-system/internal/catalog"
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	"github.com/ParthhMahajann/rera-quotation-system/internal/migration"
	"github.com/ParthhMahajann/rera-quotation-system/internal/observability"
	"github.com/ParthhMahajann/rera-quotation-system/internal/pricing"
	"github.com/ParthhMahajann/rera-quotation-system/internal/providers"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation"
	"github.com/ParthhMahajann/rera-quotation-system/internal/server"
	"github.com/ParthhMahajann/rera-quotation-system/pkg/db"
)

// RegisterSnowflake provides the ID generator node. Node 1 is fine for a
// single-process deployment; multi-node setups should derive this from the
// environment instead.
func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		catalog.Module,
		auth.Module,
		authorization.Module,
		pricing.Module,
		quotation.Module,
		providers.Module,

		server.Module,
	).Run()
}
