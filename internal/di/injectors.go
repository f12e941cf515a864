//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"qrscan/internal"
	"qrscan/internal/controllers"
	"qrscan/internal/geo"
	"qrscan/internal/providers"
	"qrscan/internal/qrcode"
	"qrscan/internal/render"
	"qrscan/internal/repository"
	"qrscan/internal/scan"
	"qrscan/internal/services"
	"qrscan/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		repository.NewScanRepository,
		scan.NewDefaultClassifier,
		scan.NewDefaultGenerator,
		geo.NewLocator,
		services.NewScanService,
		render.NewRenderer,
		qrcode.NewPngEncoder,
		controllers.NewQrController,
		controllers.NewScanController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
