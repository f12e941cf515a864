package internal

import (
	"net/http"
	"qrscan/internal/controllers"
	"qrscan/internal/providers"
)

func InitRoutes(qrController *controllers.QrController, scanController *controllers.ScanController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/qr", http.HandlerFunc(qrController.Generate))
	routers.Get("/api/scan/{slug}", http.HandlerFunc(scanController.Scan))
	routers.Get("/api/scan/details/{slug}", http.HandlerFunc(scanController.GetDetails))
	routers.Post("/api/update-device-model", http.HandlerFunc(scanController.UpdateDeviceModel))
	return routers
}
