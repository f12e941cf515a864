package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"net/http"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"qrscan/internal/render"
	"qrscan/internal/scan"
	"qrscan/internal/services"
)

type ScanController struct {
	logger   providers.Logger
	service  services.ScanServiceInterface
	renderer render.RendererInterface
}

type detailsResponse struct {
	Message string             `json:"message"`
	Data    *models.ScanRecord `json:"data"`
}

type updateDeviceModelRequest struct {
	DeviceModel string `json:"deviceModel" validate:"required"`
}

type updateDeviceModelResponse struct {
	Message     string `json:"message"`
	DeviceModel string `json:"deviceModel"`
}

func NewScanController(logger providers.Logger, service services.ScanServiceInterface, renderer render.RendererInterface) *ScanController {
	return &ScanController{
		logger:   logger,
		service:  service,
		renderer: renderer,
	}
}

// Scan logs a visit of a tracking URL. The slug in the path only names the
// printed code; the stored record gets its own derived slug.
func (sc *ScanController) Scan(w http.ResponseWriter, r *http.Request) {
	req := services.ScanRequest{
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
		Hints:     scan.ClientHintsFromHeader(r.Header),
	}

	res, err := sc.service.Scan(r.Context(), req)
	if err != nil {
		sc.logger.Errorf(providers.TypeGet, "Error logging scan %s: %s", r.PathValue("slug"), err)
		http.Error(w, "Error logging scan details.", http.StatusInternalServerError)
		return
	}

	if err = sc.renderer.WriteScan(w, r, res.Title, res.Message, res.Record); err != nil {
		sc.logger.Errorf(providers.TypeGet, "Error rendering scan %s: %s", res.Record.Slug, err)
		http.Error(w, "Error logging scan details.", http.StatusInternalServerError)
	}
}

func (sc *ScanController) GetDetails(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	record, err := sc.service.GetBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrScanNotFound) {
		writeMessage(w, http.StatusNotFound, "Scan details not found.")
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypeGet, "Error fetching scan details %s: %s", slug, err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching scan details")
		return
	}

	writeJSON(w, http.StatusOK, detailsResponse{
		Message: "Scan details fetched successfully",
		Data:    record,
	})
}

func (sc *ScanController) UpdateDeviceModel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var payload updateDeviceModelRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Device model is required")
		return
	}
	if v := validate.Struct(&payload); !v.Validate() {
		writeMessage(w, http.StatusBadRequest, "Device model is required")
		return
	}

	record, err := sc.service.UpdateLatestDeviceModel(r.Context(), payload.DeviceModel)
	switch {
	case errors.Is(err, services.ErrDeviceModelRequired):
		writeMessage(w, http.StatusBadRequest, "Device model is required")
	case errors.Is(err, services.ErrNoRecentScans):
		writeMessage(w, http.StatusNotFound, "No recent scans found")
	case err != nil:
		sc.logger.Errorf(providers.TypePost, "Error updating device model: %s", err)
		writeMessage(w, http.StatusInternalServerError, "Error updating device model")
	default:
		writeJSON(w, http.StatusOK, updateDeviceModelResponse{
			Message:     "Device model updated",
			DeviceModel: record.DeviceModel,
		})
	}
}
