package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"qrscan/internal/geo"
	"qrscan/internal/models"
	"qrscan/internal/render"
	"qrscan/internal/repository"
	"qrscan/internal/scan"
	"qrscan/internal/services"
	"qrscan/internal/structures"
	"qrscan/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelUA = "Mozilla/5.0 (Linux; Android 14; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

// --- local stubs (scoped to controller tests) ---

type stubScanService struct {
	scanResult  *services.ScanResult
	scanErr     error
	record      *models.ScanRecord
	getErr      error
	updateErr   error
	lastRequest services.ScanRequest
	lastModel   string
}

func (s *stubScanService) Scan(_ context.Context, req services.ScanRequest) (*services.ScanResult, error) {
	s.lastRequest = req
	return s.scanResult, s.scanErr
}

func (s *stubScanService) GetBySlug(_ context.Context, _ string) (*models.ScanRecord, error) {
	return s.record, s.getErr
}

func (s *stubScanService) UpdateLatestDeviceModel(_ context.Context, model string) (*models.ScanRecord, error) {
	s.lastModel = model
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.ScanRecord{DeviceModel: model}, nil
}

func jsonRenderer() render.RendererInterface {
	return render.NewRendererWithOptions(render.Options{Format: render.FormatJSON})
}

func newScanMux(sc *ScanController) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scan/{slug}", sc.Scan)
	mux.HandleFunc("GET /api/scan/details/{slug}", sc.GetDetails)
	mux.HandleFunc("POST /api/update-device-model", sc.UpdateDeviceModel)
	return mux
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestScan_PassesRequestData(t *testing.T) {
	svc := &stubScanService{scanResult: &services.ScanResult{
		Record:  &models.ScanRecord{Slug: "1a2b3c4d-21.77-Android"},
		Outcome: services.OutcomeCreated,
		Title:   services.TitleCreated,
		Message: services.MessageCreated,
	}}
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, jsonRenderer()))

	req := httptest.NewRequest(http.MethodGet, "/api/scan/abc", nil)
	req.Header.Set("User-Agent", pixelUA)
	req.Header.Set("X-Forwarded-For", "192.168.21.77, 10.0.0.1")
	req.Header.Set("Sec-CH-UA-Model", `"Pixel 7"`)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pixelUA, svc.lastRequest.UserAgent)
	assert.Equal(t, "192.168.21.77", svc.lastRequest.IP)
	assert.Equal(t, "Pixel 7", svc.lastRequest.Hints.Model)

	resp := decode(t, rr)
	assert.Equal(t, services.TitleCreated, resp["message"])
	assert.Equal(t, services.MessageCreated, resp["detail"])
}

func TestScan_ServiceError(t *testing.T) {
	logger := &testutil.MockLogger{}
	svc := &stubScanService{scanErr: errors.New("db down")}
	mux := newScanMux(NewScanController(logger, svc, jsonRenderer()))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scan/abc", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error logging scan details.")
	assert.Equal(t, 1, logger.CountLevel("error"))
}

func TestGetDetails(t *testing.T) {
	svc := &stubScanService{record: &models.ScanRecord{Slug: "1a2b3c4d-21.77-Android", Country: "Local Network"}}
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, jsonRenderer()))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scan/details/1a2b3c4d-21.77-Android", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "Scan details fetched successfully", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "1a2b3c4d-21.77-Android", data["slug"])
	assert.Equal(t, "Local Network", data["country"])
}

func TestGetDetails_NotFound(t *testing.T) {
	svc := &stubScanService{getErr: models.ErrScanNotFound}
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, jsonRenderer()))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scan/details/missing", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Scan details not found.", decode(t, rr)["message"])
}

func TestGetDetails_StorageError(t *testing.T) {
	svc := &stubScanService{getErr: errors.New("timeout")}
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, jsonRenderer()))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scan/details/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error fetching scan details", decode(t, rr)["message"])
}

func TestUpdateDeviceModel(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		updateErr error
		wantCode  int
		wantMsg   string
	}{
		{"updated", `{"deviceModel":"Pixel 7"}`, nil, http.StatusOK, "Device model updated"},
		{"missing field", `{}`, nil, http.StatusBadRequest, "Device model is required"},
		{"empty value", `{"deviceModel":""}`, nil, http.StatusBadRequest, "Device model is required"},
		{"malformed json", `{"deviceModel":`, nil, http.StatusBadRequest, "Device model is required"},
		{"blank value", `{"deviceModel":"  "}`, services.ErrDeviceModelRequired, http.StatusBadRequest, "Device model is required"},
		{"no scans", `{"deviceModel":"Pixel 7"}`, services.ErrNoRecentScans, http.StatusNotFound, "No recent scans found"},
		{"storage error", `{"deviceModel":"Pixel 7"}`, errors.New("boom"), http.StatusInternalServerError, "Error updating device model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubScanService{updateErr: tt.updateErr}
			mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, jsonRenderer()))

			req := httptest.NewRequest(http.MethodPost, "/api/update-device-model", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			resp := decode(t, rr)
			assert.Equal(t, tt.wantMsg, resp["message"])
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "Pixel 7", resp["deviceModel"])
			}
		})
	}
}

func TestUpdateDeviceModel_WrongMethod(t *testing.T) {
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, &stubScanService{}, jsonRenderer()))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/update-device-model", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// End to end through the real service and in-memory storage.
func TestScanFlow_CreateRepeatAndUpdateModel(t *testing.T) {
	conf := &structures.Config{Scan: structures.ScanConfig{ResponseFormat: render.FormatJSON}}
	repo := repository.NewMemoryRepository()
	svc := services.NewScanService(conf, &testutil.MockLogger{}, repo, scan.NewDefaultClassifier(), scan.NewGenerator(), geo.DisabledLocator{}, testutil.NewMockMetrics())
	mux := newScanMux(NewScanController(&testutil.MockLogger{}, svc, render.NewRenderer(conf)))

	scanOnce := func() map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, "/api/scan/printed-code", nil)
		req.Header.Set("User-Agent", pixelUA)
		req.RemoteAddr = "192.168.21.77:52100"
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		return decode(t, rr)
	}

	first := scanOnce()
	assert.Equal(t, "QR Code Scanned Successfully", first["message"])
	assert.Equal(t, "Thank you for scanning!", first["detail"])

	second := scanOnce()
	assert.Equal(t, "QR Code Scanned Again", second["message"])
	assert.Equal(t, "Your details have been updated.", second["detail"])
	assert.Equal(t, 1, repo.Len())

	slug := first["data"].(map[string]interface{})["slug"].(string)
	assert.True(t, strings.HasSuffix(slug, "-21.77-Android"))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/update-device-model", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/update-device-model", strings.NewReader(`{"deviceModel":"Pixel 7"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/scan/details/"+slug, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Pixel 7", decode(t, rr)["data"].(map[string]interface{})["deviceModel"])
}
