package controllers

import (
	"github.com/google/uuid"
	"net/http"
	"qrscan/internal/providers"
	"qrscan/internal/qrcode"
	"qrscan/internal/structures"
	"strconv"
	"strings"
)

const scanPathPrefix = "/api/scan/"

type QrController struct {
	conf    *structures.Config
	logger  providers.Logger
	encoder qrcode.EncoderInterface
	metrics providers.MetricsProviderInterface
}

func NewQrController(conf *structures.Config, logger providers.Logger, encoder qrcode.EncoderInterface, metrics providers.MetricsProviderInterface) *QrController {
	return &QrController{
		conf:    conf,
		logger:  logger,
		encoder: encoder,
		metrics: metrics,
	}
}

// Generate mints a fresh tracking URL and returns it as a PNG QR code.
func (qc *QrController) Generate(w http.ResponseWriter, r *http.Request) {
	target := qc.ScanURL(uuid.NewString())

	png, err := qc.encoder.Encode(target, qc.size(r))
	if err != nil {
		qc.logger.Errorf(providers.TypeGet, "Error generating QR code for %s: %s", target, err)
		writeMessage(w, http.StatusInternalServerError, "Error generating QR code")
		return
	}
	qc.metrics.IncQrGenerated()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (qc *QrController) ScanURL(slug string) string {
	return strings.TrimRight(qc.conf.Scan.PublicBaseURL, "/") + scanPathPrefix + slug
}

// size reads ?size=, falling back to the configured default and capping at
// qr.maxSize.
func (qc *QrController) size(r *http.Request) int {
	size := qc.conf.Qr.Size
	if raw := r.URL.Query().Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	if qc.conf.Qr.MaxSize > 0 && size > qc.conf.Qr.MaxSize {
		size = qc.conf.Qr.MaxSize
	}
	return size
}
