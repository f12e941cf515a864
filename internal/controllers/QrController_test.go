package controllers

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"qrscan/internal/qrcode"
	"qrscan/internal/structures"
	"qrscan/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEncoder struct {
	content string
	size    int
	err     error
}

func (e *recordingEncoder) Encode(content string, size int) ([]byte, error) {
	e.content = content
	e.size = size
	if e.err != nil {
		return nil, e.err
	}
	return []byte("png"), nil
}

func qrConfig() *structures.Config {
	return &structures.Config{
		Scan: structures.ScanConfig{PublicBaseURL: "https://qr.example.com/"},
		Qr:   structures.QrConfig{Size: 256, MaxSize: 1024},
	}
}

func TestQrGenerate_EncodesTrackingURL(t *testing.T) {
	enc := &recordingEncoder{}
	metrics := testutil.NewMockMetrics()
	qc := NewQrController(qrConfig(), &testutil.MockLogger{}, enc, metrics)

	rr := httptest.NewRecorder()
	qc.Generate(rr, httptest.NewRequest(http.MethodGet, "/api/qr", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "png", rr.Body.String())
	assert.True(t, strings.HasPrefix(enc.content, "https://qr.example.com/api/scan/"))
	assert.Len(t, strings.TrimPrefix(enc.content, "https://qr.example.com/api/scan/"), 36)
	assert.Equal(t, 256, enc.size)
	assert.Equal(t, 1, metrics.QrGenerated)
}

func TestQrGenerate_FreshSlugPerRequest(t *testing.T) {
	enc := &recordingEncoder{}
	qc := NewQrController(qrConfig(), &testutil.MockLogger{}, enc, testutil.NewMockMetrics())

	qc.Generate(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/qr", nil))
	first := enc.content
	qc.Generate(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/qr", nil))

	assert.NotEqual(t, first, enc.content)
}

func TestQrGenerate_Size(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 256},
		{"?size=512", 512},
		{"?size=5000", 1024},
		{"?size=-3", 256},
		{"?size=abc", 256},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			enc := &recordingEncoder{}
			qc := NewQrController(qrConfig(), &testutil.MockLogger{}, enc, testutil.NewMockMetrics())

			qc.Generate(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/qr"+tt.query, nil))
			assert.Equal(t, tt.want, enc.size)
		})
	}
}

func TestQrGenerate_EncoderError(t *testing.T) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	qc := NewQrController(qrConfig(), logger, &recordingEncoder{err: errors.New("too long")}, metrics)

	rr := httptest.NewRecorder()
	qc.Generate(rr, httptest.NewRequest(http.MethodGet, "/api/qr", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Error generating QR code"}`, rr.Body.String())
	assert.Equal(t, 1, logger.CountLevel("error"))
	assert.Equal(t, 0, metrics.QrGenerated)
}

func TestQrGenerate_RealEncoderProducesPNG(t *testing.T) {
	qc := NewQrController(qrConfig(), &testutil.MockLogger{}, qrcode.NewPngEncoder(), testutil.NewMockMetrics())

	rr := httptest.NewRecorder()
	qc.Generate(rr, httptest.NewRequest(http.MethodGet, "/api/qr?size=128", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}
