package render

import (
	"bytes"
	json "github.com/goccy/go-json"
	"github.com/munnerz/goautoneg"
	"net/http"
	"qrscan/internal/models"
	"qrscan/internal/scan"
	"qrscan/internal/structures"
	"strings"
)

const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatAuto = "auto"

	UpdateDeviceModelPath = "/api/update-device-model"

	contentTypeHTML = "text/html"
	contentTypeJSON = "application/json"
)

// AcceptCH lists the client hints a scan page asks the browser to send on
// later requests.
var AcceptCH = strings.Join([]string{scan.HeaderUAModel, scan.HeaderUAPlatform, scan.HeaderUAMobile}, ", ")

// ScanData is the public subset of a record echoed back to the visitor.
type ScanData struct {
	Slug           string `json:"slug"`
	DeviceType     string `json:"deviceType"`
	DeviceModel    string `json:"deviceModel"`
	OSName         string `json:"osName"`
	OSVersion      string `json:"osVersion"`
	BrowserName    string `json:"browserName"`
	BrowserVersion string `json:"browserVersion"`
	IPAddress      string `json:"ipAddress"`
}

type ScanPayload struct {
	Message string   `json:"message"`
	Detail  string   `json:"detail"`
	Data    ScanData `json:"data"`
}

type pageData struct {
	Title             string
	Message           string
	Device            string
	Data              ScanData
	AcceptCH          string
	UnknownDevice     string
	UpdateURL         string
	ClientHintsScript bool
	AnalyticsScript   bool
}

type Options struct {
	Format            string
	ClientHintsScript bool
	AnalyticsScript   bool
}

func OptionsFromConfig(conf *structures.Config) Options {
	return Options{
		Format:            conf.Scan.ResponseFormat,
		ClientHintsScript: conf.Scan.ClientHintsScript,
		AnalyticsScript:   conf.Scan.AnalyticsScript,
	}
}

type RendererInterface interface {
	Negotiate(r *http.Request) string
	Scan(title, message string, record *models.ScanRecord) ScanPayload
	WriteScan(w http.ResponseWriter, r *http.Request, title, message string, record *models.ScanRecord) error
}

// Renderer turns a stored scan into the visitor response. Output depends
// only on its inputs and Options.
type Renderer struct {
	opts Options
}

func NewRenderer(conf *structures.Config) RendererInterface {
	return &Renderer{opts: OptionsFromConfig(conf)}
}

func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Negotiate resolves the configured format for r. In auto mode JSON is used
// only when the Accept header ranks it above HTML.
func (rd *Renderer) Negotiate(r *http.Request) string {
	switch rd.opts.Format {
	case FormatJSON:
		return FormatJSON
	case FormatAuto:
		if goautoneg.Negotiate(r.Header.Get("Accept"), []string{contentTypeHTML, contentTypeJSON}) == contentTypeJSON {
			return FormatJSON
		}
		return FormatHTML
	default:
		return FormatHTML
	}
}

func (rd *Renderer) Scan(title, message string, record *models.ScanRecord) ScanPayload {
	return ScanPayload{
		Message: title,
		Detail:  message,
		Data: ScanData{
			Slug:           record.Slug,
			DeviceType:     record.DeviceType,
			DeviceModel:    record.DeviceModel,
			OSName:         record.OSName,
			OSVersion:      record.OSVersion,
			BrowserName:    record.BrowserName,
			BrowserVersion: record.BrowserVersion,
			IPAddress:      record.IPAddress,
		},
	}
}

func (rd *Renderer) WriteScan(w http.ResponseWriter, r *http.Request, title, message string, record *models.ScanRecord) error {
	payload := rd.Scan(title, message, record)

	if rd.Negotiate(r) == FormatJSON {
		gson, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(gson)
		return nil
	}

	page, err := rd.page(payload)
	if err != nil {
		return err
	}
	w.Header().Set("Accept-CH", AcceptCH)
	w.Header().Set("Content-Type", contentTypeHTML+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
	return nil
}

func (rd *Renderer) page(payload ScanPayload) ([]byte, error) {
	device := payload.Data.DeviceModel
	if device == "" {
		device = payload.Data.DeviceType
	}

	var buf bytes.Buffer
	err := scanPage.Execute(&buf, pageData{
		Title:             payload.Message,
		Message:           payload.Detail,
		Device:            device,
		Data:              payload.Data,
		AcceptCH:          AcceptCH,
		UnknownDevice:     scan.UnknownDevice,
		UpdateURL:         UpdateDeviceModelPath,
		ClientHintsScript: rd.opts.ClientHintsScript,
		AnalyticsScript:   rd.opts.AnalyticsScript,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
