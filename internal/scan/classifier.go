package scan

import (
	"github.com/mileusna/useragent"
	"net/http"
	"strings"
)

const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceBot     = "Bot"

	UnknownDevice  = "Unknown Device"
	UnknownOS      = "Unknown OS"
	UnknownVersion = "Unknown Version"
	UnknownBrowser = "Unknown Browser"

	HeaderUAModel    = "Sec-CH-UA-Model"
	HeaderUAPlatform = "Sec-CH-UA-Platform"
	HeaderUAMobile   = "Sec-CH-UA-Mobile"
)

// ClientHints carries the structured client-hint headers a browser chose to send.
type ClientHints struct {
	Model    string
	Platform string
	Mobile   string
}

// ClientHintsFromHeader reads Sec-CH-UA-* headers, unquoting sf-string values.
func ClientHintsFromHeader(h http.Header) ClientHints {
	return ClientHints{
		Model:    unquoteHint(h.Get(HeaderUAModel)),
		Platform: unquoteHint(h.Get(HeaderUAPlatform)),
		Mobile:   strings.TrimSpace(h.Get(HeaderUAMobile)),
	}
}

func unquoteHint(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	return strings.TrimSpace(v)
}

type ClientInfo struct {
	DeviceType     string `json:"deviceType"`
	DeviceModel    string `json:"deviceModel"`
	OSName         string `json:"osName"`
	OSVersion      string `json:"osVersion"`
	BrowserName    string `json:"browserName"`
	BrowserVersion string `json:"browserVersion"`
}

// Classifier turns a User-Agent and client hints into coarse categories.
// The brand table is copied at construction and never modified.
type Classifier struct {
	brands []BrandSignature
}

func NewClassifier(brands []BrandSignature) *Classifier {
	table := make([]BrandSignature, len(brands))
	copy(table, brands)
	return &Classifier{brands: table}
}

func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultBrandSignatures())
}

func (c *Classifier) Classify(userAgent string, hints ClientHints) ClientInfo {
	ua := useragent.Parse(userAgent)

	devType := deviceType(ua)
	if devType == DeviceDesktop && hints.Mobile == "?1" {
		devType = DeviceMobile
	}

	osName := ua.OS
	if osName == "" {
		osName = hints.Platform
	}

	return ClientInfo{
		DeviceType:     devType,
		DeviceModel:    c.DeviceModel(userAgent, hints),
		OSName:         orDefault(osName, UnknownOS),
		OSVersion:      orDefault(ua.OSVersion, UnknownVersion),
		BrowserName:    orDefault(ua.Name, UnknownBrowser),
		BrowserVersion: orDefault(ua.Version, UnknownVersion),
	}
}

// DeviceModel prefers the Sec-CH-UA-Model hint over the brand table guess.
func (c *Classifier) DeviceModel(userAgent string, hints ClientHints) string {
	if hints.Model != "" {
		return hints.Model
	}
	return c.MatchBrand(userAgent)
}

// MatchBrand returns the model label of the first brand entry matching
// the lower-cased User-Agent, or UnknownDevice.
func (c *Classifier) MatchBrand(userAgent string) string {
	lowerUA := strings.ToLower(userAgent)
	for _, b := range c.brands {
		if b.Pattern.MatchString(lowerUA) {
			return b.Model
		}
	}
	return UnknownDevice
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return DeviceBot
	case ua.Tablet:
		return DeviceTablet
	case ua.Mobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
