package geo

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-cleanhttp"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"qrscan/internal/structures"
	"strings"
)

const (
	ResultLocal   = "local"
	ResultCached  = "cached"
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultInvalid = "invalid"

	cacheKeyPrefix  = "geo:"
	maxResponseBody = 64 << 10
)

// LocatorInterface never fails: on any error it degrades to Unknown fields.
type LocatorInterface interface {
	Lookup(ctx context.Context, ip string) models.Geolocation
}

// ipInfoResponse is the subset of the ipinfo.io JSON answer we read.
type ipInfoResponse struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
	Org     string `json:"org"`
	Loc     string `json:"loc"`
}

type IpInfoLocator struct {
	baseURL string
	token   string
	client  *http.Client
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewIpInfoLocator(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) LocatorInterface {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = conf.Geo.Timeout

	return &IpInfoLocator{
		baseURL: strings.TrimRight(conf.Geo.BaseURL, "/"),
		token:   conf.Geo.Token,
		client:  client,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// IsLocalAddress reports whether ip is empty or not publicly routable.
func IsLocalAddress(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return true
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}

func (l *IpInfoLocator) Lookup(ctx context.Context, ip string) models.Geolocation {
	ip = strings.TrimSpace(ip)
	if IsLocalAddress(ip) {
		l.metrics.IncGeoLookups(ResultLocal)
		return models.LocalGeolocation()
	}
	if _, err := netip.ParseAddr(ip); err != nil {
		l.logger.Warnf(providers.TypeApp, "Skip geolocation for invalid address %q", ip)
		l.metrics.IncGeoLookups(ResultInvalid)
		return models.UnknownGeolocation()
	}

	if cached, ok := l.cache.Get(cacheKeyPrefix + ip); ok {
		var geo models.Geolocation
		if err := json.Unmarshal(cached, &geo); err == nil {
			l.metrics.IncGeoLookups(ResultCached)
			return geo
		}
	}

	geo, err := l.fetch(ctx, ip)
	if err != nil {
		l.logger.Errorf(providers.TypeApp, "Error fetching geolocation for %s: %s", ip, err)
		l.metrics.IncGeoLookups(ResultFailed)
		return models.UnknownGeolocation()
	}
	l.metrics.IncGeoLookups(ResultOK)

	if data, err := json.Marshal(geo); err == nil {
		l.cache.Set(cacheKeyPrefix+ip, data)
	}
	return geo
}

func (l *IpInfoLocator) fetch(ctx context.Context, ip string) (models.Geolocation, error) {
	endpoint := l.baseURL + "/" + url.PathEscape(ip) + "/json"
	if l.token != "" {
		endpoint += "?token=" + url.QueryEscape(l.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Geolocation{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return models.Geolocation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Geolocation{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload ipInfoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); err != nil {
		return models.Geolocation{}, fmt.Errorf("decode response: %w", err)
	}

	return toGeolocation(payload), nil
}

func toGeolocation(p ipInfoResponse) models.Geolocation {
	geo := models.UnknownGeolocation()
	if p.Country != "" {
		geo.Country = p.Country
	}
	if p.Region != "" {
		geo.Region = p.Region
	}
	if p.City != "" {
		geo.City = p.City
	}
	if p.Org != "" {
		geo.ISP = p.Org
	}
	if lat, lon, ok := strings.Cut(p.Loc, ","); ok {
		geo.Latitude = strings.TrimSpace(lat)
		geo.Longitude = strings.TrimSpace(lon)
	}
	return geo
}

// DisabledLocator is used when scan.geolocation is off.
type DisabledLocator struct{}

func (DisabledLocator) Lookup(_ context.Context, _ string) models.Geolocation {
	return models.UnknownGeolocation()
}

// NewLocator picks the ipinfo client or the disabled locator by config.
func NewLocator(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) LocatorInterface {
	if !conf.Scan.Geolocation {
		logger.Infof(providers.TypeApp, "Geolocation lookups disabled")
		return DisabledLocator{}
	}
	return NewIpInfoLocator(conf, cache, logger, metrics)
}
