package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"qrscan/internal/models"
	"qrscan/internal/structures"
	"qrscan/internal/testutil"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoConfig(baseURL string) *structures.Config {
	return &structures.Config{
		Geo: structures.GeoConfig{
			BaseURL: baseURL,
			Token:   "secret",
			Timeout: time.Second,
		},
		Scan: structures.ScanConfig{Geolocation: true},
	}
}

func newTestLocator(baseURL string) (*IpInfoLocator, *testutil.MockCache, *testutil.MockMetrics) {
	cache := testutil.NewMockCache()
	metrics := testutil.NewMockMetrics()
	l := NewIpInfoLocator(geoConfig(baseURL), cache, &testutil.MockLogger{}, metrics).(*IpInfoLocator)
	return l, cache, metrics
}

func TestIsLocalAddress(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"", true},
		{"192.168.1.5", true},
		{"10.1.2.3", true},
		{"172.16.0.9", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"fe80::1", true},
		{"::ffff:192.168.1.5", true},
		{"203.0.113.45", false},
		{"8.8.8.8", false},
		{"Unknown IP", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsLocalAddress(tt.ip), tt.ip)
	}
}

func TestLookup_LocalNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	l, _, metrics := newTestLocator(srv.URL)
	geo := l.Lookup(context.Background(), "192.168.1.5")

	assert.Equal(t, models.LocalNetwork, geo.Country)
	assert.Equal(t, models.NotAvailable, geo.Region)
	assert.Equal(t, models.NotAvailable, geo.City)
	assert.Equal(t, models.NotAvailable, geo.ISP)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, metrics.GeoLookups[ResultLocal])
}

func TestLookup_Success(t *testing.T) {
	var path, token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		token = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.45","city":"Berlin","region":"Berlin","country":"DE","loc":"52.5244,13.4105","org":"AS3320 Deutsche Telekom AG"}`))
	}))
	defer srv.Close()

	l, cache, metrics := newTestLocator(srv.URL)
	geo := l.Lookup(context.Background(), "203.0.113.45")

	assert.Equal(t, "/203.0.113.45/json", path)
	assert.Equal(t, "secret", token)
	assert.Equal(t, models.Geolocation{
		Country:   "DE",
		Region:    "Berlin",
		City:      "Berlin",
		ISP:       "AS3320 Deutsche Telekom AG",
		Latitude:  "52.5244",
		Longitude: "13.4105",
	}, geo)
	assert.Equal(t, 1, metrics.GeoLookups[ResultOK])

	_, ok := cache.Get(cacheKeyPrefix + "203.0.113.45")
	assert.True(t, ok)
}

func TestLookup_MissingFieldsDefaultToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"country":"US"}`))
	}))
	defer srv.Close()

	l, _, _ := newTestLocator(srv.URL)
	geo := l.Lookup(context.Background(), "8.8.8.8")

	assert.Equal(t, "US", geo.Country)
	assert.Equal(t, models.Unknown, geo.City)
	assert.Equal(t, models.Unknown, geo.ISP)
	assert.Equal(t, models.Unknown, geo.Latitude)
	assert.Equal(t, models.Unknown, geo.Longitude)
}

func TestLookup_CachedAnswerSkipsRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"country":"NL","city":"Amsterdam"}`))
	}))
	defer srv.Close()

	l, _, metrics := newTestLocator(srv.URL)
	first := l.Lookup(context.Background(), "203.0.113.7")
	second := l.Lookup(context.Background(), "203.0.113.7")

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, metrics.GeoLookups[ResultCached])
}

func TestLookup_ServerErrorDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	l, cache, metrics := newTestLocator(srv.URL)
	geo := l.Lookup(context.Background(), "203.0.113.45")

	assert.Equal(t, models.UnknownGeolocation(), geo)
	assert.Equal(t, 1, metrics.GeoLookups[ResultFailed])
	assert.Empty(t, cache.Data)
}

func TestLookup_MalformedBodyDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	l, _, _ := newTestLocator(srv.URL)
	assert.Equal(t, models.UnknownGeolocation(), l.Lookup(context.Background(), "203.0.113.45"))
}

func TestLookup_UnreachableServerDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	l, _, _ := newTestLocator(url)
	assert.Equal(t, models.UnknownGeolocation(), l.Lookup(context.Background(), "203.0.113.45"))
}

func TestLookup_InvalidAddress(t *testing.T) {
	l, _, metrics := newTestLocator("http://127.0.0.1:1")
	geo := l.Lookup(context.Background(), "Unknown IP")

	assert.Equal(t, models.UnknownGeolocation(), geo)
	assert.Equal(t, 1, metrics.GeoLookups[ResultInvalid])
}

func TestNewLocator_Disabled(t *testing.T) {
	conf := geoConfig("https://ipinfo.io")
	conf.Scan.Geolocation = false

	l := NewLocator(conf, testutil.NewMockCache(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.IsType(t, DisabledLocator{}, l)
	assert.Equal(t, models.UnknownGeolocation(), l.Lookup(context.Background(), "8.8.8.8"))
}
