package testutil

import (
	"context"
	"go.mongodb.org/mongo-driver/v2/bson"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were logged at level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Scans       map[string]int
	GeoLookups  map[string]int
	QrGenerated int
	CacheHits   int
	CacheMisses int
	Persistence map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Scans:       make(map[string]int),
		GeoLookups:  make(map[string]int),
		Persistence: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistence[operation]++
}
func (m *MockMetrics) IncScans(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scans[outcome]++
}
func (m *MockMetrics) IncGeoLookups(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeoLookups[result]++
}
func (m *MockMetrics) IncQrGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QrGenerated++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockLocator implements geo.LocatorInterface with a fixed answer.
type MockLocator struct {
	mu     sync.Mutex
	Result models.Geolocation
	Calls  []string
}

func (m *MockLocator) Lookup(_ context.Context, ip string) models.Geolocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, ip)
	return m.Result
}

// MockScanRepository implements repository.ScanRepositoryInterface with
// injectable failures. Records are stored by value so callers cannot mutate them.
type MockScanRepository struct {
	mu      sync.Mutex
	Records []models.ScanRecord
	Err     error
	PingErr error
	Inserts int
	Saves   int
}

func (m *MockScanRepository) FindBySourceIdentifier(_ context.Context, sourceIdentifier string) (*models.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Records {
		if m.Records[i].SourceIdentifier == sourceIdentifier {
			rec := m.Records[i]
			return &rec, nil
		}
	}
	return nil, models.ErrScanNotFound
}

func (m *MockScanRepository) FindBySlug(_ context.Context, slug string) (*models.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Records {
		if m.Records[i].Slug == slug {
			rec := m.Records[i]
			return &rec, nil
		}
	}
	return nil, models.ErrScanNotFound
}

func (m *MockScanRepository) FindLatest(_ context.Context) (*models.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Records) == 0 {
		return nil, models.ErrScanNotFound
	}
	latest := m.Records[0]
	for _, r := range m.Records[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return &latest, nil
}

func (m *MockScanRepository) Insert(_ context.Context, record *models.ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}
	m.Inserts++
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockScanRepository) Save(_ context.Context, record *models.ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Saves++
	for i := range m.Records {
		if m.Records[i].ID == record.ID {
			m.Records[i] = *record
			return nil
		}
	}
	return models.ErrScanNotFound
}

func (m *MockScanRepository) Ping(_ context.Context) error {
	return m.PingErr
}
