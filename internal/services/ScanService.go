package services

import (
	"context"
	"errors"
	"fmt"
	"qrscan/internal/geo"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"qrscan/internal/repository"
	"qrscan/internal/scan"
	"qrscan/internal/structures"
	"strings"
	"time"
)

type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeRepeated Outcome = "repeated"
	OutcomeFailed   Outcome = "failed"
)

const (
	TitleCreated    = "QR Code Scanned Successfully"
	MessageCreated  = "Thank you for scanning!"
	TitleRepeated   = "QR Code Scanned Again"
	MessageRepeated = "Your details have been updated."
)

var (
	ErrDeviceModelRequired = errors.New("device model is required")
	ErrNoRecentScans       = errors.New("no recent scans found")
)

// ScanRequest is what the transport layer extracts from a visit.
type ScanRequest struct {
	UserAgent string
	IP        string
	Hints     scan.ClientHints
}

type ScanResult struct {
	Record  *models.ScanRecord
	Outcome Outcome
	Title   string
	Message string
}

type ScanServiceInterface interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
	GetBySlug(ctx context.Context, slug string) (*models.ScanRecord, error)
	UpdateLatestDeviceModel(ctx context.Context, deviceModel string) (*models.ScanRecord, error)
}

type ScanService struct {
	conf       *structures.Config
	logger     providers.Logger
	repo       repository.ScanRepositoryInterface
	classifier *scan.Classifier
	generator  *scan.Generator
	locator    geo.LocatorInterface
	metrics    providers.MetricsProviderInterface
	now        func() time.Time
}

// Scan records a visit. The lookup by source identifier and the insert are
// two separate round trips, so two concurrent first visits with the same
// User-Agent can both insert.
func (ss *ScanService) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	sourceIdentifier := req.UserAgent
	if sourceIdentifier == "" {
		sourceIdentifier = models.Unknown
	}

	info := ss.classifier.Classify(req.UserAgent, req.Hints)
	slug := ss.generator.Generate(req.IP, req.UserAgent)
	location := ss.locator.Lookup(ctx, req.IP)

	existing, err := ss.repo.FindBySourceIdentifier(ctx, sourceIdentifier)
	switch {
	case err == nil:
		existing.Timestamp = ss.now()
		if ss.conf.Scan.RefreshDeviceModel && req.Hints.Model != "" {
			existing.DeviceModel = req.Hints.Model
		}
		if err = ss.repo.Save(ctx, existing); err != nil {
			ss.metrics.IncScans(string(OutcomeFailed))
			return nil, fmt.Errorf("refresh scan %s: %w", existing.Slug, err)
		}
		ss.metrics.IncScans(string(OutcomeRepeated))
		ss.logger.Debugf(providers.TypeGet, "Repeat scan %s from %s", existing.Slug, req.IP)
		return &ScanResult{
			Record:  existing,
			Outcome: OutcomeRepeated,
			Title:   TitleRepeated,
			Message: MessageRepeated,
		}, nil

	case errors.Is(err, models.ErrScanNotFound):
		record := &models.ScanRecord{
			Slug:             slug,
			SourceIdentifier: sourceIdentifier,
			IPAddress:        req.IP,
			DeviceType:       info.DeviceType,
			DeviceModel:      info.DeviceModel,
			OSName:           info.OSName,
			OSVersion:        info.OSVersion,
			BrowserName:      info.BrowserName,
			BrowserVersion:   info.BrowserVersion,
			Timestamp:        ss.now(),
		}
		record.ApplyGeolocation(location)

		if err = ss.repo.Insert(ctx, record); err != nil {
			ss.metrics.IncScans(string(OutcomeFailed))
			return nil, fmt.Errorf("insert scan %s: %w", slug, err)
		}
		ss.metrics.IncScans(string(OutcomeCreated))
		ss.logger.Debugf(providers.TypeGet, "New scan %s from %s", record.Slug, req.IP)
		return &ScanResult{
			Record:  record,
			Outcome: OutcomeCreated,
			Title:   TitleCreated,
			Message: MessageCreated,
		}, nil

	default:
		ss.metrics.IncScans(string(OutcomeFailed))
		return nil, fmt.Errorf("find scan by source identifier: %w", err)
	}
}

func (ss *ScanService) GetBySlug(ctx context.Context, slug string) (*models.ScanRecord, error) {
	return ss.repo.FindBySlug(ctx, slug)
}

// UpdateLatestDeviceModel writes a model reported by the client-hints script
// onto the most recent record.
func (ss *ScanService) UpdateLatestDeviceModel(ctx context.Context, deviceModel string) (*models.ScanRecord, error) {
	deviceModel = strings.TrimSpace(deviceModel)
	if deviceModel == "" {
		return nil, ErrDeviceModelRequired
	}

	latest, err := ss.repo.FindLatest(ctx)
	if errors.Is(err, models.ErrScanNotFound) {
		return nil, ErrNoRecentScans
	}
	if err != nil {
		return nil, fmt.Errorf("find latest scan: %w", err)
	}

	latest.DeviceModel = deviceModel
	if err = ss.repo.Save(ctx, latest); err != nil {
		return nil, fmt.Errorf("save device model for %s: %w", latest.Slug, err)
	}
	ss.logger.Infof(providers.TypePost, "Device model of %s set to %q", latest.Slug, deviceModel)
	return latest, nil
}

func NewScanService(conf *structures.Config, logger providers.Logger, repo repository.ScanRepositoryInterface, classifier *scan.Classifier, generator *scan.Generator, locator geo.LocatorInterface, metrics providers.MetricsProviderInterface) ScanServiceInterface {
	return &ScanService{
		conf:       conf,
		logger:     logger,
		repo:       repo,
		classifier: classifier,
		generator:  generator,
		locator:    locator,
		metrics:    metrics,
		now:        time.Now,
	}
}
