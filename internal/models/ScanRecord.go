package models

import (
	"errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"time"
)

const Unknown = "Unknown"

var ErrScanNotFound = errors.New("scan record not found")

// ScanRecord is one visitor of a tracking URL. SourceIdentifier holds the raw
// User-Agent and acts as the visitor key: a repeat scan with the same value
// refreshes Timestamp instead of creating a second record.
type ScanRecord struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Slug             string        `bson:"slug" json:"slug"`
	SourceIdentifier string        `bson:"sourceIdentifier" json:"sourceIdentifier"`
	IPAddress        string        `bson:"ipAddress" json:"ipAddress"`
	DeviceType       string        `bson:"deviceType,omitempty" json:"deviceType,omitempty"`
	DeviceModel      string        `bson:"deviceModel,omitempty" json:"deviceModel,omitempty"`
	OSName           string        `bson:"osName,omitempty" json:"osName,omitempty"`
	OSVersion        string        `bson:"osVersion,omitempty" json:"osVersion,omitempty"`
	BrowserName      string        `bson:"browserName,omitempty" json:"browserName,omitempty"`
	BrowserVersion   string        `bson:"browserVersion,omitempty" json:"browserVersion,omitempty"`
	VisitorID        string        `bson:"visitorId,omitempty" json:"visitorId,omitempty"`
	Country          string        `bson:"country" json:"country"`
	Region           string        `bson:"region" json:"region"`
	City             string        `bson:"city" json:"city"`
	ISP              string        `bson:"isp" json:"isp"`
	Latitude         string        `bson:"latitude" json:"latitude"`
	Longitude        string        `bson:"longitude" json:"longitude"`
	Timestamp        time.Time     `bson:"timestamp" json:"timestamp"`
}

// ApplyGeolocation copies location fields, keeping "Unknown" for blanks.
func (r *ScanRecord) ApplyGeolocation(geo Geolocation) {
	r.Country = orUnknown(geo.Country)
	r.Region = orUnknown(geo.Region)
	r.City = orUnknown(geo.City)
	r.ISP = orUnknown(geo.ISP)
	r.Latitude = orUnknown(geo.Latitude)
	r.Longitude = orUnknown(geo.Longitude)
}

// Clone returns a copy that shares no state with r.
func (r *ScanRecord) Clone() *ScanRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}
