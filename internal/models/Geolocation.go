package models

const (
	LocalNetwork = "Local Network"
	NotAvailable = "N/A"
)

type Geolocation struct {
	Country   string `json:"country"`
	Region    string `json:"region"`
	City      string `json:"city"`
	ISP       string `json:"isp"`
	Latitude  string `json:"lat"`
	Longitude string `json:"lon"`
}

func UnknownGeolocation() Geolocation {
	return Geolocation{
		Country:   Unknown,
		Region:    Unknown,
		City:      Unknown,
		ISP:       Unknown,
		Latitude:  Unknown,
		Longitude: Unknown,
	}
}

func LocalGeolocation() Geolocation {
	return Geolocation{
		Country:   LocalNetwork,
		Region:    NotAvailable,
		City:      NotAvailable,
		ISP:       NotAvailable,
		Latitude:  Unknown,
		Longitude: Unknown,
	}
}

func (g Geolocation) IsLocal() bool {
	return g.Country == LocalNetwork
}
