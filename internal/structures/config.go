package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required|in:mongo,memory"`
}

type MongoConfig struct {
	URL              string        `yaml:"url"`
	Database         string        `yaml:"database"`
	Collection       string        `yaml:"collection"`
	ConnectTimeout   time.Duration `yaml:"connectTimeout"`
	MaxPoolSize      uint64        `yaml:"maxPoolSize"`
	RetryAttempts    int           `yaml:"retryAttempts"`
	RetryInterval    time.Duration `yaml:"retryInterval"`
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

type GeoConfig struct {
	BaseURL  string        `yaml:"baseURL" validate:"required|fullUrl"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout" validate:"required|min:1"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// ScanConfig selects the behaviour of the scan landing endpoint.
type ScanConfig struct {
	PublicBaseURL      string `yaml:"publicBaseURL" validate:"required|fullUrl"`
	ResponseFormat     string `yaml:"responseFormat" validate:"required|in:html,json,auto"`
	Geolocation        bool   `yaml:"geolocation"`
	ClientHintsScript  bool   `yaml:"clientHintsScript"`
	AnalyticsScript    bool   `yaml:"analyticsScript"`
	RefreshDeviceModel bool   `yaml:"refreshDeviceModel"`
}

type QrConfig struct {
	Size    int `yaml:"size"`
	MaxSize int `yaml:"maxSize"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Storage   StorageConfig `yaml:"storage"`
	Mongo     MongoConfig   `yaml:"mongo"`
	Geo       GeoConfig     `yaml:"geo"`
	Scan      ScanConfig    `yaml:"scan"`
	Qr        QrConfig      `yaml:"qr"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
