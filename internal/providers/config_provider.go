package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"qrscan/internal/structures"
	"strings"
	"time"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "mongo")
	v.SetDefault("mongo.database", "qrscan")
	v.SetDefault("mongo.collection", "scanlogs")
	v.SetDefault("mongo.connectTimeout", 10*time.Second)
	v.SetDefault("mongo.maxPoolSize", 100)
	v.SetDefault("mongo.retryAttempts", 3)
	v.SetDefault("mongo.retryInterval", 5*time.Second)
	v.SetDefault("mongo.operationTimeout", 5*time.Second)
	v.SetDefault("geo.baseURL", "https://ipinfo.io")
	v.SetDefault("geo.timeout", 3*time.Second)
	v.SetDefault("geo.cacheTTL", time.Hour)
	v.SetDefault("scan.responseFormat", "html")
	v.SetDefault("scan.geolocation", true)
	v.SetDefault("scan.clientHintsScript", true)
	v.SetDefault("qr.size", 256)
	v.SetDefault("qr.maxSize", 1024)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	_ = v.BindEnv("logger.level", "QRSCAN_LOG_LEVEL")
	_ = v.BindEnv("storage.driver", "QRSCAN_STORAGE_DRIVER")
	_ = v.BindEnv("mongo.url", "QRSCAN_MONGO_URL")
	_ = v.BindEnv("geo.token", "QRSCAN_GEO_TOKEN")
	_ = v.BindEnv("scan.publicBaseURL", "QRSCAN_PUBLIC_BASE_URL")
	_ = v.BindEnv("cache.enabled", "QRSCAN_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "QRSCAN_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "QrScanLogger"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
