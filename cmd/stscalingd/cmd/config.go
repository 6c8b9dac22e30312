package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/Stride-Labs/st-scaling-factor/api"
	"github.com/Stride-Labs/st-scaling-factor/app"
	"github.com/Stride-Labs/st-scaling-factor/app/telemetry"
	"github.com/Stride-Labs/st-scaling-factor/pkg/lcd"
)

const (
	// EnvPrefix prefixes every environment override, e.g. STSCALING_LCD_BASE_URL
	EnvPrefix = "STSCALING"

	configDirName  = "config"
	configFileName = "config.toml"
	envFileName    = ".env"
)

// Config keys
const (
	KeyHome            = "home"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyDBBackend       = "db_backend"
	KeyChainID         = "chain_id"
	KeyContractAddress = "contract_address"

	KeyLCDBaseURL           = "lcd.base_url"
	KeyLCDTimeout           = "lcd.timeout"
	KeyLCDRequestsPerSecond = "lcd.requests_per_second"
	KeyLCDBurst             = "lcd.burst"

	KeyAPIHost         = "api.host"
	KeyAPIPort         = "api.port"
	KeyAPICORSOrigins  = "api.cors_origins"
	KeyAPIRateLimitRPS = "api.rate_limit_rps"

	KeyMetricsAddress = "metrics.address"

	KeyTelemetryEnabled           = "telemetry.enabled"
	KeyTelemetryOTLPEndpoint      = "telemetry.otlp_endpoint"
	KeyTelemetrySampleRate        = "telemetry.sample_rate"
	KeyTelemetryEnvironment       = "telemetry.environment"
	KeyTelemetryPrometheusEnabled = "telemetry.prometheus_enabled"
)

// DefaultNodeHome is $HOME/.stscaling
var DefaultNodeHome = defaultNodeHome()

func defaultNodeHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "." + app.AppName
	}
	return filepath.Join(userHome, "."+app.AppName)
}

// NodeConfig is the resolved configuration of a stscalingd invocation
type NodeConfig struct {
	Home            string
	LogLevel        string
	LogFormat       string
	DBBackend       dbm.BackendType
	ChainID         string
	ContractAddress string

	LCD            lcd.Config
	API            *api.Config
	MetricsAddress string
	Telemetry      telemetry.Config
}

// ConfigPath returns the config file location under home
func ConfigPath(home string) string {
	return filepath.Join(home, configDirName, configFileName)
}

// SetDefaults registers the default value of every config key
func SetDefaults(v *viper.Viper) {
	lcdCfg := lcd.DefaultConfig()
	apiCfg := api.DefaultConfig()
	telemetryCfg := telemetry.DefaultConfig()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "plain")
	v.SetDefault(KeyDBBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(KeyChainID, app.DefaultChainID)
	v.SetDefault(KeyContractAddress, "")

	v.SetDefault(KeyLCDBaseURL, lcdCfg.BaseURL)
	v.SetDefault(KeyLCDTimeout, lcdCfg.Timeout.String())
	v.SetDefault(KeyLCDRequestsPerSecond, lcdCfg.RequestsPerSecond)
	v.SetDefault(KeyLCDBurst, lcdCfg.Burst)

	v.SetDefault(KeyAPIHost, apiCfg.Host)
	v.SetDefault(KeyAPIPort, apiCfg.Port)
	v.SetDefault(KeyAPICORSOrigins, apiCfg.CORSOrigins)
	v.SetDefault(KeyAPIRateLimitRPS, apiCfg.RateLimitRPS)

	v.SetDefault(KeyMetricsAddress, "127.0.0.1:26660")

	v.SetDefault(KeyTelemetryEnabled, telemetryCfg.Enabled)
	v.SetDefault(KeyTelemetryOTLPEndpoint, telemetryCfg.OTLPEndpoint)
	v.SetDefault(KeyTelemetrySampleRate, telemetryCfg.SampleRate)
	v.SetDefault(KeyTelemetryEnvironment, telemetryCfg.Environment)
	v.SetDefault(KeyTelemetryPrometheusEnabled, telemetryCfg.PrometheusEnabled)
}

// NewViper returns a viper instance with defaults and STSCALING_* env overrides
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfigFile merges home/config/config.toml into v. A missing file is not an error.
func ReadConfigFile(v *viper.Viper, home string) error {
	v.SetConfigType("toml")
	v.SetConfigFile(ConfigPath(home))
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", ConfigPath(home), err)
	}
	return nil
}

// WriteDefaultConfig writes a config file holding the defaults. It fails if the file exists.
func WriteDefaultConfig(home string) (string, error) {
	path := ConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("toml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// LoadNodeConfig resolves a NodeConfig from v
func LoadNodeConfig(v *viper.Viper) (NodeConfig, error) {
	timeout, err := cast.ToDurationE(v.Get(KeyLCDTimeout))
	if err != nil {
		return NodeConfig{}, fmt.Errorf("invalid %s: %w", KeyLCDTimeout, err)
	}
	rps, err := cast.ToFloat64E(v.Get(KeyLCDRequestsPerSecond))
	if err != nil {
		return NodeConfig{}, fmt.Errorf("invalid %s: %w", KeyLCDRequestsPerSecond, err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get(KeyTelemetrySampleRate))
	if err != nil {
		return NodeConfig{}, fmt.Errorf("invalid %s: %w", KeyTelemetrySampleRate, err)
	}

	apiCfg := api.DefaultConfig()
	apiCfg.Host = cast.ToString(v.Get(KeyAPIHost))
	apiCfg.Port = cast.ToString(v.Get(KeyAPIPort))
	apiCfg.CORSOrigins = corsOrigins(v.Get(KeyAPICORSOrigins))
	apiCfg.RateLimitRPS = cast.ToInt(v.Get(KeyAPIRateLimitRPS))

	chainID := cast.ToString(v.Get(KeyChainID))

	cfg := NodeConfig{
		Home:            cast.ToString(v.Get(KeyHome)),
		LogLevel:        cast.ToString(v.Get(KeyLogLevel)),
		LogFormat:       cast.ToString(v.Get(KeyLogFormat)),
		DBBackend:       dbm.BackendType(cast.ToString(v.Get(KeyDBBackend))),
		ChainID:         chainID,
		ContractAddress: cast.ToString(v.Get(KeyContractAddress)),
		LCD: lcd.Config{
			BaseURL:           cast.ToString(v.Get(KeyLCDBaseURL)),
			Timeout:           timeout,
			RequestsPerSecond: rps,
			Burst:             cast.ToInt(v.Get(KeyLCDBurst)),
		},
		API:            apiCfg,
		MetricsAddress: cast.ToString(v.Get(KeyMetricsAddress)),
		Telemetry: telemetry.Config{
			Enabled:           cast.ToBool(v.Get(KeyTelemetryEnabled)),
			OTLPEndpoint:      cast.ToString(v.Get(KeyTelemetryOTLPEndpoint)),
			SampleRate:        sampleRate,
			Environment:       cast.ToString(v.Get(KeyTelemetryEnvironment)),
			ChainID:           chainID,
			PrometheusEnabled: cast.ToBool(v.Get(KeyTelemetryPrometheusEnabled)),
		},
	}
	if cfg.Home == "" {
		cfg.Home = DefaultNodeHome
	}

	return cfg, nil
}

// corsOrigins accepts a list or a comma separated string, the form env vars take
func corsOrigins(raw any) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	origins := make([]string, 0)
	for _, origin := range cast.ToStringSlice(raw) {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Validate checks the settings every command needs
func (c NodeConfig) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home directory is required")
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	switch c.DBBackend {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	if c.LCD.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyLCDTimeout)
	}
	return nil
}
