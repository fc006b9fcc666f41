package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/pkg/core"
)

// FileName is the config file looked up in the config directory.
const FileName = "drillboard.cfg.json"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds settings for the in-memory SQLite backend
type SQLiteConfig struct {
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
	DumpPath     string        `json:"dumpPath" mapstructure:"dumpPath"`
}

// StorageConfig selects and configures the output backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// DBConfig holds Postgres connection settings
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// InfluxConfig holds InfluxDB connection settings
type InfluxConfig struct {
	Protocol  string
	Host      string
	Port      string
	Token     string
	Org       string
	Bucket    string
	BackupDir string
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// APIConfig points at the web frontend that accepts timeline uploads
type APIConfig struct {
	ServerURL string
	APIKey    string
	Tag       string
}

// RenderConfig controls timeline sampling
type RenderConfig struct {
	FPS   int
	Loops int
	Speed core.AnimationSpeed
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers every default value. Load calls it; the CLI calls it
// directly when no config file is wanted.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("workers", 0)

	viper.SetDefault("render.fps", 30)
	viper.SetDefault("render.loops", 1)
	viper.SetDefault("render.speed", string(core.SpeedNormal))

	viper.SetDefault("pitch.length", geo.DefaultPitch.Length)
	viper.SetDefault("pitch.width", geo.DefaultPitch.Width)
	viper.SetDefault("pitch.originLon", 0.0)
	viper.SetDefault("pitch.originLat", 0.0)
	viper.SetDefault("pitch.bearing", 0.0)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./timelines")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")
	viper.SetDefault("storage.sqlite.dumpPath", "./drillboard.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "drillboard")

	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "drillboard")
	viper.SetDefault("influx.bucket", "poses")
	viper.SetDefault("influx.backupDir", "./influx-backup")

	viper.SetDefault("websocket.url", "ws://localhost:5000/stream")

	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")
	viper.SetDefault("api.tag", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "drillboard")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// BindFlags lets command line flags override config keys of the same name.
func BindFlags(flags *pflag.FlagSet) error {
	return viper.BindPFlags(flags)
}

// BindFlag lets a single flag override key, for flags named differently
// from their config key.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for config key %s", key)
	}
	return viper.BindPFlag(key, flag)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetWorkers returns the export concurrency, defaulting to the CPU count.
func GetWorkers() int {
	if n := viper.GetInt("workers"); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
			DumpPath:     viper.GetString("storage.sqlite.dumpPath"),
		},
	}
}

// GetDBConfig returns the Postgres connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetInfluxConfig returns the InfluxDB connection settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Protocol:  viper.GetString("influx.protocol"),
		Host:      viper.GetString("influx.host"),
		Port:      viper.GetString("influx.port"),
		Token:     viper.GetString("influx.token"),
		Org:       viper.GetString("influx.org"),
		Bucket:    viper.GetString("influx.bucket"),
		BackupDir: viper.GetString("influx.backupDir"),
	}
}

// GetAPIConfig returns the upload target settings.
func GetAPIConfig() APIConfig {
	return APIConfig{
		ServerURL: viper.GetString("api.serverUrl"),
		APIKey:    viper.GetString("api.apiKey"),
		Tag:       viper.GetString("api.tag"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetRenderConfig returns timeline sampling settings. An unknown speed name
// falls back to normal.
func GetRenderConfig() RenderConfig {
	speed, _ := core.ParseSpeed(viper.GetString("render.speed"))
	return RenderConfig{
		FPS:   viper.GetInt("render.fps"),
		Loops: viper.GetInt("render.loops"),
		Speed: speed,
	}
}

// GetPitch returns the pitch scenes are projected onto.
func GetPitch() geo.Pitch {
	return geo.Pitch{
		Length:    viper.GetFloat64("pitch.length"),
		Width:     viper.GetFloat64("pitch.width"),
		OriginLon: viper.GetFloat64("pitch.originLon"),
		OriginLat: viper.GetFloat64("pitch.originLat"),
		Bearing:   viper.GetFloat64("pitch.bearing"),
	}
}
