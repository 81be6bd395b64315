package config

import "time"

// Default configuration values.
const (
	defaultServiceName      = "triage"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8074
	defaultConcurrency      = 10
	defaultReadTimeoutSec   = 30
	defaultWriteTimeoutSec  = 60
	defaultArtifactsDir     = "artifacts"
	defaultRawDataPath      = "data/telecom_complaints.csv"
	defaultEnrichedDataPath = "data/complaints_enriched.csv"
	defaultDatabasePath     = "data/triage_history.db"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultMaxFeatures      = 5000
	defaultTestFraction     = 0.2
	defaultSplitSeed        = 42
	defaultIterations       = 200
	defaultLearningRate     = 0.5
)

// Config holds all configuration for the triage service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Model    ModelConfig    `yaml:"model"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"TRIAGE_PORT"        yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"          yaml:"debug"`
	Concurrency  int           `env:"TRIAGE_CONCURRENCY" yaml:"concurrency"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ModelConfig holds classifier training and artifact settings.
type ModelConfig struct {
	ArtifactsDir string  `env:"TRIAGE_ARTIFACTS_DIR" yaml:"artifacts_dir"`
	MaxFeatures  int     `yaml:"max_features"`
	TestFraction float64 `yaml:"test_fraction"`
	SplitSeed    int64   `yaml:"split_seed"`
	Iterations   int     `yaml:"iterations"`
	LearningRate float64 `yaml:"learning_rate"`
}

// DatasetConfig holds paths for the complaint datasets.
type DatasetConfig struct {
	RawPath      string `env:"TRIAGE_RAW_DATA"      yaml:"raw_path"`
	EnrichedPath string `env:"TRIAGE_ENRICHED_DATA" yaml:"enriched_path"`
}

// DatabaseConfig holds the triage history database configuration.
type DatabaseConfig struct {
	Path string `env:"TRIAGE_DB_PATH" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setModelDefaults(&cfg.Model)
	setDatasetDefaults(&cfg.Dataset)
	setDatabaseDefaults(&cfg.Database)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
}

func setModelDefaults(m *ModelConfig) {
	if m.ArtifactsDir == "" {
		m.ArtifactsDir = defaultArtifactsDir
	}
	if m.MaxFeatures == 0 {
		m.MaxFeatures = defaultMaxFeatures
	}
	if m.TestFraction == 0 {
		m.TestFraction = defaultTestFraction
	}
	if m.SplitSeed == 0 {
		m.SplitSeed = defaultSplitSeed
	}
	if m.Iterations == 0 {
		m.Iterations = defaultIterations
	}
	if m.LearningRate == 0 {
		m.LearningRate = defaultLearningRate
	}
}

func setDatasetDefaults(d *DatasetConfig) {
	if d.RawPath == "" {
		d.RawPath = defaultRawDataPath
	}
	if d.EnrichedPath == "" {
		d.EnrichedPath = defaultEnrichedDataPath
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Path == "" {
		d.Path = defaultDatabasePath
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
