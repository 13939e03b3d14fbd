// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting benchmark configuration.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the benchmark configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultCorpusPath is the corpus read when none is configured.
	DefaultCorpusPath = "data/test.txt"
	// DefaultEncoding is the tokenizer encoding used when none is configured.
	DefaultEncoding = "cl100k_base"
	// defaultBatchSize is the number of lines grouped into one batch call.
	defaultBatchSize = 1000
	// defaultSampleSize is the minimum number of timed iterations per mode.
	defaultSampleSize = 20
	// defaultMeasurementTime is the minimum wall-clock window of a timed run.
	defaultMeasurementTime = 5 * time.Second
	// defaultWarmUpTime is how long untimed warm-up iterations run before measuring.
	defaultWarmUpTime = 3 * time.Second
	// defaultLogFile receives the run log when logFile is unset.
	defaultLogFile = "tokbench.log"
)

// Benchmark modes.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// Config represents the benchmark configuration after flags, file and defaults are merged.
type Config struct {
	Corpus          string        `json:"corpus" mapstructure:"corpus"`
	Encoding        string        `json:"encoding" mapstructure:"encoding"`
	Normalization   string        `json:"normalization" mapstructure:"normalization"`
	BatchSize       int           `json:"batch_size" mapstructure:"batch_size"`
	BatchWorkers    int           `json:"batch_workers" mapstructure:"batch_workers"`
	AllowSpecial    bool          `json:"allow_special" mapstructure:"allow_special"`
	SampleSize      int           `json:"sample_size" mapstructure:"sample_size"`
	MeasurementTime time.Duration `json:"measurement_time" mapstructure:"measurement_time"`
	WarmUpTime      time.Duration `json:"warm_up_time" mapstructure:"warm_up_time"`
	MaxIterations   int           `json:"max_iterations" mapstructure:"max_iterations"`
	Modes           []string      `json:"modes" mapstructure:"modes"`
	Debug           bool          `json:"debug" mapstructure:"debug"`
	LogFile         string        `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath      string        `json:"-" mapstructure:"-"`
}

// SetDefaults registers the default value of every configuration key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("corpus", DefaultCorpusPath)
	v.SetDefault("encoding", DefaultEncoding)
	v.SetDefault("normalization", "none")
	v.SetDefault("batch_size", defaultBatchSize)
	v.SetDefault("batch_workers", 0)
	v.SetDefault("allow_special", false)
	v.SetDefault("sample_size", defaultSampleSize)
	v.SetDefault("measurement_time", defaultMeasurementTime)
	v.SetDefault("warm_up_time", defaultWarmUpTime)
	v.SetDefault("max_iterations", 0)
	v.SetDefault("modes", []string{ModeSingle, ModeBatch})
	v.SetDefault("debug", false)
}

// Default returns the configuration used when no file or flag overrides anything.
func Default() Config {
	return Config{
		Corpus:          DefaultCorpusPath,
		Encoding:        DefaultEncoding,
		Normalization:   "none",
		BatchSize:       defaultBatchSize,
		SampleSize:      defaultSampleSize,
		MeasurementTime: defaultMeasurementTime,
		WarmUpTime:      defaultWarmUpTime,
		Modes:           []string{ModeSingle, ModeBatch},
	}
}

// BatchSizeOrDefault returns the configured batch size, falling back to the default.
func (c Config) BatchSizeOrDefault() int {
	if c.BatchSize <= 0 {
		return defaultBatchSize
	}
	return c.BatchSize
}

// Samples returns the minimum number of timed iterations per mode.
func (c Config) Samples() uint64 {
	if c.SampleSize <= 0 {
		return defaultSampleSize
	}
	return uint64(c.SampleSize)
}

// MeasurementWindow returns the minimum wall-clock window of a timed run.
func (c Config) MeasurementWindow() time.Duration {
	if c.MeasurementTime < 0 {
		return defaultMeasurementTime
	}
	return c.MeasurementTime
}

// WarmUpWindow returns how long to warm up before measuring. Zero still runs one warm-up iteration.
func (c Config) WarmUpWindow() time.Duration {
	if c.WarmUpTime < 0 {
		return defaultWarmUpTime
	}
	return c.WarmUpTime
}

// IterationLimit returns the cap on timed iterations, zero meaning unbounded.
func (c Config) IterationLimit() uint64 {
	if c.MaxIterations <= 0 {
		return 0
	}
	return uint64(c.MaxIterations)
}

// CorpusPath returns the corpus file path, applying the default if not set.
func (c Config) CorpusPath() string {
	if path := strings.TrimSpace(c.Corpus); path != "" {
		return path
	}
	return DefaultCorpusPath
}

// EncodingName returns the tokenizer encoding, applying the default if not set.
func (c Config) EncodingName() string {
	if name := strings.TrimSpace(c.Encoding); name != "" {
		return name
	}
	return DefaultEncoding
}

// EnabledModes returns the configured modes in run order, defaulting to both.
func (c Config) EnabledModes() []string {
	if len(c.Modes) == 0 {
		return []string{ModeSingle, ModeBatch}
	}
	var modes []string
	for _, m := range []string{ModeSingle, ModeBatch} {
		if slices.Contains(c.Modes, m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// LogFilePath returns the path to the run log, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Validate reports semantic errors that the schema cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch_size must be positive, got %d", c.BatchSize))
	}
	if c.SampleSize <= 0 {
		errs = append(errs, fmt.Errorf("sample_size must be positive, got %d", c.SampleSize))
	}
	if c.BatchWorkers < 0 {
		errs = append(errs, fmt.Errorf("batch_workers must not be negative, got %d", c.BatchWorkers))
	}
	if c.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max_iterations must not be negative, got %d", c.MaxIterations))
	}
	if c.MeasurementTime < 0 || c.WarmUpTime < 0 {
		errs = append(errs, errors.New("measurement_time and warm_up_time must not be negative"))
	}
	for _, m := range c.Modes {
		if m != ModeSingle && m != ModeBatch {
			errs = append(errs, fmt.Errorf("unknown mode %q (want %q or %q)", m, ModeSingle, ModeBatch))
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Normalization)) {
	case "", "none", "nfc", "nfd", "nfkc", "nfkd":
	default:
		errs = append(errs, fmt.Errorf("unknown normalization %q", c.Normalization))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Load reads the configuration at path over the defaults. An empty path reads
// DefaultConfigPath and falls back to the defaults when that file does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	v := viper.New()
	SetDefaults(v)
	used, err := ReadInto(v, path, explicit)
	if err != nil {
		return Config{}, err
	}
	return Decode(v, used)
}

// ReadInto schema-validates the file at path and reads it into v. A missing file
// is an error only when explicit is set. It returns the path read, or "" when no
// file was read and v keeps its defaults.
func ReadInto(v *viper.Viper, path string, explicit bool) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return "", nil
		}
		return "", fmt.Errorf("no configuration file found at %q: %w", path, err)
	}
	if err := ValidateFile(path); err != nil {
		return "", err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return path, nil
}

// Decode unmarshals the merged settings of v and validates the result. path is
// recorded as the file the settings came from.
func Decode(v *viper.Viper, path string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = path
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
