package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Log      LogConfig      `json:"log"`
	Autosave AutosaveConfig `json:"autosave"`
	Training TrainingConfig `json:"training"`
	Dataset  DatasetConfig  `json:"dataset"`
}

type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

type AutosaveConfig struct {
	Dir          string `json:"dir"`
	DelayMS      int    `json:"delayMs"`
	TTLHours     int    `json:"ttlHours"`
	Notification bool   `json:"notification"`
}

// TrainingConfig controls the simulated training run: how fast epochs
// advance and the defaults offered in the configuration step.
type TrainingConfig struct {
	BaseModel        string  `json:"baseModel"`
	Epochs           int     `json:"epochs"`
	BatchSize        int     `json:"batchSize"`
	LearningRate     float64 `json:"learningRate"`
	WeightDecay      float64 `json:"weightDecay"`
	ImageSize        int     `json:"imageSize"`
	SecondsPerEpoch  float64 `json:"secondsPerEpoch"`
	PollIntervalSecs int     `json:"pollIntervalSecs"`
}

type DatasetConfig struct {
	TrainSplit float64 `json:"trainSplit"`
	ValSplit   float64 `json:"valSplit"`
	TestSplit  float64 `json:"testSplit"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = getDefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getDefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".donut-tui", "config.json")
}

// DataDir is where snapshots and logs live.
func DataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".donut-tui")
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Autosave: AutosaveConfig{
			Dir:          DataDir(),
			DelayMS:      2500,
			TTLHours:     24,
			Notification: true,
		},
		Training: TrainingConfig{
			BaseModel:        "naver-clova-ix/donut-base",
			Epochs:           10,
			BatchSize:        8,
			LearningRate:     5e-5,
			WeightDecay:      0.01,
			ImageSize:        1280,
			SecondsPerEpoch:  4,
			PollIntervalSecs: 2,
		},
		Dataset: DatasetConfig{
			TrainSplit: 0.8,
			ValSplit:   0.1,
			TestSplit:  0.1,
		},
	}
}

// AutosaveDelay returns the debounce delay as a duration.
func (c *Config) AutosaveDelay() time.Duration {
	if c.Autosave.DelayMS <= 0 {
		return 2500 * time.Millisecond
	}
	return time.Duration(c.Autosave.DelayMS) * time.Millisecond
}

// AutosaveTTL returns the snapshot freshness window.
func (c *Config) AutosaveTTL() time.Duration {
	if c.Autosave.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Autosave.TTLHours) * time.Hour
}
