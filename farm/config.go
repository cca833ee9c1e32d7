package farm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable parameters of a session.
type Config struct {
	StartingBalance float32 `yaml:"starting_balance"`
	SpawnCost       float32 `yaml:"spawn_cost"`
	SpawnPayout     float32 `yaml:"spawn_payout"`
	// BrainLifetime is in seconds.
	BrainLifetime float64 `yaml:"brain_lifetime"`
	PlayerSpeed   float32 `yaml:"player_speed"`
	PlayerStart   Vec2    `yaml:"player_start"`
}

// DefaultConfig returns the stock farm: 100 coins, brains cost 10 and pay 15
// after two seconds.
func DefaultConfig() Config {
	return Config{
		StartingBalance: 100,
		SpawnCost:       10,
		SpawnPayout:     15,
		BrainLifetime:   2,
		PlayerSpeed:     100,
	}
}

// Validate reports every field that cannot drive a session.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, want string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s must be %s, got %v", ErrInvalidConfig, field, want, value))
		}
	}

	check(c.StartingBalance >= 0 && isFinite(float64(c.StartingBalance)), "starting_balance", c.StartingBalance, ">= 0")
	check(c.SpawnCost >= 0 && isFinite(float64(c.SpawnCost)), "spawn_cost", c.SpawnCost, ">= 0")
	check(c.SpawnPayout >= 0 && isFinite(float64(c.SpawnPayout)), "spawn_payout", c.SpawnPayout, ">= 0")
	check(c.BrainLifetime > 0 && isFinite(c.BrainLifetime), "brain_lifetime", c.BrainLifetime, "> 0")
	check(c.PlayerSpeed >= 0 && isFinite(float64(c.PlayerSpeed)), "player_speed", c.PlayerSpeed, ">= 0")

	return errors.Join(errs...)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are
// rejected. An empty document yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. See ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
