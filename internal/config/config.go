package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ugaemi/searchlight-server/internal/game"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	TickRate      int
	SpawnInterval time.Duration
	Lives         int
	ZoneCount     int
	PursuerCount  int

	tuning game.Tuning
}

// Load reads configuration from defaults, SEARCHLIGHT_* environment variables
// and, when path is non-empty, a config file (json, yaml or toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SEARCHLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:          v.GetInt("port"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
		TickRate:      v.GetInt("sim.tickRate"),
		SpawnInterval: v.GetDuration("sim.spawnInterval"),
		Lives:         v.GetInt("sim.lives"),
		ZoneCount:     v.GetInt("sim.zoneCount"),
		PursuerCount:  v.GetInt("sim.pursuerCount"),
	}

	t := game.DefaultTuning()
	t.Zone.Radius = v.GetFloat64("zone.radius")
	t.Zone.BoostMultiplier = v.GetFloat64("zone.boostMultiplier")
	t.Zone.BoostDuration = v.GetDuration("zone.boostDuration")
	t.Zone.BoostCooldown = v.GetDuration("zone.boostCooldown")
	t.Evader.Speed = v.GetFloat64("evader.speed")
	t.Evader.Radius = v.GetFloat64("evader.radius")
	t.Evader.CaptureThreshold = v.GetDuration("evader.captureThreshold")
	t.Pursuer.Speed = v.GetFloat64("pursuer.speed")
	t.Pursuer.HuntMultiplier = v.GetFloat64("pursuer.huntMultiplier")
	t.Pursuer.VisionRange = v.GetFloat64("pursuer.visionRange")
	t.Pursuer.Radius = v.GetFloat64("pursuer.radius")
	t.Pursuer.Capacity = v.GetInt("pursuer.capacity")
	t.Pursuer.DropOffRange = v.GetFloat64("pursuer.dropOffRange")
	t.Pursuer.TrailDistance = v.GetFloat64("pursuer.trailDistance")
	t.Pursuer.MinDwell = v.GetDuration("pursuer.minDwell")
	t.Pursuer.MaxDwell = v.GetDuration("pursuer.maxDwell")
	cfg.tuning = t

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sim.tickRate", game.TickRate)
	v.SetDefault("sim.spawnInterval", game.SpawnInterval)
	v.SetDefault("sim.lives", game.StartingLives)
	v.SetDefault("sim.zoneCount", game.ZoneCount)
	v.SetDefault("sim.pursuerCount", game.PursuerCount)

	v.SetDefault("zone.radius", game.ZoneRadius)
	v.SetDefault("zone.boostMultiplier", game.ZoneBoostMultiplier)
	v.SetDefault("zone.boostDuration", game.ZoneBoostDuration)
	v.SetDefault("zone.boostCooldown", game.ZoneBoostCooldown)

	v.SetDefault("evader.speed", game.EvaderSpeed)
	v.SetDefault("evader.radius", game.EvaderRadius)
	v.SetDefault("evader.captureThreshold", game.EvaderCaptureThreshold)

	v.SetDefault("pursuer.speed", game.PursuerSpeed)
	v.SetDefault("pursuer.huntMultiplier", game.PursuerHuntMultiplier)
	v.SetDefault("pursuer.visionRange", game.PursuerVisionRange)
	v.SetDefault("pursuer.radius", game.PursuerRadius)
	v.SetDefault("pursuer.capacity", game.PursuerCapacity)
	v.SetDefault("pursuer.dropOffRange", game.PursuerDropOffRange)
	v.SetDefault("pursuer.trailDistance", game.DefaultFollowGap)
	v.SetDefault("pursuer.minDwell", game.PursuerMinDwell)
	v.SetDefault("pursuer.maxDwell", game.PursuerMaxDwell)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive", game.ErrInvalidConfig)
	case c.TickInterval() <= 0:
		return fmt.Errorf("%w: tick rate %d is too high", game.ErrInvalidConfig, c.TickRate)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval must be positive", game.ErrInvalidConfig)
	case c.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", game.ErrInvalidConfig)
	case c.ZoneCount < 0 || c.PursuerCount < 0:
		return fmt.Errorf("%w: negative agent count", game.ErrInvalidConfig)
	}
	return c.tuning.Validate()
}

// Tuning returns the simulation tuning assembled from the config.
func (c *Config) Tuning() game.Tuning {
	return c.tuning
}

// TickInterval returns the wall-clock time between simulation steps, or 0
// when the tick rate is not usable.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}
