package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EcoModulationConfig holds the tunable eco-modulation parameters: the
// per-term adjustment factors and the certification bonus table.
// Defaults encode the reference rate card; a mounted ecomod.yml can
// override them without a redeploy.
type EcoModulationConfig struct {
	CarbonFactor        float64 `mapstructure:"carbonFactor"`
	RecycledFactor      float64 `mapstructure:"recycledFactor"`
	BiodegradableFactor float64 `mapstructure:"biodegradableFactor"`
	ReusabilityFactor   float64 `mapstructure:"reusabilityFactor"`
	LocalSourcingFactor float64 `mapstructure:"localSourcingFactor"`

	// CertificationCap bounds the summed certification bonus fraction.
	CertificationCap float64 `mapstructure:"certificationCap"`

	CertificationBonuses map[string]float64 `mapstructure:"certificationBonuses"`
}

func DefaultEcoModulationConfig() EcoModulationConfig {
	return EcoModulationConfig{
		CarbonFactor:        0.15,
		RecycledFactor:      0.20,
		BiodegradableFactor: 0.10,
		ReusabilityFactor:   0.25,
		LocalSourcingFactor: 0.08,
		CertificationCap:    0.15,
		CertificationBonuses: map[string]float64{
			"FSC":              0.05,
			"CRADLE_TO_CRADLE": 0.08,
			"ENERGY_STAR":      0.03,
			"EU_ECOLABEL":      0.06,
			"BLUE_ANGEL":       0.05,
			"GREEN_SEAL":       0.04,
			"OK_COMPOST":       0.04,
			"RECYCLED_CONTENT": 0.07,
		},
	}
}

// EcoModulationConfigHolder exposes the current config with hot reload.
type EcoModulationConfigHolder struct {
	current atomic.Value // holds EcoModulationConfig
}

func NewEcoModulationConfigHolder() (*EcoModulationConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("ecomod")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/packlane/config")
	v.AddConfigPath("/etc/packlane")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PACKLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultEcoModulationConfig()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
		v.SetDefault("ecomod.carbonFactor", defaults.CarbonFactor)
		v.SetDefault("ecomod.recycledFactor", defaults.RecycledFactor)
		v.SetDefault("ecomod.biodegradableFactor", defaults.BiodegradableFactor)
		v.SetDefault("ecomod.reusabilityFactor", defaults.ReusabilityFactor)
		v.SetDefault("ecomod.localSourcingFactor", defaults.LocalSourcingFactor)
		v.SetDefault("ecomod.certificationCap", defaults.CertificationCap)
		v.SetDefault("ecomod.certificationBonuses", defaults.CertificationBonuses)
	}

	var cfg EcoModulationConfig
	if err := v.UnmarshalKey("ecomod", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.CertificationBonuses) == 0 {
		cfg.CertificationBonuses = defaults.CertificationBonuses
	}
	if err := validateEcoModulationConfig(cfg); err != nil {
		return nil, err
	}

	holder := &EcoModulationConfigHolder{}
	holder.current.Store(cfg)

	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated EcoModulationConfig
		if err := v.UnmarshalKey("ecomod", &updated); err != nil {
			log.Printf("[ecomod-config] reload failed: %v", err)
			return
		}
		if err := validateEcoModulationConfig(updated); err != nil {
			log.Printf("[ecomod-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[ecomod-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticEcoModulationConfigHolder wraps a fixed config with no file
// watching. Used by tests and embedded callers.
func StaticEcoModulationConfigHolder(cfg EcoModulationConfig) *EcoModulationConfigHolder {
	holder := &EcoModulationConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *EcoModulationConfigHolder) Get() EcoModulationConfig {
	return h.current.Load().(EcoModulationConfig)
}

func validateEcoModulationConfig(cfg EcoModulationConfig) error {
	if cfg.CertificationCap <= 0 || cfg.CertificationCap > 1 {
		return errors.New("ecomod.certificationCap must be in (0,1]")
	}
	for _, factor := range []float64{
		cfg.CarbonFactor,
		cfg.RecycledFactor,
		cfg.BiodegradableFactor,
		cfg.ReusabilityFactor,
		cfg.LocalSourcingFactor,
	} {
		if factor < 0 || factor > 1 {
			return errors.New("ecomod adjustment factors must be in [0,1]")
		}
	}
	for name, bonus := range cfg.CertificationBonuses {
		if bonus < 0 || bonus > 1 {
			return errors.New("ecomod.certificationBonuses." + name + " must be in [0,1]")
		}
	}
	return nil
}
