// Package config defines the data structures related to configuration and
// includes functions for loading and normalizing the config.
package config

import (
	"fmt"

	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for llc-sweeper.
type Configuration struct {
	Design    Specification
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Magnetics MagneticsConfig `yaml:"magnetics,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx
	File   string `yaml:"file,omitempty"`   // output file for xlsx
	TopN   int    `yaml:"topN,omitempty"`   // diverse candidates to report
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Address            string `yaml:"address,omitempty"`
	MaxUploadSizeBytes int64  `yaml:"maxUploadSizeBytes,omitempty"`
}

// MagneticsConfig points at an optional external magnetics advisor service.
// An empty URL means the advisor is unavailable, which is a clean state, not
// an error.
type MagneticsConfig struct {
	URL            string `yaml:"url,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// Specification holds the electrical input parameters of one LLC design
// exploration. All values are plain SI units. The zero values of the optional
// fields are filled by Normalize; after that the value is treated as
// read-only.
type Specification struct {
	Vin      float64 `yaml:"vin"`      // nominal input voltage (V)
	Vout     float64 `yaml:"vout"`     // output voltage (V)
	Pout     float64 `yaml:"pout"`     // output power (W)
	FRTarget float64 `yaml:"fRTarget"` // target resonant frequency (Hz)
	FswMin   float64 `yaml:"fswMin"`   // minimum switching frequency (Hz)
	Coss     float64 `yaml:"coss"`     // MOSFET output capacitance (F)
	Deadtime float64 `yaml:"deadtime"` // dead time (s)

	// Sweep bounds
	LnMin float64 `yaml:"lnMin,omitempty"`
	LnMax float64 `yaml:"lnMax,omitempty"`
	QeMin float64 `yaml:"qeMin,omitempty"`
	QeMax float64 `yaml:"qeMax,omitempty"`

	// Line-voltage corners; default to Vin when absent
	VinMin float64 `yaml:"vinMin,omitempty"`
	VinMax float64 `yaml:"vinMax,omitempty"`

	// Optional absolute switching frequency ceiling (Hz)
	FswMaxLimit float64 `yaml:"fswMaxLimit,omitempty"`

	// Penalty configuration
	SpanRatioAllowed float64 `yaml:"spanRatioAllowed,omitempty"`
	LightLoadRatio   float64 `yaml:"lightLoadRatio,omitempty"`
}

// Iout is the derived output current.
func (s Specification) Iout() float64 {
	return s.Pout / s.Vout
}

// Normalize returns a fully populated copy of the specification with every
// optional field defaulted. The receiver is never mutated; callers should use
// the returned value from here on. Normalize is idempotent.
func (s Specification) Normalize() Specification {
	out := s
	if out.LnMin == 0 {
		out.LnMin = constants.DefaultLnMin
	}
	if out.LnMax == 0 {
		out.LnMax = constants.DefaultLnMax
	}
	if out.QeMin == 0 {
		out.QeMin = constants.DefaultQeMin
	}
	if out.QeMax == 0 {
		out.QeMax = constants.DefaultQeMax
	}
	if out.VinMin == 0 {
		out.VinMin = out.Vin
	}
	if out.VinMax == 0 {
		out.VinMax = out.Vin
	}
	if out.SpanRatioAllowed == 0 {
		out.SpanRatioAllowed = constants.DefaultSpanRatioAllowed
	}
	if out.LightLoadRatio == 0 {
		out.LightLoadRatio = constants.DefaultLightLoadRatio
	}
	return out
}

// Validate checks the input contract. Violations here are the only fatal
// input conditions; everything downstream is handled as warnings.
func (s Specification) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"vin", s.Vin},
		{"vout", s.Vout},
		{"pout", s.Pout},
		{"fRTarget", s.FRTarget},
		{"fswMin", s.FswMin},
		{"coss", s.Coss},
		{"deadtime", s.Deadtime},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("specification field %s must be positive, got %g", p.name, p.value)
		}
	}
	n := s.Normalize()
	if n.LnMin > n.LnMax {
		return fmt.Errorf("inverted Ln sweep bounds [%g, %g]", n.LnMin, n.LnMax)
	}
	if n.QeMin > n.QeMax {
		return fmt.Errorf("inverted Qe sweep bounds [%g, %g]", n.QeMin, n.QeMax)
	}
	if n.VinMin > n.VinMax {
		return fmt.Errorf("inverted Vin corners [%g, %g]", n.VinMin, n.VinMax)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for conditions that are suspicious but not fatal.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	s := c.Design.Normalize()
	if s.VinMin > s.Vin {
		warnings = append(warnings, fmt.Sprintf("vinMin (%g V) exceeds nominal vin (%g V)", s.VinMin, s.Vin))
	}
	if s.VinMax < s.Vin {
		warnings = append(warnings, fmt.Sprintf("vinMax (%g V) is below nominal vin (%g V)", s.VinMax, s.Vin))
	}
	if s.FswMaxLimit > 0 && s.FswMaxLimit < s.FswMin {
		warnings = append(warnings, fmt.Sprintf("fswMaxLimit (%g Hz) is below fswMin (%g Hz)", s.FswMaxLimit, s.FswMin))
	}
	if s.LightLoadRatio >= 1.0 {
		warnings = append(warnings, fmt.Sprintf("lightLoadRatio (%g) is not a light load", s.LightLoadRatio))
	}
	if s.FRTarget < s.FswMin {
		warnings = append(warnings, fmt.Sprintf("fRTarget (%g Hz) is below fswMin (%g Hz)", s.FRTarget, s.FswMin))
	}
	return warnings
}

// Example returns the specification from the design-article worked example.
// Used when the CLI is asked to run without a config file.
func Example() Specification {
	return Specification{
		Vin:      400,
		Vout:     48,
		Pout:     600,
		FRTarget: 100e3,
		FswMin:   50e3,
		Coss:     80e-12,
		Deadtime: 2e-6,
	}.Normalize()
}
