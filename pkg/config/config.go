// Package config holds the settings of a model checking run. Settings
// come from defaults, an optional YAML file and command line flags, in
// increasing order of precedence.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/bvmc/bvmc/pkg/bmc"
)

const (
	DefaultKmax        = 20
	DefaultParallelism = 1
)

type Config struct {
	// Kmin is the first bound checked for every property.
	Kmin int `yaml:"kmin"`
	// Kmax is the last bound checked.
	Kmax int `yaml:"kmax"`
	// StopAtFirst ends a search at the first bound where any property
	// is reached.
	StopAtFirst bool `yaml:"stopAtFirst"`
	// TraceGen keeps per-frame translations of internal terms.
	TraceGen bool `yaml:"traceGen"`
	// OutputBase is the number format of witness values: bin, hex or dec.
	OutputBase string `yaml:"outputBase"`
	// Parallelism bounds the number of models checked at once.
	Parallelism int  `yaml:"parallelism"`
	Debug       bool `yaml:"debug"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Kmax:        DefaultKmax,
		StopAtFirst: true,
		OutputBase:  bmc.Bin.String(),
		Parallelism: DefaultParallelism,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

type invalid []string

func (v invalid) Error() string {
	if len(v) == 1 {
		return "invalid config: " + v[0]
	}
	return fmt.Sprintf("invalid config: %d errors: %v", len(v), []string(v))
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs invalid
	if c.Kmin < 0 {
		errs = append(errs, fmt.Sprintf("kmin must not be negative, got %d", c.Kmin))
	}
	if c.Kmax < c.Kmin {
		errs = append(errs, fmt.Sprintf("kmax %d is below kmin %d", c.Kmax, c.Kmin))
	}
	if _, err := bmc.ParseBase(c.OutputBase); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Parallelism < 1 {
		errs = append(errs, fmt.Sprintf("parallelism must be at least 1, got %d", c.Parallelism))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Base returns the parsed output base. It assumes c is valid.
func (c Config) Base() bmc.Base {
	b, _ := bmc.ParseBase(c.OutputBase)
	return b
}

// Options returns the engine options these settings imply.
func (c Config) Options() []bmc.Option {
	options := []bmc.Option{bmc.WithStopAtFirst(c.StopAtFirst)}
	if c.TraceGen {
		options = append(options, bmc.WithTraceGen())
	}
	return options
}
