package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt      = 1.0
	DefaultEnd     = 30.0
	DefaultInit    = 90.0
	DefaultRate    = 0.01
	DefaultAmbient = 22.0
)

type Config struct {
	Model      string       `yaml:"model"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	Start      float64      `yaml:"start"`
	End        float64      `yaml:"end"`
	Init       InitConfig   `yaml:"init"`
	Params     ParamsConfig `yaml:"params"`
}

type InitConfig struct {
	Temp  float64 `yaml:"temp"`
	Temp2 float64 `yaml:"temp2"`
}

type ParamsConfig struct {
	Rate     float64 `yaml:"rate"`
	Ambient  float64 `yaml:"ambient"`
	Coupling float64 `yaml:"coupling"`
	Loss1    float64 `yaml:"loss1"`
	Loss2    float64 `yaml:"loss2"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "cooling",
		Integrator: "euler",
		Dt:         DefaultDt,
		Start:      0,
		End:        DefaultEnd,
		Init: InitConfig{
			Temp:  DefaultInit,
			Temp2: DefaultAmbient,
		},
		Params: ParamsConfig{
			Rate:    DefaultRate,
			Ambient: DefaultAmbient,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "twobody":
		return []float64{c.Init.Temp, c.Init.Temp2}
	default:
		return []float64{c.Init.Temp}
	}
}
