package arbor

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls window creation and renderer limits. Zero values fall
// back to the defaults, so a partial YAML file only overrides what it
// names.
type Config struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Samples int    `yaml:"samples"`
	VSync   bool   `yaml:"vsync"`

	ClearColor Color `yaml:"clear_color"`

	ShadowMapSize        int32 `yaml:"shadow_map_size"`
	CubeShadowMapSize    int32 `yaml:"cube_shadow_map_size"`
	MaxDirectionalLights int   `yaml:"max_directional_lights"`
	MaxPointLights       int   `yaml:"max_point_lights"`

	AmbientLight     float32 `yaml:"ambient_light"`
	ShadowBiasFactor float32 `yaml:"shadow_bias_factor"`
	ShadowBiasOffset float32 `yaml:"shadow_bias_offset"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Title:                "arbor",
		Width:                1280,
		Height:               720,
		Samples:              4,
		VSync:                true,
		ClearColor:           Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		ShadowMapSize:        2048,
		CubeShadowMapSize:    1024,
		MaxDirectionalLights: 4,
		MaxPointLights:       8,
		AmbientLight:         0.2,
		ShadowBiasFactor:     0.005,
		ShadowBiasOffset:     0.0005,
	}
}

// configOverrides mirrors Config with a pointer for the boolean so an
// absent key is distinguishable from an explicit false.
type configOverrides struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Samples int    `yaml:"samples"`
	VSync   *bool  `yaml:"vsync"`

	ClearColor Color `yaml:"clear_color"`

	ShadowMapSize        int32 `yaml:"shadow_map_size"`
	CubeShadowMapSize    int32 `yaml:"cube_shadow_map_size"`
	MaxDirectionalLights int   `yaml:"max_directional_lights"`
	MaxPointLights       int   `yaml:"max_point_lights"`

	AmbientLight     float32 `yaml:"ambient_light"`
	ShadowBiasFactor float32 `yaml:"shadow_bias_factor"`
	ShadowBiasOffset float32 `yaml:"shadow_bias_offset"`
}

// LoadConfig reads a YAML config file and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	var o configOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.merge(o)
	return cfg, nil
}

func (c *Config) merge(o configOverrides) {
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Samples > 0 {
		c.Samples = o.Samples
	}
	if o.VSync != nil {
		c.VSync = *o.VSync
	}
	if o.ClearColor != (Color{}) {
		c.ClearColor = o.ClearColor
	}
	if o.ShadowMapSize > 0 {
		c.ShadowMapSize = o.ShadowMapSize
	}
	if o.CubeShadowMapSize > 0 {
		c.CubeShadowMapSize = o.CubeShadowMapSize
	}
	if o.MaxDirectionalLights > 0 {
		c.MaxDirectionalLights = o.MaxDirectionalLights
	}
	if o.MaxPointLights > 0 {
		c.MaxPointLights = o.MaxPointLights
	}
	if o.AmbientLight > 0 {
		c.AmbientLight = o.AmbientLight
	}
	if o.ShadowBiasFactor > 0 {
		c.ShadowBiasFactor = o.ShadowBiasFactor
	}
	if o.ShadowBiasOffset > 0 {
		c.ShadowBiasOffset = o.ShadowBiasOffset
	}
}
