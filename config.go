package sprites

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type TextureConfig struct {
	// Path to an image file. Empty selects the procedural test pattern.
	Path string `toml:"path"`
}

type InstanceConfig struct {
	Position [2]float32 `toml:"position"`
	Size     [2]float32 `toml:"size"`
}

func (c InstanceConfig) PositionVec() mgl32.Vec2 { return mgl32.Vec2(c.Position) }
func (c InstanceConfig) SizeVec() mgl32.Vec2     { return mgl32.Vec2(c.Size) }

type Config struct {
	Backend   RendererName     `toml:"backend"`
	Debug     bool             `toml:"debug"`
	Window    WindowConfig     `toml:"window"`
	Texture   TextureConfig    `toml:"texture"`
	Instances []InstanceConfig `toml:"instances"`
}

// DefaultConfig is the reference scene: three sprites in a 960x720 window.
func DefaultConfig() Config {
	return Config{
		Backend: RendererWGPU,
		Window: WindowConfig{
			Width:  960,
			Height: 720,
			Title:  "Sprites",
			VSync:  true,
		},
		Instances: []InstanceConfig{
			{Position: [2]float32{0, 0}, Size: [2]float32{300, 300}},
			{Position: [2]float32{300, 500}, Size: [2]float32{200, 500}},
			{Position: [2]float32{600, 300}, Size: [2]float32{300, 100}},
		},
	}
}

// LoadConfig reads a TOML file over the defaults. Keys absent from the file
// keep their default value; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	defaults := cfg.Instances
	cfg.Instances = nil
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Instances == nil {
		cfg.Instances = defaults
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, ok := renderers[c.Backend]; !ok {
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if len(c.Instances) == 0 {
		errs = append(errs, errors.New("at least one instance is required"))
	}
	for i, inst := range c.Instances {
		if inst.Size[0] < 0 || inst.Size[1] < 0 {
			errs = append(errs, fmt.Errorf("instance %d has negative size %v", i, inst.Size))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
