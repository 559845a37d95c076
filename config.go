package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ImageConfig sizes the items on the field.
type ImageConfig struct {
	BaseSize              float64 `yaml:"baseSize"`
	Layer2SizeMultiplier  float64 `yaml:"layer2SizeMultiplier"`
	HoverZoom             float64 `yaml:"hoverZoom"`
	AlignedSizeMultiplier float64 `yaml:"alignedSizeMultiplier"`
	MaxImages             int     `yaml:"maxImages"`
}

// AnimationConfig holds smoothing factors (fraction per frame) and durations
// in milliseconds.
type AnimationConfig struct {
	AlignmentDuration      float64 `yaml:"alignmentDuration"`
	HoverDuration          float64 `yaml:"hoverDuration"`
	OpacitySmoothness      float64 `yaml:"opacitySmoothness"`
	PanSmoothness          float64 `yaml:"panSmoothness"`
	VelocityDecay          float64 `yaml:"velocityDecay"`
	InertiaStrength        float64 `yaml:"inertiaStrength"`
	SizeInterpolationSpeed float64 `yaml:"sizeInterpolationSpeed"`
	MobileScrollSmoothness float64 `yaml:"mobileScrollSmoothness"`
	ZoomSmoothness         float64 `yaml:"zoomSmoothness"`
	FadedOpacity           float64 `yaml:"fadedOpacity"`
	AboutOpacity           float64 `yaml:"aboutOpacity"`
}

// CameraConfig describes the discrete zoom ladder and continuous limits.
type CameraConfig struct {
	ZoomLevels             []float64 `yaml:"zoomLevels"`
	DefaultZoomIndex       int       `yaml:"defaultZoomIndex"`
	MinZoom                float64   `yaml:"minZoom"`
	MaxZoom                float64   `yaml:"maxZoom"`
	ZoomTransitionDuration float64   `yaml:"zoomTransitionDuration"`
	ZoomSensitivity        float64   `yaml:"zoomSensitivity"`
	InitialPanX            float64   `yaml:"initialPanX"`
	InitialPanY            float64   `yaml:"initialPanY"`
}

// PointConfig drives the point generator.
type PointConfig struct {
	Count                 int     `yaml:"count"`
	MinDistance           float64 `yaml:"minDistance"`
	MaxGenerationAttempts int     `yaml:"maxGenerationAttempts"`
	BoundingBoxMargin     float64 `yaml:"boundingBoxMargin"`
	Seed                  uint64  `yaml:"seed"`
}

// ParallaxConfig controls how far layers shift with the pointer.
type ParallaxConfig struct {
	Strength        float64 `yaml:"strength"`
	Layer1Speed     float64 `yaml:"layer1Speed"`
	Layer2Speed     float64 `yaml:"layer2Speed"`
	MouseSmoothness float64 `yaml:"mouseSmoothness"`
}

// LayoutConfig holds spacing for the aligned layouts and captions.
type LayoutConfig struct {
	DesktopHorizontalGap  float64 `yaml:"desktopHorizontalGap"`
	MobilePadding         float64 `yaml:"mobilePadding"`
	MobileTopPadding      float64 `yaml:"mobileTopPadding"`
	MobileVerticalSpacing float64 `yaml:"mobileVerticalSpacing"`
	DesktopPadding        float64 `yaml:"desktopPadding"`
	TextSpacing           float64 `yaml:"textSpacing"`
	TextSize              float64 `yaml:"textSize"`
	TextLineHeight        float64 `yaml:"textLineHeight"`
	ShowCaptions          bool    `yaml:"showCaptions"`
}

// GridConfig styles the background grid.
type GridConfig struct {
	Size    float64 `yaml:"size"`
	Opacity float64 `yaml:"opacity"`
	Color   string  `yaml:"color"`
}

// UIConfig styles overlays and the narrow-viewport scroll gesture.
type UIConfig struct {
	Username                    string  `yaml:"username"`
	UsernameSize                float64 `yaml:"usernameSize"`
	UsernameX                   float64 `yaml:"usernameX"`
	UsernameY                   float64 `yaml:"usernameY"`
	Background                  string  `yaml:"background"`
	ScrollIndicatorWidth        float64 `yaml:"scrollIndicatorWidth"`
	ScrollIndicatorPadding      float64 `yaml:"scrollIndicatorPadding"`
	ScrollIndicatorHeight       float64 `yaml:"scrollIndicatorHeight"`
	ScrollIndicatorMinY         float64 `yaml:"scrollIndicatorMinY"`
	ScrollIndicatorOpacity      float64 `yaml:"scrollIndicatorOpacity"`
	ScrollIndicatorFadeDuration float64 `yaml:"scrollIndicatorFadeDuration"`
	ScrollThreshold             float64 `yaml:"scrollThreshold"`
	ScrollSensitivity           float64 `yaml:"scrollSensitivity"`
}

// MobileConfig decides when the narrow layouts apply.
type MobileConfig struct {
	Breakpoint     float64 `yaml:"breakpoint"`
	TouchDetection bool    `yaml:"touchDetection"`
}

// LoaderConfig bounds the image loader.
type LoaderConfig struct {
	Concurrency int     `yaml:"concurrency"`
	MaxRetries  int     `yaml:"maxRetries"`
	RetryDelay  float64 `yaml:"retryDelay"`
	MaxImages   int     `yaml:"-"`
}

// ContentConfig lists what the points show.
type ContentConfig struct {
	Items    []Item `yaml:"items"`
	FontPath string `yaml:"fontPath"`
	About    string `yaml:"about"`
}

// Config is the complete static configuration of a gallery. All magic numbers
// live here; load one from YAML with LoadConfig or start from DefaultConfig.
type Config struct {
	Image     ImageConfig     `yaml:"image"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Point     PointConfig     `yaml:"point"`
	Parallax  ParallaxConfig  `yaml:"parallax"`
	Layout    LayoutConfig    `yaml:"layout"`
	Grid      GridConfig      `yaml:"grid"`
	UI        UIConfig        `yaml:"ui"`
	Mobile    MobileConfig    `yaml:"mobile"`
	Loader    LoaderConfig    `yaml:"loader"`
	Content   ContentConfig   `yaml:"content"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Image: ImageConfig{
			BaseSize:              96,
			Layer2SizeMultiplier:  1 / 1.6,
			HoverZoom:             2.0,
			AlignedSizeMultiplier: 7.0,
			MaxImages:             100,
		},
		Animation: AnimationConfig{
			AlignmentDuration:      1250,
			HoverDuration:          250,
			OpacitySmoothness:      0.0334,
			PanSmoothness:          0.18,
			VelocityDecay:          0.85,
			InertiaStrength:        6,
			SizeInterpolationSpeed: 0.1,
			MobileScrollSmoothness: 0.15,
			ZoomSmoothness:         0.15,
			FadedOpacity:           0.1,
			AboutOpacity:           0.1,
		},
		Camera: CameraConfig{
			ZoomLevels:             []float64{0.5, 0.75, 1.0, 1.5, 2.0, 3.0},
			DefaultZoomIndex:       2,
			MinZoom:                0.5,
			MaxZoom:                3.0,
			ZoomTransitionDuration: 1500,
			ZoomSensitivity:        0.01,
		},
		Point: PointConfig{
			Count:                 100,
			MinDistance:           50,
			MaxGenerationAttempts: 1000,
			BoundingBoxMargin:     1.0 / 5,
		},
		Parallax: ParallaxConfig{
			Strength:        0.02,
			Layer1Speed:     1.0,
			Layer2Speed:     0.5,
			MouseSmoothness: 0.1,
		},
		Layout: LayoutConfig{
			DesktopHorizontalGap:  35,
			MobilePadding:         40,
			MobileTopPadding:      80,
			MobileVerticalSpacing: 0.7,
			DesktopPadding:        80,
			TextSpacing:           10,
			TextSize:              18,
			TextLineHeight:        1.2,
			ShowCaptions:          true,
		},
		Grid: GridConfig{
			Size:    25,
			Opacity: 0.3,
			Color:   "#ffffff",
		},
		UI: UIConfig{
			UsernameSize:                16,
			UsernameX:                   20,
			UsernameY:                   20,
			Background:                  "#000000",
			ScrollIndicatorWidth:        2.5,
			ScrollIndicatorPadding:      8,
			ScrollIndicatorHeight:       60,
			ScrollIndicatorMinY:         50,
			ScrollIndicatorOpacity:      0.4,
			ScrollIndicatorFadeDuration: 3000,
			ScrollThreshold:             10,
			ScrollSensitivity:           1.5,
		},
		Mobile: MobileConfig{
			Breakpoint:     768,
			TouchDetection: true,
		},
		Loader: LoaderConfig{
			Concurrency: 8,
			MaxRetries:  2,
			RetryDelay:  500,
		},
	}
}

// ParseConfig decodes YAML (or JSON) on top of DefaultConfig, so a file only
// needs the fields it changes. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every inconsistency in cfg as one joined error.
func (cfg *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(cfg.Image.BaseSize > 0, "image.baseSize must be > 0, got %v", cfg.Image.BaseSize)
	check(cfg.Image.Layer2SizeMultiplier > 0, "image.layer2SizeMultiplier must be > 0")
	check(cfg.Image.HoverZoom >= 1, "image.hoverZoom must be >= 1, got %v", cfg.Image.HoverZoom)
	check(cfg.Image.AlignedSizeMultiplier > 0, "image.alignedSizeMultiplier must be > 0")
	check(cfg.Point.Count >= 0, "point.count must be >= 0, got %d", cfg.Point.Count)
	check(cfg.Point.MinDistance >= 0, "point.minDistance must be >= 0")
	check(cfg.Point.MaxGenerationAttempts > 0, "point.maxGenerationAttempts must be > 0")
	check(cfg.Point.BoundingBoxMargin >= 0 && cfg.Point.BoundingBoxMargin < 0.5,
		"point.boundingBoxMargin must be in [0, 0.5), got %v", cfg.Point.BoundingBoxMargin)
	check(cfg.Grid.Size >= 0, "grid.size must be >= 0")
	check(cfg.Loader.Concurrency > 0, "loader.concurrency must be > 0")
	check(cfg.Loader.MaxRetries >= 0, "loader.maxRetries must be >= 0")

	levels := cfg.Camera.ZoomLevels
	check(len(levels) > 0, "camera.zoomLevels must not be empty")
	for i, z := range levels {
		check(z > 0, "camera.zoomLevels[%d] must be > 0, got %v", i, z)
		check(z >= cfg.Camera.MinZoom && z <= cfg.Camera.MaxZoom,
			"camera.zoomLevels[%d] = %v outside [minZoom, maxZoom]", i, z)
		if i > 0 {
			check(z > levels[i-1], "camera.zoomLevels must be strictly increasing at index %d", i)
		}
	}
	check(cfg.Camera.DefaultZoomIndex >= 0 && cfg.Camera.DefaultZoomIndex < len(levels),
		"camera.defaultZoomIndex %d out of range", cfg.Camera.DefaultZoomIndex)
	check(cfg.Camera.MinZoom > 0 && cfg.Camera.MinZoom <= cfg.Camera.MaxZoom,
		"camera.minZoom must be > 0 and <= camera.maxZoom")

	for _, s := range []struct {
		name string
		v    float64
	}{
		{"animation.opacitySmoothness", cfg.Animation.OpacitySmoothness},
		{"animation.panSmoothness", cfg.Animation.PanSmoothness},
		{"animation.velocityDecay", cfg.Animation.VelocityDecay},
		{"animation.sizeInterpolationSpeed", cfg.Animation.SizeInterpolationSpeed},
		{"animation.mobileScrollSmoothness", cfg.Animation.MobileScrollSmoothness},
		{"animation.zoomSmoothness", cfg.Animation.ZoomSmoothness},
		{"parallax.mouseSmoothness", cfg.Parallax.MouseSmoothness},
	} {
		check(s.v >= 0 && s.v <= 1, "%s must be in [0, 1], got %v", s.name, s.v)
	}

	if _, err := parseHexColor(cfg.Grid.Color); err != nil {
		errs = append(errs, fmt.Errorf("grid.color: %w", err))
	}
	if _, err := parseHexColor(cfg.UI.Background); err != nil {
		errs = append(errs, fmt.Errorf("ui.background: %w", err))
	}
	for i, it := range cfg.Content.Items {
		check(it.Path != "" || it.Glyph != "", "content.items[%d] needs a path or a glyph", i)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// loaderConfig returns the loader settings with the image cap applied.
func (cfg *Config) loaderConfig() LoaderConfig {
	lc := cfg.Loader
	lc.MaxImages = cfg.Image.MaxImages
	return lc
}

// millis converts a millisecond config value into seconds for gween. Tweens
// need a positive duration, so anything shorter than a millisecond becomes one.
func millis(ms float64) float32 {
	if ms < 1 {
		ms = 1
	}
	return float32(ms / 1000)
}

// millisDuration converts a millisecond config value to a time.Duration.
func millisDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// parseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa". An empty string is
// opaque white.
func parseHexColor(s string) (Color, error) {
	if s == "" {
		return ColorWhite, nil
	}
	if s[0] == '#' {
		s = s[1:]
	}
	var digits [8]uint8
	n := len(s)
	if n != 3 && n != 6 && n != 8 {
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}
	for i := 0; i < n; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits[i] = c - '0'
		case c >= 'a' && c <= 'f':
			digits[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			digits[i] = c - 'A' + 10
		default:
			return Color{}, fmt.Errorf("bad hex color %q", s)
		}
	}
	channel := func(i int) float64 {
		if n == 3 {
			return float64(digits[i]*17) / 255
		}
		return float64(digits[2*i]<<4|digits[2*i+1]) / 255
	}
	c := Color{R: channel(0), G: channel(1), B: channel(2), A: 1}
	if n == 8 {
		c.A = channel(3)
	}
	return c, nil
}
