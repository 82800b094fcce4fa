// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the initial camera pose and input tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	Up          [3]float32 `yaml:"up"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`

	// FrameIndependent scales held-key movement by elapsed time
	// (normalized to 60 fps). Off by default: one step per frame.
	FrameIndependent bool `yaml:"frame_independent"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Resolution int32 `yaml:"resolution"`
}

// AssetsConfig holds model paths, one per scene object.
type AssetsConfig struct {
	Scene     string `yaml:"scene"`
	Skydome   string `yaml:"skydome"`
	Gate      string `yaml:"gate"`
	Warehouse string `yaml:"warehouse"`
	Vehicle   string `yaml:"vehicle"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock scene values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "OpenGL Project Core",
			Width:      1920,
			Height:     1080,
			Fullscreen: false,
			VSync:      true,
			Near:       0.1,
			Far:        1000.0,
			ClearColor: [3]float32{0.7, 0.7, 0.7},
		},
		Camera: CameraConfig{
			Position:    [3]float32{7.3589, 3.9583, 6.9258},
			Target:      [3]float32{0.0, 4.0, 5.0},
			Up:          [3]float32{0.0, 1.0, 0.0},
			Speed:       0.03,
			Sensitivity: 0.1,
		},
		Shadow: ShadowConfig{
			Resolution: 2048,
		},
		Assets: AssetsConfig{
			Scene:     "models/scene/scene.obj",
			Skydome:   "models/skydome/skydome.obj",
			Gate:      "models/gate/gate.obj",
			Warehouse: "models/old_warehouse/old_warehouse.obj",
			Vehicle:   "models/rust_vehicle/rustVehicle.obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
