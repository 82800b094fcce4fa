// Package app wires the window, GPU resources and viewer together.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/config"
	"github.com/Faultbox/yardview/internal/engine/gpu"
	"github.com/Faultbox/yardview/internal/engine/model"
	"github.com/Faultbox/yardview/internal/engine/shader"
	"github.com/Faultbox/yardview/internal/engine/shader/glsl"
	"github.com/Faultbox/yardview/internal/engine/shadow"
	"github.com/Faultbox/yardview/internal/engine/transform"
	"github.com/Faultbox/yardview/internal/engine/window"
	"github.com/Faultbox/yardview/internal/logger"
	"github.com/Faultbox/yardview/internal/render"
	"github.com/Faultbox/yardview/internal/scene"
	"github.com/Faultbox/yardview/internal/viewer"
)

// App owns every resource of a viewer session.
type App struct {
	cfg *config.Config

	win       *window.Window
	dev       *gpu.Device
	basic     *shader.Program
	depth     *shader.Program
	shadowMap *shadow.Map
	models    []*model.Model
	viewer    *viewer.Viewer
}

// New opens the window and loads all GPU resources. On error everything
// created so far is released.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("viewer initialized successfully")
	return a, nil
}

func (a *App) init() error {
	var err error

	// Window first: it creates the GL context everything else needs.
	a.win, err = window.New(window.ConfigFrom(a.cfg.Graphics))
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	a.dev, err = gpu.New(a.cfg.Graphics.ClearColor)
	if err != nil {
		return fmt.Errorf("failed to initialize GPU: %w", err)
	}

	a.basic, err = shader.Load("basic", glsl.BasicVertex, glsl.BasicFragment, render.BasicUniforms...)
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}
	a.depth, err = shader.Load("depth", glsl.ShadowVertex, glsl.ShadowFragment, render.DepthUniforms...)
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}

	objects, err := a.loadScene()
	if err != nil {
		return err
	}

	a.shadowMap, err = shadow.NewMap(a.cfg.Shadow.Resolution)
	if err != nil {
		return fmt.Errorf("failed to create shadow map: %w", err)
	}

	graph, err := render.Compile(
		render.NewColorPass(a.dev, a.basic, a.shadowMap),
		render.NewShadowPass(a.dev, a.depth, a.shadowMap),
	)
	if err != nil {
		return fmt.Errorf("failed to build pass graph: %w", err)
	}

	a.uploadStaticUniforms()

	a.viewer, err = viewer.New(a.cfg, a.win, a.dev, graph, objects)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}

	for _, err := range a.dev.Errors() {
		logger.Warn("gpu error during startup", zap.Error(err))
	}
	return nil
}

func (a *App) loadScene() (*scene.Set, error) {
	paths := map[scene.ObjectID]string{
		scene.MainScene: a.cfg.Assets.Scene,
		scene.Skydome:   a.cfg.Assets.Skydome,
		scene.Gate:      a.cfg.Assets.Gate,
		scene.Warehouse: a.cfg.Assets.Warehouse,
		scene.Vehicle:   a.cfg.Assets.Vehicle,
	}

	set := scene.NewSet()
	for _, id := range scene.IDs() {
		m, err := model.Load(paths[id])
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", id, err)
		}
		a.models = append(a.models, m)
		set.Put(id, m)
	}
	return set, nil
}

// uploadStaticUniforms sets the values the color pass only refreshes
// after drawing, so the first frame is lit correctly.
func (a *App) uploadStaticUniforms() {
	light := transform.DefaultLight()

	a.basic.Use()
	a.basic.SetVec3(render.UniformLightDir, light.Direction)
	a.basic.SetVec3(render.UniformLightColor, light.Color)
	a.basic.SetVec3(render.UniformPointLight, light.PointPosition)
	a.basic.SetInt(render.UniformShadowMap, int32(render.ShadowTextureUnit))
}

// Run blocks until the viewer exits.
func (a *App) Run() error {
	return a.viewer.Run()
}

// Close releases resources in reverse creation order.
func (a *App) Close() {
	logger.Info("closing viewer")

	for _, m := range a.models {
		m.Delete()
	}
	a.models = nil
	if a.shadowMap != nil {
		a.shadowMap.Destroy()
	}
	if a.depth != nil {
		a.depth.Delete()
	}
	if a.basic != nil {
		a.basic.Delete()
	}
	if a.win != nil {
		a.win.Close()
		a.win = nil
	}
}
