// Package app wires configuration, logging, the event bus, the rules engine
// and the enrollment handler into one running service.
package app

import (
	"errors"
	"fmt"

	"github.com/alem-hub/enrollment/config"
	"github.com/alem-hub/enrollment/internal/application/command"
	"github.com/alem-hub/enrollment/internal/domain/enrollment"
	"github.com/alem-hub/enrollment/internal/infrastructure/messaging"
	"github.com/alem-hub/enrollment/pkg/logger"
)

// App holds the wired components.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Bus    *messaging.InMemoryEventBus
	Engine *enrollment.Engine
	Enroll *command.EnrollStudentHandler
}

// Options tunes wiring that is not part of the configuration file.
type Options struct {
	// Logger replaces the logger built from the configuration.
	Logger *logger.Logger

	// AsyncEvents delivers events on the bus worker pool.
	AsyncEvents bool
}

// New builds an App from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 1. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := opts.Logger
	if log == nil {
		log = cfg.Logger()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	busCfg := messaging.DefaultInMemoryEventBusConfig()
	busCfg.AsyncMode = opts.AsyncEvents
	busCfg.Logger = log
	bus := messaging.NewInMemoryEventBus(busCfg)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. RULES ENGINE AND HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	engine := enrollment.NewEngine(cfg.Rules.Policy())
	enroll := command.NewEnrollStudentHandler(engine, command.NewStudentLocks(), bus, log)

	p := engine.Policy()
	log.Info("enrollment service ready",
		logger.String("env", string(cfg.App.Environment)),
		logger.Bool("debug", cfg.App.Debug),
		logger.Float64("low_gpa", p.LowGPA),
		logger.Int("low_gpa_max_units", p.LowGPAMaxUnits),
		logger.Float64("mid_gpa", p.MidGPA),
		logger.Int("mid_gpa_max_units", p.MidGPAMaxUnits),
		logger.Int("max_units", p.MaxUnits),
		logger.Bool("async_events", opts.AsyncEvents))

	return &App{
		Config: cfg,
		Logger: log,
		Bus:    bus,
		Engine: engine,
		Enroll: enroll,
	}, nil
}

// Load reads the configuration at path and builds an App from it.
func Load(path string, opts Options) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}
	return New(cfg, opts)
}

// Close drains the event bus.
func (a *App) Close() error {
	if err := a.Bus.Close(); err != nil {
		return fmt.Errorf("app: close event bus: %w", err)
	}
	a.Logger.Info("enrollment service stopped")
	return nil
}
