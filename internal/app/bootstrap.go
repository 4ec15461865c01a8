package app

import (
	"context"
	"fmt"
	"strings"

	"career-sync/internal/config"
	"career-sync/internal/delivery/http/handler"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/delivery/http/routes"
	"career-sync/internal/logger"
	"career-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/rs/zerolog"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

// Warmup trains the first snapshot. The server must not accept traffic before it succeeds.
func (a *App) Warmup(ctx context.Context) error {
	info, err := a.Container.Model.Retrain(ctx)
	if err != nil {
		return fmt.Errorf("initial training: %w", err)
	}
	a.Container.Logger.Info().
		Str("snapshot_id", info.ID.String()).
		Int("samples", info.Samples).
		Int("classes", len(info.Classes)).
		Int("vocabulary", info.Vocabulary).
		Dur("duration", info.Duration).
		Msg("model ready")
	return nil
}

func registerGlobalMiddleware(app *fiber.App, log zerolog.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
	}))

	accessMw := middleware.NewAccessLogMiddleware(logger.Component(log, "http"))
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger.Component(log, "http"))
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	httpLog := logger.Component(c.Logger, "http")
	routes.NewRegistry(routes.Handlers{
		Health:  handler.NewHealthHandler(c.Store),
		Profile: handler.NewProfileHandler(c.Recommendation, httpLog),
		Model:   handler.NewModelHandler(c.Model, httpLog),
		WS:      ws.NewHandler(c.Hub, logger.Component(c.Logger, "ws")),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
