package api

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/render"
	"github.com/bobby-s-dev/airport-delays/internal/services"
)

// Refresher runs a manual refresh cycle.
type Refresher interface {
	ForceRun(ctx context.Context) (*models.RefreshResult, error)
	GetStatus() map[string]interface{}
}

type Handler struct {
	airports   *models.AirportTable
	aggregator *services.Aggregator
	controller *render.Controller
	scene      *render.Scene
	scheduler  Refresher
	logger     *zap.Logger
}

func NewHandler(airports *models.AirportTable, aggregator *services.Aggregator, controller *render.Controller, scene *render.Scene, scheduler Refresher, logger *zap.Logger) *Handler {
	return &Handler{
		airports:   airports,
		aggregator: aggregator,
		controller: controller,
		scene:      scene,
		scheduler:  scheduler,
		logger:     logger,
	}
}

// GetScene handles GET /api/v1/scene
func (h *Handler) GetScene(c *fiber.Ctx) error {
	return c.JSON(h.scene.View())
}

// GetAirports handles GET /api/v1/airports
func (h *Handler) GetAirports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"airports": h.airports.All(),
		"tracked":  h.airports.Tracked(),
	})
}

// GetStatuses handles GET /api/v1/statuses
func (h *Handler) GetStatuses(c *fiber.Ctx) error {
	cache := h.aggregator.Cache()
	return c.JSON(fiber.Map{
		"cycle_id": cache.CycleID(),
		"statuses": cache.Ordered(),
	})
}

// SelectAirport handles POST /api/v1/select/:code
func (h *Handler) SelectAirport(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	flyTo := c.QueryBool("fly_to", true)

	err := h.controller.Dispatch(render.SelectAirport{Code: code, FlyTo: flyTo})
	if errors.Is(err, render.ErrUnknownAirport) {
		return fiber.NewError(fiber.StatusNotFound, "Unknown or untracked airport: "+code)
	}
	if err != nil {
		return err
	}

	h.logger.Debug("Airport selected", zap.String("code", code), zap.Bool("fly_to", flyTo))
	return c.JSON(h.scene.View())
}

// Refresh handles POST /api/v1/refresh
func (h *Handler) Refresh(c *fiber.Ctx) error {
	res, err := h.scheduler.ForceRun(c.UserContext())
	if errors.Is(err, services.ErrStaleCycle) || errors.Is(err, render.ErrStaleResult) {
		return fiber.NewError(fiber.StatusConflict, "Refresh superseded by a newer cycle")
	}
	if err != nil {
		h.logger.Error("Manual refresh failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to refresh delay data",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"cycle_id": res.CycleID,
		"trace_id": res.TraceID,
		"health":   res.Health(),
		"scene":    h.scene.View(),
	})
}

// GetMapPDF handles GET /api/v1/map.pdf
func (h *Handler) GetMapPDF(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := render.WritePDF(&buf, h.scene.View()); err != nil {
		h.logger.Error("Failed to render map pdf", zap.Error(err))
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="airport-delays.pdf"`)
	c.Type("pdf")
	return c.Send(buf.Bytes())
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	view := h.scene.View()
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.aggregator.GetLastFetchTime(),
		"uptime":     time.Since(startTime).String(),
		"feed":       view.Health,
		"selected":   h.controller.Selected(),
	})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"aggregator": h.aggregator.GetStats(),
		"scheduler":  h.scheduler.GetStatus(),
		"timestamp":  time.Now(),
	})
}

var startTime = time.Now()
