// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/app/service"
	"github.com/begengineer/quickfit/internal/transport/httpserver/dto"
	"github.com/begengineer/quickfit/internal/validator"
)

// VideoHandler handles video retrieval HTTP requests.
type VideoHandler struct {
	service   *service.VideoService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc *service.VideoService, v *validator.Validator, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// GetVideo handles GET /api/v1/videos
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	var req dto.GetVideoRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid level parameter",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Invalid level parameter",
			Details: err,
		})
	}

	level, ok := req.ToLevel()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid level parameter",
		})
	}

	video, err := h.service.PickRandom(c.Context(), level, req.ExcludeIDList())
	if err != nil {
		h.logger.Error("video fetch failed", zap.String("level", string(level)), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch video",
		})
	}

	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "No videos found for this level",
		})
	}

	return c.JSON(dto.VideoResponse{
		Success: true,
		Video:   dto.FromDomainVideo(video),
	})
}

// GetStats handles GET /api/v1/videos/stats
func (h *VideoHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		h.logger.Error("stats fetch failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch stats",
		})
	}

	return c.JSON(dto.FromLevelStats(stats))
}
