package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/app/service"
	"github.com/begengineer/quickfit/internal/transport/httpserver/dto"
)

// CronHandler handles scheduled maintenance HTTP requests.
type CronHandler struct {
	curation *service.CurationService
	logger   *zap.Logger
}

// NewCronHandler creates a new CronHandler.
func NewCronHandler(curation *service.CurationService, logger *zap.Logger) *CronHandler {
	return &CronHandler{
		curation: curation,
		logger:   logger,
	}
}

// UpdateVideos handles GET /api/v1/cron/update-videos
//
// A level failure does not fail the request; the response reports the
// stored count per level regardless.
func (h *CronHandler) UpdateVideos(c *fiber.Ctx) error {
	summary := h.curation.RefreshAll(c.Context())

	if failed := summary.Failed(); failed > 0 {
		h.logger.Warn("curation run finished with failed levels", zap.Int("failed", failed))
	}

	return c.JSON(dto.FromRefreshSummary(summary))
}
