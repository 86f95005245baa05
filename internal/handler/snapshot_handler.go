package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

type SnapshotHandler struct {
	snapshots domain.SnapshotRepository
}

func NewSnapshotHandler(snapshots domain.SnapshotRepository) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// HandleGetSnapshot serves the glanceable next-alarm summary consumed by
// widgets and other companion surfaces.
func (h *SnapshotHandler) HandleGetSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.snapshots.LoadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "snapshot not written yet")
			return
		}
		slog.ErrorContext(ctx, "failed to load snapshot", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to load snapshot")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
