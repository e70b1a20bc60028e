package dashboard

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/crisiswatch/api/internal/features/ai"
	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/features/shelters"
	"github.com/crisiswatch/api/internal/pkg/observability"
	"github.com/crisiswatch/api/internal/pkg/response"
)

// recentReportsLimit bounds the raw report list carried in a snapshot
const recentReportsLimit = 100

type Handler struct {
	reportsRepo  *reports.Repository
	sheltersRepo *shelters.Repository
	aiRepo       *ai.Repository
	scope        HomeScope
	timeout      time.Duration
	metrics      *observability.Metrics

	// session, when set, keeps a warm snapshot refreshed in the
	// background; requests fall back to a direct build when it has
	// nothing fresh.
	session *Session
}

func NewHandler(reportsRepo *reports.Repository, sheltersRepo *shelters.Repository, aiRepo *ai.Repository, scope HomeScope, timeout time.Duration, metrics *observability.Metrics) *Handler {
	return &Handler{
		reportsRepo:  reportsRepo,
		sheltersRepo: sheltersRepo,
		aiRepo:       aiRepo,
		scope:        scope,
		timeout:      timeout,
		metrics:      metrics,
	}
}

// buildSnapshot reads everything the dashboard needs and aggregates it.
// Reads are from one point in time per call; consecutive polls may see
// different sets, which the polling contract allows.
func (h *Handler) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	if h.metrics != nil {
		timer := prometheus.NewTimer(h.metrics.AggregationDuration)
		defer timer.ObserveDuration()
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	recent, _, err := h.reportsRepo.List(ctx, "", "", recentReportsLimit, 0)
	if err != nil {
		return nil, err
	}

	shelterList, err := h.sheltersRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	updates, err := h.aiRepo.List(ctx, "", 20)
	if err != nil {
		return nil, err
	}

	return BuildSnapshot(recent, shelterList, updates, h.scope), nil
}

// Data godoc
// @Summary Get dashboard data
// @Description Full dashboard snapshot: recent reports, shelters, AI updates, and severity buckets for the local and global scopes
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=Snapshot}
// @Failure 503 {object} response.ErrorResponse
// @Router /dashboard/data [get]
func (h *Handler) Data(c *gin.Context) {
	if h.session != nil {
		if snapshot := h.session.Snapshot(); snapshot != nil && !h.session.Stale() {
			response.Success(c, snapshot)
			return
		}
	}

	snapshot, err := h.buildSnapshot(c.Request.Context())
	if err != nil {
		// No partial snapshots: a failed read fails the whole poll and
		// the client keeps its previous data.
		response.ServiceUnavailable(c, "Dashboard data unavailable", "STORE_UNAVAILABLE")
		return
	}

	response.Success(c, snapshot)
}
