package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"adminhub/internal/apperr"
	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/internal/live"
	"adminhub/internal/normalize"
	"adminhub/pkg/models"
)

// ExportLedger records and lists CSV exports.
type ExportLedger interface {
	Record(ctx context.Context, job models.ExportJob) (models.ExportJob, error)
	ListRecent(ctx context.Context, limit int) ([]models.ExportJob, error)
}

// Broadcaster pushes events to live dashboards.
type Broadcaster interface {
	BroadcastJSON(v any) error
}

type Handler struct {
	Dashboard *dashboard.Service
	Exports   ExportLedger
	Live      Broadcaster
	Log       zerolog.Logger
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/taxonomy/:domain", h.taxonomy)
	rg.GET("/exports", h.listExports)
	rg.POST("/:domain/normalize", h.normalize)
	rg.POST("/:domain/export", h.export)
}

func (h *Handler) taxonomy(c *gin.Context) {
	d, ok := normalize.ParseDomain(c.Param("domain"))
	if !ok {
		h.fail(c, apperr.NotFoundErr("unknown domain"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"domain":  d,
		"tabs":    normalize.Tabs(d),
		"periods": normalize.Periods,
	})
}

func (h *Handler) normalize(c *gin.Context) {
	q, err := dashboard.ParseQuery(c.Param("domain"), c.Query("period"), c.Query("tab"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, apperr.InvalidErr("body must be a JSON array or object"))
		return
	}

	view, err := h.Dashboard.View(q, payload)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.broadcast(live.TabsSnapshot{
		Type:   live.EventTabsSnapshot,
		Domain: string(view.Domain),
		Period: string(view.Period),
		Counts: view.Counts,
		Total:  view.Counts[normalize.TabAll],
		At:     time.Now().UTC(),
	})
	c.JSON(http.StatusOK, view)
}

type exportReq struct {
	Headers []string `json:"headers"`
	Payload any      `json:"payload" binding:"required"`
}

func (h *Handler) export(c *gin.Context) {
	q, err := dashboard.ParseQuery(c.Param("domain"), c.Query("period"), c.Query("tab"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.InvalidErr("body must be {\"headers\"?, \"payload\"}"))
		return
	}

	view, err := h.Dashboard.View(q, req.Payload)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := view.WriteCSV(&buf, req.Headers); err != nil {
		h.fail(c, apperr.Wrap(fmt.Errorf("write csv: %w", err)))
		return
	}

	job := models.ExportJob{
		Domain: string(view.Domain),
		Period: string(view.Period),
		Tab:    view.Tab,
		Rows:   view.Total,
	}
	if claims := auth.MustGetClaims(c); claims != nil {
		job.OperatorID = claims.OperatorID
	}
	if h.Exports != nil {
		saved, err := h.Exports.Record(c.Request.Context(), job)
		if err != nil {
			h.fail(c, apperr.Wrap(err))
			return
		}
		job = saved
		h.broadcast(live.ExportCreated{
			Type:       live.EventExportCreated,
			ExportID:   job.ID,
			OperatorID: job.OperatorID,
			Domain:     job.Domain,
			Rows:       job.Rows,
			At:         job.CreatedAt,
		})
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, view.Filename()))
	if job.ID != "" {
		c.Header("X-Export-ID", job.ID)
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) listExports(c *gin.Context) {
	if h.Exports == nil {
		c.JSON(http.StatusOK, gin.H{"items": []models.ExportJob{}})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	jobs, err := h.Exports.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": jobs})
}

func (h *Handler) broadcast(v any) {
	if h.Live == nil {
		return
	}
	if err := h.Live.BroadcastJSON(v); err != nil {
		h.Log.Warn().Err(err).Msg("live broadcast failed")
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.PublicMessage(err)})
}
