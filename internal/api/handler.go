package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/config"
	"github.com/sanspareilsmyn/insightlens/internal/table"
)

type analysisPage struct {
	Analyzer string              `json:"analyzer"`
	Params   gin.H               `json:"params"`
	Metrics  map[string]*float64 `json:"metrics"`
}

type datasetInfo struct {
	Dataset string `json:"dataset"`
	Rows    int    `json:"rows"`
}

// Handler serves analyses and dataset uploads over HTTP.
// Query parameters left out by the caller fall back to defaults.
type Handler struct {
	suite    *analyzer.Suite
	defaults config.AnalyzersConfig
	logger   *zap.Logger
}

func NewHandler(suite *analyzer.Suite, defaults config.AnalyzersConfig, logger *zap.Logger) *Handler {
	return &Handler{
		suite:    suite,
		defaults: defaults,
		logger:   logger,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.GET("/customer-behavior", h.CustomerBehavior)
	v1.GET("/market-trends", h.MarketTrends)
	v1.GET("/operational-metrics", h.OperationalMetrics)
	v1.GET("/datasets", h.ListDatasets)
	v1.PUT("/datasets/:dataset", h.ReplaceDataset)
}

func (h *Handler) CustomerBehavior(ctx *gin.Context) {
	segment := ctx.DefaultQuery("segment", h.defaults.Customer.Segment)
	window, ok := intQuery(ctx, "window", h.defaults.Customer.WindowDays)
	if !ok {
		return
	}

	metrics, err := h.suite.Customer.AnalyzeBehavior(segment, window)
	h.respond(ctx, analyzer.DatasetCustomer, gin.H{"segment": segment, "window": window}, metrics, err)
}

func (h *Handler) MarketTrends(ctx *gin.Context) {
	period := ctx.DefaultQuery("period", h.defaults.Market.Period)
	window, ok := intQuery(ctx, "window", h.defaults.Market.WindowSize)
	if !ok {
		return
	}

	metrics, err := h.suite.Market.AnalyzeTrends(period, window)
	h.respond(ctx, analyzer.DatasetMarket, gin.H{"period": period, "window": window}, metrics, err)
}

func (h *Handler) OperationalMetrics(ctx *gin.Context) {
	metric := ctx.DefaultQuery("metric", h.defaults.Operational.KeyMetric)
	window, ok := intQuery(ctx, "window", h.defaults.Operational.WindowSize)
	if !ok {
		return
	}

	metrics, err := h.suite.Operational.AnalyzeOperationalMetrics(metric, window)
	h.respond(ctx, analyzer.DatasetOperational, gin.H{"metric": metric, "window": window}, metrics, err)
}

func (h *Handler) ListDatasets(ctx *gin.Context) {
	holders := h.suite.Holders()
	infos := make([]datasetInfo, 0, len(holders))
	for _, d := range holders {
		infos = append(infos, datasetInfo{Dataset: d.Name(), Rows: d.Len()})
	}
	ctx.JSON(http.StatusOK, infos)
}

// ReplaceDataset replaces a dataset with the JSON array of rows in the request body.
// A null body is rejected; an empty array holds an empty table.
func (h *Handler) ReplaceDataset(ctx *gin.Context) {
	dataset := ctx.Param("dataset")

	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read body: %s", err)})
		return
	}
	rows, err := table.ParseRows(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of rows"})
		return
	}

	if err := h.suite.Update(dataset, rows); err != nil {
		if errors.Is(err, analyzer.ErrUnknownDataset) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Dataset update failed", zap.String("dataset", dataset), zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, datasetInfo{Dataset: dataset, Rows: len(rows)})
}

func (h *Handler) respond(ctx *gin.Context, name string, params gin.H, metrics analyzer.Metrics, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrInvalidValue) {
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	page := analysisPage{
		Analyzer: name,
		Params:   params,
		Metrics:  make(map[string]*float64, len(metrics)),
	}
	for k, v := range metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			page.Metrics[k] = nil // not representable in JSON
			continue
		}
		value := v
		page.Metrics[k] = &value
	}
	ctx.JSON(http.StatusOK, page)
}

// intQuery reads an integer query parameter, writing a 400 response when it is malformed.
func intQuery(ctx *gin.Context, key string, fallback int) (int, bool) {
	raw, present := ctx.GetQuery(key)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse %s: %s", key, err)})
		return 0, false
	}
	return v, true
}
