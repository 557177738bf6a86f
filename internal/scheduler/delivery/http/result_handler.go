package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang-filing-sentiment/internal/scheduler/dto"
	"golang-filing-sentiment/internal/scheduler/service"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResultHandler handles HTTP requests for sentiment results and trends.
type ResultHandler struct {
	resultService service.ResultService
	logger        *logger.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService service.ResultService, logger *logger.Logger) *ResultHandler {
	return &ResultHandler{resultService: resultService, logger: logger}
}

// RegisterRoutes registers the result routes to the Echo group.
func (h *ResultHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/results", h.GetResults)
	g.GET("/tickers/:ticker/trend", h.GetTrend)
}

// GetResults returns stored sentiment results, optionally filtered by ticker.
func (h *ResultHandler) GetResults(c echo.Context) error {
	ticker := strings.ToUpper(c.QueryParam("ticker"))

	limit := 0
	if rawLimit := c.QueryParam("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}

	results, err := h.resultService.GetResults(c.Request().Context(), ticker, limit)
	if err != nil {
		h.logger.Error("Failed to get sentiment results", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get sentiment results"})
	}
	return c.JSON(http.StatusOK, results)
}

// GetTrend returns the derived sentiment trend for a ticker.
func (h *ResultHandler) GetTrend(c echo.Context) error {
	ticker := strings.ToUpper(c.Param("ticker"))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Ticker is required"})
	}

	window := 0
	if rawWindow := c.QueryParam("window"); rawWindow != "" {
		parsed, err := strconv.Atoi(rawWindow)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid window"})
		}
		window = parsed
	}

	trend, err := h.resultService.GetTrend(c.Request().Context(), ticker, window)
	if err != nil {
		if errors.Is(err, sentiment.ErrNoAggregates) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No sentiment results for ticker"})
		}
		h.logger.Error("Failed to get trend", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get trend"})
	}
	return c.JSON(http.StatusOK, trend)
}
