// Package server exposes the dashboard's data API over HTTP. Every
// endpoint is a thin read of the view-model service; upstream failures
// surface as a JSON fallback payload, never as a panic.
package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"forex-dashboard/internal/dashboard"
	"forex-dashboard/internal/domain"
	"forex-dashboard/internal/equity"
	"forex-dashboard/internal/observability"
)

// Server wires the dashboard service into a gin router.
type Server struct {
	svc     *dashboard.Service
	hub     *Hub
	metrics *observability.Metrics
	logger  *log.Logger
	engine  *gin.Engine
}

// Options contains configuration for creating a Server.
type Options struct {
	Service *dashboard.Service
	Hub     *Hub
	Metrics *observability.Metrics
	Logger  *log.Logger
}

// New creates the server and registers all routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[server] ", log.LstdFlags)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		svc:     opts.Service,
		hub:     opts.Hub,
		metrics: opts.Metrics,
		logger:  logger,
		engine:  engine,
	}

	if s.metrics != nil {
		engine.Use(s.observe)
	}

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api")
	{
		api.GET("/summary", s.handleSummary)
		api.GET("/pairs", s.handlePairs)
		api.GET("/pairs/:id", s.handlePair)
		api.GET("/pairs/:id/equity", s.handleEquity)
		api.GET("/confidence", s.handleConfidence)
		api.GET("/charts/:name", s.handleChart)
		api.POST("/invalidate", s.handleInvalidate)
	}

	if s.metrics != nil {
		engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	if s.hub != nil {
		engine.GET("/ws", func(c *gin.Context) {
			s.hub.Serve(c.Writer, c.Request)
		})
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// observe records request durations by route and status.
func (s *Server) observe(c *gin.Context) {
	started := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	s.metrics.RequestDuration.
		WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
		Observe(time.Since(started).Seconds())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary := s.svc.Summary()
	if summary == nil {
		s.fallback(c)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handlePairs(c *gin.Context) {
	if s.svc.Summary() == nil {
		s.fallback(c)
		return
	}
	c.JSON(http.StatusOK, s.svc.Pairs(parseFilter(c)))
}

func (s *Server) handlePair(c *gin.Context) {
	if s.svc.Summary() == nil {
		s.fallback(c)
		return
	}

	pair := s.svc.Pair(domain.PairID(c.Param("id")))
	if pair == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown pair"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) handleEquity(c *gin.Context) {
	params, err := parseEquityParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := domain.PairID(c.Param("id"))
	points, err := s.svc.EquityCurve(id, params)
	if err != nil {
		if errors.Is(err, equity.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.fallback(c)
		return
	}

	pair := s.svc.Pair(id)
	totalTrades := 0
	if pair != nil {
		totalTrades = pair.TotalTrades
	}
	c.JSON(http.StatusOK, gin.H{
		"points":  points,
		"summary": equity.Summarize(points, totalTrades),
	})
}

func (s *Server) handleConfidence(c *gin.Context) {
	conf := s.svc.Confidence()
	if conf == nil {
		s.fallback(c)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (s *Server) handleChart(c *gin.Context) {
	dataset, err := s.svc.ChartDataset(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if dataset == nil {
		s.fallback(c)
		return
	}
	c.JSON(http.StatusOK, dataset)
}

// handleInvalidate drops the cache and reloads. A successful reload
// fires the service's reload hook, which notifies websocket clients;
// notifying here as well would send every client a duplicate.
func (s *Server) handleInvalidate(c *gin.Context) {
	s.svc.Invalidate()

	if err := s.svc.LoadAll(c.Request.Context()); err != nil {
		s.logger.Printf("reload after invalidate failed: %v", err)
		s.fallback(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generation": s.svc.Generation()})
}

// fallback renders the degraded payload the UI turns into its fallback
// component: HTTP 503 plus the queryable last error.
func (s *Server) fallback(c *gin.Context) {
	payload := gin.H{"fallback": true}
	if err := s.svc.LastError(); err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(http.StatusServiceUnavailable, payload)
}

func parseFilter(c *gin.Context) dashboard.Filter {
	filter := dashboard.Filter{
		Group: dashboard.Group(c.Query("group")),
	}
	if v := c.Query("min_trades"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinTrades = n
		}
	}
	if v := c.Query("tier"); v != "" {
		for _, t := range strings.Split(v, ",") {
			filter.Tiers = append(filter.Tiers, domain.Tier(strings.ToUpper(strings.TrimSpace(t))))
		}
	}
	return filter
}

func parseEquityParams(c *gin.Context) (equity.Params, error) {
	var params equity.Params

	if v := c.Query("balance"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("balance must be a number")
		}
		params.StartingBalance = b
	}
	if v := c.Query("risk"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("risk must be a number")
		}
		params.RiskPerTrade = r
	}
	if v := c.Query("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("points must be an integer")
		}
		params.Points = n
	}
	if v := c.Query("horizon"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("horizon must be an integer")
		}
		params.HorizonDays = n
	}
	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return params, errors.New("seed must be an integer")
		}
		params.Seed = &seed
	}

	return params, nil
}
