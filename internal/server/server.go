package server

import (
	"log"
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"

	"github.com/DedPeredoz/rustyloot-scraper/internal/hub"
	"github.com/DedPeredoz/rustyloot-scraper/internal/inventory"
	"github.com/DedPeredoz/rustyloot-scraper/internal/stats"
)

// SnapshotFunc returns a copy of the current inventory aggregate.
type SnapshotFunc func() inventory.Aggregate

// Server exposes the live run over HTTP: counters, the inventory snapshot
// and a WebSocket stream of decoded events.
type Server struct {
	engine   *gin.Engine
	hub      *hub.Hub
	tracker  *stats.Tracker
	snapshot SnapshotFunc
	logger   *log.Logger
	port     string
}

// New creates the dashboard server.
func New(h *hub.Hub, tracker *stats.Tracker, snapshot SnapshotFunc, logger *log.Logger, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		hub:      h,
		tracker:  tracker,
		snapshot: snapshot,
		logger:   logger,
		port:     port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		snap := s.tracker.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"uptime":     snap.Uptime,
			"events":     snap.Events,
			"duplicates": snap.Duplicates,
			"dropped":    s.hub.Dropped(),
		})
	})

	// Metrics API.
	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.tracker.Stats())
	})

	// Current inventory aggregate.
	s.engine.GET("/api/inventory", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.snapshot())
	})

	// WebSocket event stream.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
