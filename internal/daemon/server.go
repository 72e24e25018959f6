// Package daemon serves live run status and the captured log over a local
// HTTP endpoint, so CI dashboards can poll a run while it is in flight.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sanjeeviv/shark/internal/models"
)

// RunStatusProvider is the slice of the supervisor the server needs.
type RunStatusProvider interface {
	Status() models.RunStatus
}

// EventSource exposes the warn-and-above log entries buffered for the run.
type EventSource interface {
	GetEvents() []*logrus.Entry
}

type Server struct {
	addr   string
	run    RunStatusProvider
	events EventSource

	httpServer *http.Server
}

func NewServer(addr string, run RunStatusProvider, events EventSource) *Server {
	s := &Server{
		addr:   addr,
		run:    run,
		events: events,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", s.getHealth)
	engine.GET("/api/status", s.getStatus)
	engine.GET("/api/logs", s.getLogs)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	return s
}

// Start listens in the background. The server's lifetime is bounded by the
// run; callers shut it down once the child is reaped.
func (s *Server) Start() {
	go func() {
		logrus.Infoln("Status server listening on:", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Errorln("Status server failed")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getStatus(c *gin.Context) {
	status := s.run.Status()

	events := []string{}
	if s.events != nil {
		for _, entry := range s.events.GetEvents() {
			events = append(events, entry.Message)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run":      status,
		"finished": status.Finished(),
		"events":   events,
	})
}

func (s *Server) getLogs(c *gin.Context) {
	status := s.run.Status()

	if len(status.LogPath) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no log sink for this run"})
		return
	}

	data, err := os.ReadFile(status.LogPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log sink not readable"})
		return
	}

	if tail, ok := c.GetQuery("tail"); ok {
		data = tailBytes(data, tail)
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}
