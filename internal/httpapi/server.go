package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chatcal/internal/history"
)

// Server exposes the interaction log over HTTP:
//
//	GET    /history  full ordered log as JSON
//	DELETE /history  clear the log
type Server struct {
	e    *echo.Echo
	hist *history.Log
}

func New(hist *history.Log) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{e: e, hist: hist}
	e.GET("/history", s.getHistory)
	e.DELETE("/history", s.clearHistory)
	return s
}

func (s *Server) getHistory(c echo.Context) error {
	entries := s.hist.Snapshot()
	if entries == nil {
		entries = []history.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) clearHistory(c echo.Context) error {
	s.hist.Clear()
	return c.JSON(http.StatusOK, map[string]string{"message": "history cleared"})
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}
