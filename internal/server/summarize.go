package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleSummarize runs the AI summarization round-trip for raw email text.
// Public by design: the result is not persisted until the user saves it.
func (s *Server) handleSummarize(c echo.Context) error {
	var req SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.EmailBody) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email body is required"})
	}

	summary, err := s.summarizer.SummarizeEmail(c.Request().Context(), req.EmailBody)
	if err != nil {
		s.logger.Error("summarization failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Failed to summarize email. Please try again later."})
	}
	return c.JSON(http.StatusOK, SummarizeResponse{Summary: summary})
}

// handleTriggerReminders runs one due-check sweep. Public so an external
// scheduler or the client polling loop can trigger it.
func (s *Server) handleTriggerReminders(c echo.Context) error {
	count, err := s.sweeper.Run(c.Request().Context())
	if err != nil {
		s.logger.Error("trigger sweep", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error triggering reminders"})
	}
	return c.JSON(http.StatusOK, TriggerResponse{Success: true, Count: count})
}
