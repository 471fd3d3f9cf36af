package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/auth"
	"github.com/pathakanu/mailmind/internal/model"
	"github.com/pathakanu/mailmind/internal/store"
)

func (s *Server) handleCreateSummarization(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)

	var req CreateSummarizationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Summarization - %s", s.now().Format("2006-01-02 15:04:05"))
	}

	summarization := &model.Summarization{
		OwnerID: ownerID,
		Name:    name,
		Summary: req.Summary,
		Tags:    []string{},
	}
	if err := s.summarizations.Create(c.Request().Context(), summarization); err != nil {
		s.logger.Error("create summarization", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
	return c.JSON(http.StatusCreated, summarization)
}

func (s *Server) handleListSummarizations(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)

	summaries, err := s.summarizations.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		s.logger.Error("list summarizations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string][]model.Summarization{"summaries": summaries})
}

func (s *Server) handleUpdateSummarization(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)
	id := c.Param("id")

	var req UpdateSummarizationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	tags := model.SanitizeTags(req.Tags)

	updated, err := s.summarizations.Update(c.Request().Context(), ownerID, id, req.Summary, req.Name, tags)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Summary not found"})
	}
	if err != nil {
		s.logger.Error("update summarization", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteSummarization(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)
	id := c.Param("id")

	err := s.summarizations.Delete(c.Request().Context(), ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Summary not found"})
	}
	if err != nil {
		s.logger.Error("delete summarization", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Summary deleted successfully"})
}
