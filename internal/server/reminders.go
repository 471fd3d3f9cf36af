package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/auth"
	"github.com/pathakanu/mailmind/internal/model"
	"github.com/pathakanu/mailmind/internal/store"
)

func (s *Server) handleCreateReminder(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)

	var req CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	dueAt, err := model.ParseDueAt(req.Date, req.Time, s.location)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid date or time"})
	}

	reminder := &model.Reminder{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		DueAt:       dueAt,
		Priority:    req.Priority,
		Keywords:    req.Keywords,
		IsCompleted: false,
	}
	if err := s.reminders.Create(c.Request().Context(), reminder); err != nil {
		s.logger.Error("create reminder", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusCreated, reminder)
}

func (s *Server) handleListReminders(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)

	reminders, err := s.reminders.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		s.logger.Error("list reminders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, reminders)
}

func (s *Server) handleUpdateReminder(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)
	id := c.Param("id")

	var req UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	existing, err := s.reminders.FindByID(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	}
	if err != nil {
		s.logger.Error("find reminder", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.Keywords != nil {
		existing.Keywords = *req.Keywords
	}
	if req.IsCompleted != nil {
		existing.IsCompleted = *req.IsCompleted
	}
	if req.Date != nil {
		existing.Date = *req.Date
	}
	if req.Time != nil {
		existing.Time = *req.Time
	}
	if req.Date != nil || req.Time != nil {
		dueAt, err := model.ParseDueAt(existing.Date, existing.Time, s.location)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid date or time"})
		}
		existing.DueAt = dueAt
	}

	if err := s.reminders.Save(ctx, existing); err != nil {
		s.logger.Error("update reminder", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, existing)
}

func (s *Server) handleDeleteReminder(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)
	id := c.Param("id")
	ctx := c.Request().Context()

	err := s.reminders.Delete(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Reminder not found"})
	}
	if err != nil {
		s.logger.Error("delete reminder", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}

	// A deleted reminder must not fire queued alerts later.
	if cancelled, err := s.outbox.CancelByReminder(ctx, id, s.now()); err != nil {
		s.logger.Error("cancel queued alerts", zap.String("reminder", id), zap.Error(err))
	} else if cancelled > 0 {
		s.logger.Info("cancelled queued alerts", zap.String("reminder", id), zap.Int64("count", cancelled))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// handleReminderAlerts backs the client notification loop: it returns the
// caller's past-due, not-completed reminders that the given client session id
// has not been alerted about yet, and records them so each is returned once
// per session.
func (s *Server) handleReminderAlerts(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)
	sessionID := c.QueryParam("session")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "session is required"})
	}

	reminders, err := s.reminders.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		s.logger.Error("list reminders for alerts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}

	now := s.now()
	due := make([]model.Reminder, 0)
	for _, reminder := range reminders {
		if reminder.IsCompleted || reminder.DueAt.After(now) {
			continue
		}
		// Session scoping: owner prefix keeps session ids from colliding
		// across users.
		if s.tracker.MarkAlerted(ownerID+"/"+sessionID, reminder.ID) {
			due = append(due, reminder)
		}
	}
	return c.JSON(http.StatusOK, due)
}
