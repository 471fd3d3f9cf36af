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

// handleGetUserDetails serves GET /user-details?ownerId=. The caller can only
// read their own record; a mismatched owner id reads as not found.
func (s *Server) handleGetUserDetails(c echo.Context) error {
	return s.getUserDetails(c, c.QueryParam("ownerId"))
}

func (s *Server) handleGetUserDetailsByID(c echo.Context) error {
	return s.getUserDetails(c, c.Param("ownerId"))
}

func (s *Server) getUserDetails(c echo.Context, requested string) error {
	ownerID := auth.OwnerFromContext(c)
	if requested == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing ownerId"})
	}
	if requested != ownerID {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
	}

	details, err := s.userDetails.Find(c.Request().Context(), ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
	}
	if err != nil {
		s.logger.Error("get user details", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, details)
}

// handleUpsertUserDetails creates or merges the caller's profile record.
func (s *Server) handleUpsertUserDetails(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c)

	var req UserDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.OwnerID != "" && req.OwnerID != ownerID {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "ownerId does not match session"})
	}

	details := &model.UserDetails{
		OwnerID:             ownerID,
		Name:                req.Name,
		Occupation:          req.Occupation,
		AllowBrowserAlerts:  req.AllowBrowserAlerts,
		AllowWhatsappAlerts: req.AllowWhatsappAlerts,
		WhatsappNumber:      req.WhatsappNumber,
		AllowTextAlerts:     req.AllowTextAlerts,
		PhoneNumber:         req.PhoneNumber,
	}

	saved, err := s.userDetails.Upsert(c.Request().Context(), details)
	if err != nil {
		s.logger.Error("upsert user details", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, saved)
}
