package handler

import (
	"fmt"
	"net/http"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/labstack/echo/v4"
)

const (
	defaultRemovalLimit = 50
	maxRemovalLimit     = 100
)

func (h *Handler) ListRemovalRequests(c echo.Context) error {
	filter := model.RemovalFilter{AdminID: principal(c).UserID}
	if raw := c.QueryParam("status"); raw != "" {
		status := model.RemovalStatus(raw)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
		}
		filter.Status = &status
	}
	var err error
	if filter.Offset, err = queryUint(c, "offset"); err != nil {
		return err
	}
	if filter.Limit, err = queryUint(c, "limit"); err != nil {
		return err
	}
	switch {
	case c.QueryParam("limit") == "":
		filter.Limit = defaultRemovalLimit
	case filter.Limit < 1 || filter.Limit > maxRemovalLimit:
		return echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
	}
	list, err := h.removalSvc.ListRemovalRequests(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetRemovalRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rr, err := h.removalSvc.GetRemovalRequest(c.Request().Context(), principal(c).UserID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rr)
}

func (h *Handler) UpdateRemovalRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.RemovalDecisionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rr, err := h.removalSvc.UpdateRemovalRequest(c.Request().Context(), principal(c).UserID, id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rr)
}

func (h *Handler) RemovalStats(c echo.Context) error {
	stats, err := h.removalSvc.RemovalStats(c.Request().Context(), principal(c).UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CheckOverdue(c echo.Context) error {
	n, err := h.removalSvc.CheckAndCreateRemovalRequests(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":       fmt.Sprintf("Created %d new removal requests", n),
		"created_count": n,
	})
}

func (h *Handler) ListOverdueStudents(c echo.Context) error {
	students, err := h.removalSvc.ListOverdueStudents(c.Request().Context(), principal(c).UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, students)
}

func (h *Handler) RestoreStudent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	st, err := h.removalSvc.RestoreStudent(c.Request().Context(), principal(c).UserID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}
