package handler

import (
	"net/http"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreatePaymentOrder(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.paymentSvc.CreatePaymentOrder(c.Request().Context(), req.BookingID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) ConfirmPayment(c echo.Context) error {
	var req model.ConfirmPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	act, err := h.paymentSvc.ConfirmPayment(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, act)
}

func (h *Handler) VerifyGatewayPayment(c echo.Context) error {
	var req model.GatewayPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	act, err := h.paymentSvc.VerifyGatewayPayment(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, act)
}

func (h *Handler) CreateRenewalOrder(c echo.Context) error {
	var req model.RenewalOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.paymentSvc.CreateRenewalOrder(c.Request().Context(), principal(c).UserID, req.PlanID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) VerifyRenewal(c echo.Context) error {
	var req model.RenewalVerifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	st, err := h.paymentSvc.VerifyRenewal(c.Request().Context(), principal(c).UserID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}
