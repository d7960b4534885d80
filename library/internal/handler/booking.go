package handler

import (
	"net/http"
	"strconv"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/labstack/echo/v4"
)

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return &v, nil
}

func queryUint(c echo.Context, name string) (uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return v, nil
}

func (h *Handler) ListLibraries(c echo.Context) error {
	var (
		query model.LibraryQuery
		err   error
	)
	if query.Latitude, err = queryFloat(c, "latitude"); err != nil {
		return err
	}
	if query.Longitude, err = queryFloat(c, "longitude"); err != nil {
		return err
	}
	if query.RadiusKm, err = queryFloat(c, "radius_km"); err != nil {
		return err
	}
	libs, err := h.bookingSvc.ListLibraries(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, libs)
}

func (h *Handler) ListPlans(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	plans, err := h.bookingSvc.ListPlans(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if plans == nil {
		plans = []model.SubscriptionPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *Handler) CreateSeatBooking(c echo.Context) error {
	var req model.SeatBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	b, err := h.bookingSvc.CreateDirectBooking(c.Request().Context(), studentID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) CreateAnonymousSeatBooking(c echo.Context) error {
	var req model.SeatBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	b, err := h.bookingSvc.CreateDirectBooking(c.Request().Context(), nil, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

// CreateStudentSeatBooking is the retired zero-payment path; students must go through payment-init.
func (h *Handler) CreateStudentSeatBooking(echo.Context) error {
	return httpError(errs.ErrPrePaymentRequired)
}

func (h *Handler) InitTokenPayment(c echo.Context) error {
	var req model.SeatBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.bookingSvc.InitTokenPayment(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) VerifyTokenPayment(c echo.Context) error {
	var req model.TokenPaymentVerifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	b, err := h.bookingSvc.VerifyTokenPayment(c.Request().Context(), studentID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) ListSeatBookings(c echo.Context) error {
	var (
		filter model.BookingFilter
		err    error
	)
	if raw := c.QueryParam("status"); raw != "" {
		status := model.BookingStatus(raw)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
		}
		filter.Status = &status
	}
	if filter.Offset, err = queryUint(c, "skip"); err != nil {
		return err
	}
	if filter.Limit, err = queryUint(c, "limit"); err != nil {
		return err
	}
	bookings, err := h.bookingSvc.ListAdminBookings(c.Request().Context(), principal(c).UserID, filter)
	if err != nil {
		return httpError(err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) DecideBooking(c echo.Context) error {
	return h.decide(c, false)
}

// DecideBookingImmediate activates on approval without waiting for payment.
func (h *Handler) DecideBookingImmediate(c echo.Context) error {
	return h.decide(c, true)
}

func (h *Handler) decide(c echo.Context, immediate bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BookingDecisionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, adminID := c.Request().Context(), principal(c).UserID

	var b model.Booking
	switch {
	case req.Status == model.BookingRejected:
		b, err = h.bookingSvc.Reject(ctx, adminID, id)
	case immediate:
		b, err = h.bookingSvc.ApproveImmediate(ctx, adminID, id)
	default:
		b, err = h.bookingSvc.ApproveDeferred(ctx, adminID, id)
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListMyBookings(c echo.Context) error {
	bookings, err := h.bookingSvc.ListStudentBookings(c.Request().Context(), principal(c).UserID)
	if err != nil {
		return httpError(err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}
