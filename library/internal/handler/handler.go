package handler

import (
	"net/http"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/auth"
	md "github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/middleware"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/validate"
	_ "github.com/PrepZone-ai/LibraryConnekto-Backend/swagger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	bookingSvc BookingService
	paymentSvc PaymentService
	removalSvc RemovalService
	jwtSecret  []byte
	log        *zap.Logger
}

type Option func(h *Handler)

// WithJWTSecret switches authentication from gateway identity headers to HS256 bearer tokens.
func WithJWTSecret(secret string) Option {
	return func(h *Handler) {
		if secret != "" {
			h.jwtSecret = []byte(secret)
		}
	}
}

func New(bookingSvc BookingService, paymentSvc PaymentService, removalSvc RemovalService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		bookingSvc: bookingSvc,
		paymentSvc: paymentSvc,
		removalSvc: removalSvc,
		log:        log.Named("handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	h.routes(api)
	return e
}

func (h *Handler) routes(api *echo.Group) {
	var (
		optional = h.authn(true)
		student  = []echo.MiddlewareFunc{h.authn(false), md.RequireRole(auth.RoleStudent)}
		admin    = []echo.MiddlewareFunc{h.authn(false), md.RequireRole(auth.RoleAdmin)}
	)

	booking := api.Group("/booking")
	booking.GET("/libraries", h.ListLibraries)
	booking.GET("/libraries/:id/subscription-plans", h.ListPlans)
	booking.POST("/seat-booking", h.CreateSeatBooking, optional)
	booking.POST("/anonymous-seat-booking", h.CreateAnonymousSeatBooking)
	booking.POST("/student-seat-booking", h.CreateStudentSeatBooking, student...)
	booking.POST("/student-seat-booking/payment-init", h.InitTokenPayment, optional)
	booking.POST("/student-seat-booking/payment-verify", h.VerifyTokenPayment, optional)
	booking.GET("/seat-bookings", h.ListSeatBookings, admin...)
	booking.PUT("/seat-bookings/:id", h.DecideBooking, admin...)
	booking.PATCH("/seat-bookings/:id", h.DecideBookingImmediate, admin...)
	booking.GET("/my-bookings", h.ListMyBookings, student...)
	booking.POST("/create-razorpay-order", h.CreatePaymentOrder)
	booking.POST("/confirm-payment", h.ConfirmPayment)
	booking.POST("/verify-razorpay-payment", h.VerifyGatewayPayment)

	payments := api.Group("/payments", student...)
	payments.POST("/create-order", h.CreateRenewalOrder)
	payments.POST("/verify", h.VerifyRenewal)

	removal := api.Group("/student-removal", admin...)
	removal.GET("/requests", h.ListRemovalRequests)
	removal.GET("/requests/:id", h.GetRemovalRequest)
	removal.PUT("/requests/:id", h.UpdateRemovalRequest)
	removal.GET("/stats", h.RemovalStats)
	removal.POST("/check-overdue", h.CheckOverdue)
	removal.GET("/overdue-students", h.ListOverdueStudents)
	removal.POST("/restore-student/:id", h.RestoreStudent)
}

func (h *Handler) authn(optional bool) echo.MiddlewareFunc {
	if len(h.jwtSecret) > 0 {
		return md.JwtAuthentication(h.jwtSecret, optional)
	}
	return md.AuthContext(optional)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func principal(c echo.Context) auth.Principal {
	p, _ := auth.FromContext(c.Request().Context())
	return p
}

// studentID is the caller's auth id when a student is signed in.
func studentID(c echo.Context) *uuid.UUID {
	p, ok := auth.FromContext(c.Request().Context())
	if !ok || p.Role != auth.RoleStudent {
		return nil
	}
	return &p.UserID
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Validate(req)
}

func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrPaymentVerificationFailed),
		errors.Is(err, errs.ErrPrePaymentRequired):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrGatewayUnavailable):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	}
	return echo.NewHTTPError(code, err.Error())
}
