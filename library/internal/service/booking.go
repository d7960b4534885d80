package service

import (
	"context"
	"math"
	"sort"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errTokenUsed = errs.Newf(errs.ErrInvalidTransition, "token payment already used")

func (s *Service) ListLibraries(ctx context.Context, query model.LibraryQuery) ([]model.LibraryInfo, error) {
	libs, err := s.repo.ListLibraries(ctx)
	if err != nil {
		return nil, err
	}
	located := query.Latitude != nil && query.Longitude != nil
	out := make([]model.LibraryInfo, 0, len(libs))
	for _, lib := range libs {
		lib.AvailableSeats = max(lib.TotalSeats-lib.OccupiedSeats, 0)
		if located {
			if lib.Latitude == nil || lib.Longitude == nil {
				if query.RadiusKm != nil {
					continue
				}
				out = append(out, lib)
				continue
			}
			d := math.Round(distanceKm(*query.Latitude, *query.Longitude, *lib.Latitude, *lib.Longitude)*100) / 100
			if query.RadiusKm != nil && d > *query.RadiusKm {
				continue
			}
			lib.DistanceKm = &d
		}
		out = append(out, lib)
	}
	if located {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].DistanceKm == nil || out[j].DistanceKm == nil {
				return out[j].DistanceKm == nil && out[i].DistanceKm != nil
			}
			return *out[i].DistanceKm < *out[j].DistanceKm
		})
	}
	return out, nil
}

func (s *Service) ListPlans(ctx context.Context, libraryID uuid.UUID) ([]model.SubscriptionPlan, error) {
	if _, err := getLibrary(ctx, s.repo, libraryID); err != nil {
		return nil, err
	}
	return s.repo.ListPlans(ctx, libraryID)
}

// CreateDirectBooking admits a pending booking without any pre-payment.
func (s *Service) CreateDirectBooking(ctx context.Context, studentID *uuid.UUID, req model.SeatBookingRequest) (model.Booking, error) {
	return s.admit(ctx, studentID, req, model.PaymentPending, nil)
}

func (s *Service) admit(
	ctx context.Context,
	studentID *uuid.UUID,
	req model.SeatBookingRequest,
	paymentStatus model.PaymentStatus,
	tokenRef *string,
) (model.Booking, error) {
	var (
		out model.Booking
		lib model.Library
	)
	err := s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		var err error
		if lib, err = getLibrary(ctx, q, req.LibraryID); err != nil {
			return err
		}
		plan, err := optionalPlan(ctx, q, lib.ID, req.SubscriptionPlanID)
		if err != nil {
			return err
		}
		if err := reserveSeat(ctx, q, lib, nil); err != nil {
			return err
		}
		b := newBooking(req, lib, plan, studentID)
		b.PaymentStatus = paymentStatus
		b.TokenPaymentReference = tokenRef
		out, err = q.CreateBooking(ctx, b)
		if errors.Is(err, errs.ErrConflict) {
			return errTokenUsed
		}
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.log.Info("seat booking created",
		zap.Stringer("booking_id", out.ID),
		zap.Stringer("library_id", lib.ID),
		zap.String("payment_status", string(out.PaymentStatus)))
	s.sendEmail(bookingReceivedEmail(out, lib))
	return out, nil
}

func newBooking(req model.SeatBookingRequest, lib model.Library, plan *model.SubscriptionPlan, studentID *uuid.UUID) model.Booking {
	b := model.Booking{
		StudentID:          studentID,
		LibraryID:          lib.ID,
		AdminID:            lib.AdminID,
		Name:               req.Name,
		Email:              req.Email,
		Mobile:             req.Mobile,
		Address:            req.Address,
		SubscriptionMonths: 1,
		Date:               req.Date,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Purpose:            req.Purpose,
		Status:             model.BookingPending,
		PaymentStatus:      model.PaymentPending,
	}
	switch {
	case plan != nil:
		b.SubscriptionPlanID = &plan.ID
		b.SubscriptionMonths = plan.Months
		b.Amount = plan.Price()
	default:
		if req.SubscriptionMonths > 0 {
			b.SubscriptionMonths = req.SubscriptionMonths
		}
		if req.Amount != nil {
			b.Amount = *req.Amount
		}
	}
	return b
}

// InitTokenPayment checks admission preconditions and opens a gateway order for the token amount.
// No booking exists until the payment is verified.
func (s *Service) InitTokenPayment(ctx context.Context, req model.SeatBookingRequest) (model.PaymentOrder, error) {
	lib, err := getLibrary(ctx, s.repo, req.LibraryID)
	if err != nil {
		return model.PaymentOrder{}, err
	}
	if _, err := optionalPlan(ctx, s.repo, lib.ID, req.SubscriptionPlanID); err != nil {
		return model.PaymentOrder{}, err
	}
	occupied, err := s.repo.OccupiedSeats(ctx, lib.ID, nil)
	if err != nil {
		return model.PaymentOrder{}, err
	}
	if occupied >= lib.TotalSeats {
		return model.PaymentOrder{}, errs.Newf(errs.ErrCapacityExceeded, "no seats available in this library")
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   s.settings.TokenAmountPaise,
		Currency: s.settings.Currency,
		Receipt:  receipt("token"),
		Notes: map[string]string{
			"purpose":    "seat_booking_token",
			"library_id": lib.ID.String(),
			"email":      req.Email,
		},
	})
	if err != nil {
		return model.PaymentOrder{}, gatewayErr("create order", err)
	}
	return model.PaymentOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyTokenPayment admits a booking stamped token_paid once the gateway confirms the token payment.
func (s *Service) VerifyTokenPayment(ctx context.Context, studentID *uuid.UUID, req model.TokenPaymentVerifyRequest) (model.Booking, error) {
	payment, err := s.verifyGatewayPayment(ctx, req.GatewaySignature)
	if err != nil {
		return model.Booking{}, err
	}
	if payment.Amount != s.settings.TokenAmountPaise {
		return model.Booking{}, errs.Newf(errs.ErrPaymentVerificationFailed, "token payment amount mismatch")
	}

	ref := payment.ID
	b, err := s.admit(ctx, studentID, req.SeatBookingRequest, model.PaymentTokenPaid, &ref)
	if refundable(err) {
		s.refund(payment.ID, payment.Amount, nil)
	}
	return b, err
}

// refundable reports whether a failed admission is final for the client.
// A reused token already admitted its booking, and storage errors may succeed on retry.
func refundable(err error) bool {
	if err == nil || errors.Is(err, errTokenUsed) {
		return false
	}
	return errors.Is(err, errs.ErrCapacityExceeded) ||
		errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrInvalidTransition)
}

// verifyGatewayPayment checks the signature and that the payment settled against the order.
func (s *Service) verifyGatewayPayment(ctx context.Context, sig model.GatewaySignature) (razorpay.Payment, error) {
	if err := s.gateway.VerifyPayment(sig.RazorpayOrderID, sig.RazorpayPaymentID, sig.RazorpaySignature); err != nil {
		if errors.Is(err, errs.ErrGatewayUnavailable) {
			return razorpay.Payment{}, gatewayErr("verify payment", err)
		}
		return razorpay.Payment{}, errs.Newf(errs.ErrPaymentVerificationFailed, "invalid payment signature")
	}
	payment, err := s.gateway.GetPayment(ctx, sig.RazorpayPaymentID)
	if err != nil {
		return razorpay.Payment{}, gatewayErr("fetch payment", err)
	}
	if payment.OrderID != sig.RazorpayOrderID || !payment.Settled() {
		return razorpay.Payment{}, errs.Newf(errs.ErrPaymentVerificationFailed, "payment does not match order")
	}
	return payment, nil
}

func (s *Service) refund(paymentID string, amount int64, bookingID *uuid.UUID) {
	s.goBackground("refund payment", func(ctx context.Context) error {
		if _, err := s.gateway.Refund(ctx, paymentID, amount); err != nil {
			return err
		}
		s.log.Info("payment refunded", zap.String("payment_id", paymentID), zap.Int64("amount", amount))
		if bookingID == nil {
			return nil
		}
		return s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
			b, err := q.GetBookingForUpdate(ctx, *bookingID)
			if err != nil {
				return err
			}
			if b.PaymentStatus != model.PaymentTokenPaid {
				return nil
			}
			b.PaymentStatus = model.PaymentRefunded
			_, err = q.UpdateBooking(ctx, b)
			return err
		})
	})
}

// ApproveDeferred approves a booking and leaves activation to payment confirmation.
func (s *Service) ApproveDeferred(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error) {
	return s.Decide(ctx, adminID, bookingID, model.BookingApproved, false)
}

// ApproveImmediate approves and activates in one step, provisioning the student.
func (s *Service) ApproveImmediate(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error) {
	return s.Decide(ctx, adminID, bookingID, model.BookingApproved, true)
}

func (s *Service) Reject(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error) {
	return s.Decide(ctx, adminID, bookingID, model.BookingRejected, false)
}

// Decide applies an admin decision to a pending booking of the admin's library.
func (s *Service) Decide(
	ctx context.Context,
	adminID, bookingID uuid.UUID,
	status model.BookingStatus,
	activateImmediately bool,
) (model.Booking, error) {
	target := status
	switch status {
	case model.BookingRejected:
	case model.BookingApproved:
		if activateImmediately {
			target = model.BookingActive
		}
	default:
		return model.Booking{}, errs.Newf(errs.ErrInvalidTransition, "unsupported decision %q", status)
	}

	var (
		out model.Booking
		lib model.Library
	)
	err := s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		b, err := q.GetBookingForUpdate(ctx, bookingID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if err != nil || b.AdminID != adminID {
			return errs.Newf(errs.ErrNotFound, "booking not found")
		}
		if b.Status != model.BookingPending || !b.Status.CanTransition(target) {
			return errs.Newf(errs.ErrInvalidTransition, "only pending bookings can be decided, booking is %s", b.Status)
		}
		if lib, err = getLibrary(ctx, q, b.LibraryID); err != nil {
			return err
		}

		if target.Occupying() {
			if err := reserveSeat(ctx, q, lib, &b.ID); err != nil {
				return err
			}
		}

		now := s.clock()
		switch target {
		case model.BookingRejected:
			b.Status = model.BookingRejected
		case model.BookingApproved:
			b.Status = model.BookingApproved
			b.ApprovalDate = &now
		case model.BookingActive:
			ref := ""
			if b.TokenPaymentReference != nil {
				ref = *b.TokenPaymentReference
			}
			if _, err := s.activateBooking(ctx, q, &b, lib, model.PaymentMethodAdminOverride, ref, now); err != nil {
				return err
			}
		}
		out, err = q.UpdateBooking(ctx, b)
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.log.Info("booking decided",
		zap.Stringer("booking_id", out.ID),
		zap.String("status", string(out.Status)),
		zap.Stringer("admin_id", adminID))
	if out.Status == model.BookingRejected && out.PaymentStatus == model.PaymentTokenPaid && out.TokenPaymentReference != nil {
		s.refund(*out.TokenPaymentReference, s.settings.TokenAmountPaise, &out.ID)
	}
	if out.Status == model.BookingActive {
		s.emit(TopicBookingActivated, out.ID.String(), out)
	}
	s.sendEmail(bookingDecisionEmail(out, lib))
	return out, nil
}

func (s *Service) ListAdminBookings(ctx context.Context, adminID uuid.UUID, filter model.BookingFilter) ([]model.Booking, error) {
	return s.repo.ListBookingsByAdmin(ctx, adminID, filter)
}

func (s *Service) ListStudentBookings(ctx context.Context, authUserID uuid.UUID) ([]model.Booking, error) {
	return s.repo.ListBookingsByStudent(ctx, authUserID)
}
