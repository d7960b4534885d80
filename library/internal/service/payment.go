package service

import (
	"context"
	"math"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func getBooking(ctx context.Context, q repository.Queries, id uuid.UUID, forUpdate bool) (model.Booking, error) {
	get := q.GetBooking
	if forUpdate {
		get = q.GetBookingForUpdate
	}
	b, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Booking{}, errs.Newf(errs.ErrNotFound, "booking not found")
		}
		return model.Booking{}, err
	}
	return b, nil
}

func checkPayable(b model.Booking) error {
	if b.PaymentStatus == model.PaymentPaid {
		return errs.Newf(errs.ErrInvalidTransition, "payment already confirmed")
	}
	if b.Status != model.BookingApproved {
		return errs.Newf(errs.ErrInvalidTransition, "booking is not approved")
	}
	return nil
}

// CreatePaymentOrder opens a gateway order for the full amount of an approved booking.
func (s *Service) CreatePaymentOrder(ctx context.Context, bookingID uuid.UUID) (model.PaymentOrder, error) {
	b, err := getBooking(ctx, s.repo, bookingID, false)
	if err != nil {
		return model.PaymentOrder{}, err
	}
	if err := checkPayable(b); err != nil {
		return model.PaymentOrder{}, err
	}
	amount := toPaise(b.Amount)
	if amount <= 0 {
		return model.PaymentOrder{}, errs.Newf(errs.ErrInvalidTransition, "booking has no payable amount")
	}
	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   amount,
		Currency: s.settings.Currency,
		Receipt:  receipt("booking"),
		Notes: map[string]string{
			"booking_id": b.ID.String(),
			"library_id": b.LibraryID.String(),
			"email":      b.Email,
		},
	})
	if err != nil {
		return model.PaymentOrder{}, gatewayErr("create order", err)
	}
	return model.PaymentOrder{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Receipt:   order.Receipt,
		KeyID:     s.gateway.KeyID(),
		BookingID: b.ID,
	}, nil
}

// ConfirmPayment activates an approved booking paid outside the gateway.
func (s *Service) ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (model.Activation, error) {
	return s.completePayment(ctx, req.BookingID, req.PaymentMethod, req.PaymentReference)
}

// VerifyGatewayPayment activates an approved booking after checking the gateway signature.
func (s *Service) VerifyGatewayPayment(ctx context.Context, req model.GatewayPaymentRequest) (model.Activation, error) {
	b, err := getBooking(ctx, s.repo, req.BookingID, false)
	if err != nil {
		return model.Activation{}, err
	}
	if err := checkPayable(b); err != nil {
		return model.Activation{}, err
	}
	payment, err := s.verifyGatewayPayment(ctx, req.GatewaySignature)
	if err != nil {
		return model.Activation{}, err
	}
	if payment.Amount != toPaise(b.Amount) {
		return model.Activation{}, errs.Newf(errs.ErrPaymentVerificationFailed, "payment amount does not match booking")
	}
	return s.completePayment(ctx, b.ID, model.PaymentMethodGateway, payment.ID)
}

func (s *Service) completePayment(ctx context.Context, bookingID uuid.UUID, method, reference string) (model.Activation, error) {
	var (
		act model.Activation
		lib model.Library
	)
	err := s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		b, err := getBooking(ctx, q, bookingID, true)
		if err != nil {
			return err
		}
		if err := checkPayable(b); err != nil {
			return err
		}
		if lib, err = getLibrary(ctx, q, b.LibraryID); err != nil {
			return err
		}
		if err := reserveSeat(ctx, q, lib, &b.ID); err != nil {
			return err
		}
		student, err := s.activateBooking(ctx, q, &b, lib, method, reference, s.clock())
		if err != nil {
			return err
		}
		if b, err = q.UpdateBooking(ctx, b); err != nil {
			return err
		}
		act = model.Activation{Booking: b, Student: student}
		return nil
	})
	if err != nil {
		return model.Activation{}, err
	}

	s.log.Info("payment confirmed",
		zap.Stringer("booking_id", act.Booking.ID),
		zap.String("student_id", act.Student.StudentID),
		zap.String("method", method))
	s.emit(TopicBookingActivated, act.Booking.ID.String(), act)
	s.sendEmail(paymentConfirmedEmail(act, lib))
	return act, nil
}

// activateBooking stamps payment and subscription window on b and provisions its student.
func (s *Service) activateBooking(
	ctx context.Context,
	q repository.Queries,
	b *model.Booking,
	lib model.Library,
	method, reference string,
	now time.Time,
) (model.Student, error) {
	end := model.SubscriptionEnd(now, b.SubscriptionMonths)
	b.Status = model.BookingActive
	b.PaymentStatus = model.PaymentPaid
	b.PaymentMethod = &method
	if reference != "" {
		b.PaymentReference = &reference
	}
	b.PaymentDate = &now
	if b.ApprovalDate == nil {
		b.ApprovalDate = &now
	}
	b.StartDate = &now
	b.EndDate = &end

	student, err := s.provisionStudent(ctx, q, *b, lib, now, end)
	if err != nil {
		return model.Student{}, err
	}
	b.StudentID = &student.AuthUserID
	return student, nil
}
