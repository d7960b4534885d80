package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type renewal struct {
	student model.Student
	plan    model.SubscriptionPlan
}

func renewalTarget(ctx context.Context, q repository.Queries, authUserID, planID uuid.UUID) (renewal, error) {
	st, err := q.GetStudentByAuthID(ctx, authUserID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return renewal{}, err
	}
	if err != nil {
		return renewal{}, errs.Newf(errs.ErrNotFound, "student not found")
	}
	if st.SubscriptionStatus == model.SubscriptionRemoved {
		return renewal{}, errs.Newf(errs.ErrInvalidTransition, "removed students cannot renew")
	}
	plan, err := q.GetPlan(ctx, planID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return renewal{}, err
	}
	if err != nil || !plan.IsActive {
		return renewal{}, errs.Newf(errs.ErrNotFound, "subscription plan not found or inactive")
	}
	lib, err := getLibrary(ctx, q, plan.LibraryID)
	if err != nil {
		return renewal{}, err
	}
	if lib.AdminID != st.AdminID {
		return renewal{}, errs.Newf(errs.ErrNotFound, "subscription plan not found or inactive")
	}
	return renewal{student: st, plan: plan}, nil
}

// renewedUntil extends from the later of now and the current end.
func renewedUntil(st model.Student, months int, now time.Time) (start, end time.Time) {
	start = now
	if st.SubscriptionEnd != nil && st.SubscriptionEnd.After(now) {
		start = *st.SubscriptionEnd
	}
	return start, model.SubscriptionEnd(start, months)
}

// CreateRenewalOrder opens a gateway order for renewing the student's subscription on a plan.
func (s *Service) CreateRenewalOrder(ctx context.Context, authUserID, planID uuid.UUID) (model.PaymentOrder, error) {
	rn, err := renewalTarget(ctx, s.repo, authUserID, planID)
	if err != nil {
		return model.PaymentOrder{}, err
	}
	amount := toPaise(rn.plan.Price())
	if amount <= 0 {
		return model.PaymentOrder{}, errs.Newf(errs.ErrInvalidTransition, "plan has no payable amount")
	}
	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   amount,
		Currency: s.settings.Currency,
		Receipt:  receipt("renewal"),
		Notes: map[string]string{
			"purpose":    "subscription_renewal",
			"student_id": rn.student.StudentID,
			"plan_id":    rn.plan.ID.String(),
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

// VerifyRenewal extends the subscription once the gateway confirms payment for the plan.
// A payment id is applied at most once.
func (s *Service) VerifyRenewal(ctx context.Context, authUserID uuid.UUID, req model.RenewalVerifyRequest) (model.Student, error) {
	rn, err := renewalTarget(ctx, s.repo, authUserID, req.PlanID)
	if err != nil {
		return model.Student{}, err
	}
	payment, err := s.verifyGatewayPayment(ctx, req.GatewaySignature)
	if err != nil {
		return model.Student{}, err
	}
	if payment.Amount != toPaise(rn.plan.Price()) {
		return model.Student{}, errs.Newf(errs.ErrPaymentVerificationFailed, "renewal payment amount mismatch")
	}

	var out model.Student
	err = s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		rn, err := renewalTarget(ctx, q, authUserID, req.PlanID)
		if err != nil {
			return err
		}
		err = q.RecordRenewal(ctx, model.Renewal{
			StudentID: rn.student.ID,
			PlanID:    rn.plan.ID,
			PaymentID: payment.ID,
			Amount:    rn.plan.Price(),
			Months:    rn.plan.Months,
		})
		if errors.Is(err, errs.ErrConflict) {
			return errs.Newf(errs.ErrInvalidTransition, "payment already applied")
		}
		if err != nil {
			return err
		}

		now := s.clock()
		start, end := renewedUntil(rn.student, rn.plan.Months, now)
		st := rn.student
		if st.SubscriptionStart == nil || !start.After(now) {
			st.SubscriptionStart = &start
		}
		st.SubscriptionEnd = &end
		st.SubscriptionStatus = model.SubscriptionActive
		st.IsActive = true
		if out, err = q.UpdateStudent(ctx, st); err != nil {
			return err
		}
		_, err = q.CreateNotification(ctx, model.Notification{
			StudentID:    st.ID,
			AdminID:      st.AdminID,
			Title:        "Subscription Renewed",
			Message:      fmt.Sprintf("Your subscription is active until %s.", end.Format(time.DateOnly)),
			Type:         model.NotificationSystem,
			Priority:     model.PriorityMedium,
			ScheduledFor: now,
		})
		return err
	})
	if err != nil {
		return model.Student{}, err
	}

	s.log.Info("subscription renewed",
		zap.String("student_id", out.StudentID),
		zap.String("payment_id", payment.ID),
		zap.Int("months", rn.plan.Months))
	s.emit(TopicSubscriptionRenewed, out.ID.String(), out)
	s.sendEmail(renewedEmail(out))
	return out, nil
}
