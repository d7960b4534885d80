package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	removalGracePeriod   = 2 * 24 * time.Hour
	removalReason        = "Subscription expired and payment not received within 2 days"
	removedBookingReason = "Student removed from library"
)

// daysOverdue counts whole days elapsed since end.
func daysOverdue(now, end time.Time) int {
	return int(now.Sub(end) / (24 * time.Hour))
}

// CheckAndCreateRemovalRequests opens a pending request for every active student whose
// subscription expired more than the grace period ago. Students with a pending request are skipped.
func (s *Service) CheckAndCreateRemovalRequests(ctx context.Context) (int, error) {
	now := s.clock()
	overdue, err := s.repo.ListOverdueStudents(ctx, nil, now.Add(-removalGracePeriod))
	if err != nil {
		return 0, err
	}
	created := 0
	for _, st := range overdue {
		if st.HasPendingRequest || st.SubscriptionEnd == nil {
			continue
		}
		ok, err := s.repo.CreateRemovalRequest(ctx, model.RemovalRequest{
			StudentID:           st.ID,
			AdminID:             st.AdminID,
			Reason:              removalReason,
			Status:              model.RemovalPending,
			SubscriptionEndDate: st.SubscriptionEnd,
			DaysOverdue:         fmt.Sprintf("%d days overdue", daysOverdue(now, *st.SubscriptionEnd)),
		})
		if err != nil {
			s.log.Error("create removal request", zap.Stringer("student", st.ID), zap.Error(err))
			continue
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.log.Info("removal requests created", zap.Int("count", created))
	}
	return created, nil
}

func (s *Service) ListRemovalRequests(ctx context.Context, filter model.RemovalFilter) (model.RemovalRequestList, error) {
	var (
		items  []model.RemovalRequestView
		counts model.RemovalCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListRemovalRequests(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.repo.CountRemovalRequests(gctx, filter.AdminID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.RemovalRequestList{}, err
	}
	if items == nil {
		items = []model.RemovalRequestView{}
	}
	return model.RemovalRequestList{Requests: items, RemovalCounts: counts}, nil
}

func (s *Service) GetRemovalRequest(ctx context.Context, adminID, id uuid.UUID) (model.RemovalRequestView, error) {
	v, err := s.repo.GetRemovalRequest(ctx, id)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.RemovalRequestView{}, err
	}
	if err != nil || v.AdminID != adminID {
		return model.RemovalRequestView{}, errs.Newf(errs.ErrNotFound, "removal request not found")
	}
	return v, nil
}

func (s *Service) RemovalStats(ctx context.Context, adminID uuid.UUID) (model.RemovalStats, error) {
	var (
		counts  model.RemovalCounts
		overdue []model.OverdueStudent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.repo.CountRemovalRequests(gctx, adminID)
		return err
	})
	g.Go(func() error {
		var err error
		overdue, err = s.repo.ListOverdueStudents(gctx, &adminID, s.clock().Add(-removalGracePeriod))
		return err
	})
	if err := g.Wait(); err != nil {
		return model.RemovalStats{}, err
	}
	return model.RemovalStats{RemovalCounts: counts, OverdueStudents: len(overdue)}, nil
}

func (s *Service) ListOverdueStudents(ctx context.Context, adminID uuid.UUID) ([]model.OverdueStudent, error) {
	now := s.clock()
	items, err := s.repo.ListOverdueStudents(ctx, &adminID, now.Add(-removalGracePeriod))
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].SubscriptionEnd != nil {
			items[i].DaysOverdue = daysOverdue(now, *items[i].SubscriptionEnd)
		}
	}
	if items == nil {
		items = []model.OverdueStudent{}
	}
	return items, nil
}

// UpdateRemovalRequest records the admin decision on a pending request. Approval removes the
// student and cancels the student's open bookings in the same transaction.
func (s *Service) UpdateRemovalRequest(
	ctx context.Context,
	adminID, id uuid.UUID,
	req model.RemovalDecisionRequest,
) (model.RemovalRequestView, error) {
	if !model.RemovalPending.CanTransition(req.Status) {
		return model.RemovalRequestView{}, errs.Newf(errs.ErrInvalidTransition, "unsupported decision %q", req.Status)
	}

	var (
		removed   *model.Student
		cancelled int64
	)
	err := s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		rr, err := q.GetRemovalRequestForUpdate(ctx, id)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if err != nil || rr.AdminID != adminID {
			return errs.Newf(errs.ErrNotFound, "removal request not found")
		}
		if !rr.Status.CanTransition(req.Status) {
			return errs.Newf(errs.ErrInvalidTransition, "only pending requests can be updated")
		}

		now := s.clock()
		rr.Status = req.Status
		rr.AdminNotes = req.AdminNotes
		rr.ProcessedBy = &adminID
		rr.ProcessedAt = &now
		if err := q.UpdateRemovalRequest(ctx, rr); err != nil {
			return err
		}
		if req.Status != model.RemovalApproved {
			return nil
		}

		st, err := q.GetStudent(ctx, rr.StudentID)
		if err != nil {
			return err
		}
		st.IsActive = false
		st.SubscriptionStatus = model.SubscriptionRemoved
		st.RemovedAt = &now
		if st, err = q.UpdateStudent(ctx, st); err != nil {
			return err
		}
		if cancelled, err = q.CancelStudentBookings(ctx, st.AuthUserID, removedBookingReason, now); err != nil {
			return err
		}
		removed = &st
		return nil
	})
	if err != nil {
		return model.RemovalRequestView{}, err
	}

	s.log.Info("removal request updated",
		zap.Stringer("request", id),
		zap.String("status", string(req.Status)),
		zap.Int64("cancelled_bookings", cancelled))
	if removed != nil {
		s.emit(TopicStudentRemoved, removed.ID.String(), removed)
		s.sendEmail(removedEmail(*removed))
	}
	return s.GetRemovalRequest(ctx, adminID, id)
}

// RestoreStudent reactivates a removed or inactive student. The subscription window is left as is.
func (s *Service) RestoreStudent(ctx context.Context, adminID, studentID uuid.UUID) (model.Student, error) {
	var out model.Student
	err := s.repo.RunInTx(ctx, func(ctx context.Context, q repository.Queries) error {
		st, err := q.GetStudent(ctx, studentID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if err != nil || st.AdminID != adminID {
			return errs.Newf(errs.ErrNotFound, "student not found in your library")
		}
		if st.IsActive {
			return errs.Newf(errs.ErrInvalidTransition, "student is already active")
		}
		st.IsActive = true
		st.SubscriptionStatus = model.SubscriptionActive
		st.RemovedAt = nil
		out, err = q.UpdateStudent(ctx, st)
		return err
	})
	if err != nil {
		return model.Student{}, err
	}
	s.log.Info("student restored", zap.String("student_id", out.StudentID))
	s.sendEmail(restoredEmail(out))
	return out, nil
}
