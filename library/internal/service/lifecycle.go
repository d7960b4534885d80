package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"go.uber.org/zap"
)

const warningWindowDays = 5

// startOfDay truncates to midnight UTC; calendar days are UTC days.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Round(24*time.Hour) / (24 * time.Hour))
}

func WarningPriority(daysLeft int) model.Priority {
	switch {
	case daysLeft <= 1:
		return model.PriorityUrgent
	case daysLeft <= 3:
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}

func warningTitle(daysLeft int) string {
	switch daysLeft {
	case 0:
		return "Subscription Expires Today"
	case 1:
		return "Subscription Expires Tomorrow"
	default:
		return fmt.Sprintf("Subscription Expires in %d Days", daysLeft)
	}
}

// RunSubscriptionChecks warns students whose subscription ends within the warning
// window and moves lapsed Active subscriptions to Expired.
func (s *Service) RunSubscriptionChecks(ctx context.Context) (model.LifecycleReport, error) {
	var report model.LifecycleReport
	now := s.clock()
	today := startOfDay(now)

	expiring, err := s.repo.ListStudentsExpiringBetween(ctx, today, today.AddDate(0, 0, warningWindowDays+1))
	if err != nil {
		return report, err
	}
	for _, st := range expiring {
		if st.SubscriptionEnd == nil {
			continue
		}
		daysLeft := daysBetween(today, *st.SubscriptionEnd)
		n := model.Notification{
			StudentID: st.ID,
			AdminID:   st.AdminID,
			Title:     warningTitle(daysLeft),
			Message: fmt.Sprintf("Your subscription ends on %s. Renew now to keep your seat.",
				st.SubscriptionEnd.Format(time.DateOnly)),
			Type:         model.NotificationSystem,
			Priority:     WarningPriority(daysLeft),
			ScheduledFor: now,
		}
		if _, err := s.repo.CreateNotification(ctx, n); err != nil {
			report.Failed++
			s.log.Error("expiry warning", zap.Stringer("student", st.ID), zap.Error(err))
			continue
		}
		report.Warnings++
		if s.settings.EmailFromScheduler {
			s.sendEmail(expiryWarningEmail(st, daysLeft))
		}
	}

	expired, err := s.repo.ListStudentsExpiredBefore(ctx, today)
	if err != nil {
		return report, err
	}
	for _, st := range expired {
		changed, err := s.repo.MarkStudentExpired(ctx, st.ID)
		if err != nil {
			report.Failed++
			s.log.Error("mark expired", zap.Stringer("student", st.ID), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		report.Expired++
		if _, err := s.repo.CreateNotification(ctx, model.Notification{
			StudentID:    st.ID,
			AdminID:      st.AdminID,
			Title:        "Subscription Expired",
			Message:      "Your subscription has expired. Renew within 2 days to keep your seat.",
			Type:         model.NotificationSystem,
			Priority:     model.PriorityUrgent,
			ScheduledFor: now,
		}); err != nil {
			s.log.Error("expired notification", zap.Stringer("student", st.ID), zap.Error(err))
		}
		if s.settings.EmailFromScheduler {
			s.sendEmail(expiredEmail(st))
		}
	}

	s.log.Info("subscription checks done",
		zap.Int("warnings", report.Warnings),
		zap.Int("expired", report.Expired),
		zap.Int("failed", report.Failed))
	return report, nil
}

// DeliverPendingNotifications publishes due notifications and marks them sent.
// Failed ones stay pending for the next pass.
func (s *Service) DeliverPendingNotifications(ctx context.Context) (int, error) {
	items, err := s.repo.ListPendingNotifications(ctx, s.clock(), s.settings.NotificationBatchLimit)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, n := range items {
		if err := s.publish(ctx, TopicNotificationDelivery, n.StudentID.String(), n); err != nil {
			s.log.Warn("notification delivery failed", zap.Stringer("notification", n.ID), zap.Error(err))
			continue
		}
		if err := s.repo.MarkNotificationSent(ctx, n.ID, s.clock()); err != nil {
			s.log.Warn("mark notification sent", zap.Stringer("notification", n.ID), zap.Error(err))
			continue
		}
		sent++
	}
	if sent > 0 {
		s.log.Debug("notifications delivered", zap.Int("count", sent))
	}
	return sent, nil
}
