package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const studentPrefixLen = 4

// StudentIDPrefix is the first four ASCII alphanumerics of the library name, upper-cased and padded with 'L'.
func StudentIDPrefix(libraryName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(libraryName) {
		if b.Len() == studentPrefixLen {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	for b.Len() < studentPrefixLen {
		b.WriteByte('L')
	}
	return b.String()
}

// FormatStudentID renders <prefix><yy><seq>, the sequence zero padded to three digits.
func FormatStudentID(libraryName string, at time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", studentIDStem(libraryName, at), seq)
}

func studentIDStem(libraryName string, at time.Time) string {
	return fmt.Sprintf("%s%02d", StudentIDPrefix(libraryName), at.Year()%100)
}

// allocateStudentID takes the next number after the highest one in use. Gaps are never refilled.
func (s *Service) allocateStudentID(ctx context.Context, q repository.Queries, adminID uuid.UUID, libraryName string) (string, error) {
	now := s.clock()
	seq, err := q.MaxStudentSequence(ctx, adminID, studentIDStem(libraryName, now))
	if err != nil {
		return "", err
	}
	return FormatStudentID(libraryName, now, seq+1), nil
}

// provisionStudent creates or refreshes the student behind a paid booking.
// It runs inside the activation transaction under the library lock.
func (s *Service) provisionStudent(
	ctx context.Context,
	q repository.Queries,
	b model.Booking,
	lib model.Library,
	start, end time.Time,
) (model.Student, error) {
	if b.StudentID != nil {
		st, err := q.GetStudentByAuthID(ctx, *b.StudentID)
		switch {
		case err == nil:
			return refreshStudent(ctx, q, st, start, end)
		case !errors.Is(err, errs.ErrNotFound):
			return model.Student{}, err
		}
	}

	st, err := q.FindStudentByEmail(ctx, b.AdminID, b.Email)
	switch {
	case err == nil:
		return refreshStudent(ctx, q, st, start, end)
	case !errors.Is(err, errs.ErrNotFound):
		return model.Student{}, err
	}

	code, err := s.allocateStudentID(ctx, q, b.AdminID, lib.Name)
	if err != nil {
		return model.Student{}, err
	}
	authID := uuid.New()
	if b.StudentID != nil {
		authID = *b.StudentID
	}
	created, err := q.CreateStudent(ctx, model.Student{
		StudentID:          code,
		AuthUserID:         authID,
		AdminID:            b.AdminID,
		Name:               b.Name,
		Email:              b.Email,
		MobileNo:           b.Mobile,
		Address:            b.Address,
		SubscriptionStart:  &start,
		SubscriptionEnd:    &end,
		SubscriptionStatus: model.SubscriptionActive,
		Status:             model.AttendanceAbsent,
		IsActive:           true,
	})
	if err != nil {
		return model.Student{}, err
	}
	s.log.Info("student provisioned",
		zap.String("student_id", created.StudentID),
		zap.Stringer("admin_id", created.AdminID))
	return created, nil
}

func refreshStudent(ctx context.Context, q repository.Queries, st model.Student, start, end time.Time) (model.Student, error) {
	st.SubscriptionStart = &start
	st.SubscriptionEnd = &end
	st.SubscriptionStatus = model.SubscriptionActive
	st.Status = model.AttendanceAbsent
	st.IsActive = true
	st.RemovedAt = nil
	return q.UpdateStudent(ctx, st)
}
