package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionDays is the length in days of one subscription month.
const SubscriptionDays = 30

func SubscriptionEnd(start time.Time, months int) time.Time {
	if months < 1 {
		months = 1
	}
	return start.AddDate(0, 0, SubscriptionDays*months)
}

type Library struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AdminID    uuid.UUID `db:"admin_id" json:"admin_id"`
	Name       string    `db:"library_name" json:"library_name"`
	Address    string    `db:"address" json:"address"`
	TotalSeats int       `db:"total_seats" json:"total_seats"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
}

type LibraryInfo struct {
	Library
	OccupiedSeats  int      `db:"occupied_seats" json:"occupied_seats"`
	AvailableSeats int      `db:"-" json:"available_seats"`
	DistanceKm     *float64 `db:"-" json:"distance_km,omitempty"`
}

type SubscriptionPlan struct {
	ID               uuid.UUID `db:"id" json:"id"`
	LibraryID        uuid.UUID `db:"library_id" json:"library_id"`
	Months           int       `db:"months" json:"months"`
	Amount           float64   `db:"amount" json:"amount"`
	DiscountedAmount *float64  `db:"discounted_amount" json:"discounted_amount,omitempty"`
	IsActive         bool      `db:"is_active" json:"is_active"`
}

// Price is what the student pays for the plan.
func (p SubscriptionPlan) Price() float64 {
	if p.DiscountedAmount != nil {
		return *p.DiscountedAmount
	}
	return p.Amount
}

type Booking struct {
	ID                    uuid.UUID     `db:"id" json:"id"`
	StudentID             *uuid.UUID    `db:"student_id" json:"student_id,omitempty"`
	LibraryID             uuid.UUID     `db:"library_id" json:"library_id"`
	AdminID               uuid.UUID     `db:"admin_id" json:"admin_id"`
	Name                  string        `db:"name" json:"name"`
	Email                 string        `db:"email" json:"email"`
	Mobile                string        `db:"mobile" json:"mobile"`
	Address               string        `db:"address" json:"address"`
	SubscriptionPlanID    *uuid.UUID    `db:"subscription_plan_id" json:"subscription_plan_id,omitempty"`
	SubscriptionMonths    int           `db:"subscription_months" json:"subscription_months"`
	Amount                float64       `db:"amount" json:"amount"`
	Date                  string        `db:"date" json:"date,omitempty"`
	StartTime             string        `db:"start_time" json:"start_time,omitempty"`
	EndTime               string        `db:"end_time" json:"end_time,omitempty"`
	Purpose               string        `db:"purpose" json:"purpose,omitempty"`
	Status                BookingStatus `db:"status" json:"status"`
	PaymentStatus         PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentMethod         *string       `db:"payment_method" json:"payment_method,omitempty"`
	PaymentReference      *string       `db:"payment_reference" json:"payment_reference,omitempty"`
	TokenPaymentReference *string       `db:"token_payment_reference" json:"token_payment_reference,omitempty"`
	PaymentDate           *time.Time    `db:"payment_date" json:"payment_date,omitempty"`
	ApprovalDate          *time.Time    `db:"approval_date" json:"approval_date,omitempty"`
	StartDate             *time.Time    `db:"start_date" json:"start_date,omitempty"`
	EndDate               *time.Time    `db:"end_date" json:"end_date,omitempty"`
	CancelledAt           *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason    *string       `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at" json:"updated_at"`
}

type Student struct {
	ID                 uuid.UUID          `db:"id" json:"id"`
	StudentID          string             `db:"student_id" json:"student_id"`
	AuthUserID         uuid.UUID          `db:"auth_user_id" json:"auth_user_id"`
	AdminID            uuid.UUID          `db:"admin_id" json:"admin_id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	MobileNo           string             `db:"mobile_no" json:"mobile_no"`
	Address            string             `db:"address" json:"address"`
	SubscriptionStart  *time.Time         `db:"subscription_start" json:"subscription_start,omitempty"`
	SubscriptionEnd    *time.Time         `db:"subscription_end" json:"subscription_end,omitempty"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	Status             AttendanceStatus   `db:"status" json:"status"`
	IsActive           bool               `db:"is_active" json:"is_active"`
	RemovedAt          *time.Time         `db:"removed_at" json:"removed_at,omitempty"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

type RemovalRequest struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	StudentID           uuid.UUID     `db:"student_id" json:"student_id"`
	AdminID             uuid.UUID     `db:"admin_id" json:"admin_id"`
	Reason              string        `db:"reason" json:"reason"`
	Status              RemovalStatus `db:"status" json:"status"`
	SubscriptionEndDate *time.Time    `db:"subscription_end_date" json:"subscription_end_date,omitempty"`
	DaysOverdue         string        `db:"days_overdue" json:"days_overdue"`
	AdminNotes          *string       `db:"admin_notes" json:"admin_notes,omitempty"`
	ProcessedBy         *uuid.UUID    `db:"processed_by" json:"processed_by,omitempty"`
	ProcessedAt         *time.Time    `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

type Notification struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	StudentID    uuid.UUID        `db:"student_id" json:"student_id"`
	AdminID      uuid.UUID        `db:"admin_id" json:"admin_id"`
	Title        string           `db:"title" json:"title"`
	Message      string           `db:"message" json:"message"`
	Type         NotificationType `db:"notification_type" json:"notification_type"`
	Priority     Priority         `db:"priority" json:"priority"`
	ScheduledFor time.Time        `db:"scheduled_for" json:"scheduled_for"`
	SentAt       *time.Time       `db:"sent_at" json:"sent_at,omitempty"`
	Read         bool             `db:"read" json:"read"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// Renewal records one gateway payment that extended a subscription.
type Renewal struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StudentID uuid.UUID `db:"student_id" json:"student_id"`
	PlanID    uuid.UUID `db:"plan_id" json:"plan_id"`
	PaymentID string    `db:"payment_id" json:"payment_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Months    int       `db:"months" json:"months"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
