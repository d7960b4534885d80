package model

import (
	"time"

	"github.com/google/uuid"
)

type SeatBookingRequest struct {
	LibraryID          uuid.UUID  `json:"library_id" validate:"required"`
	Name               string     `json:"name" validate:"required,max=255"`
	Email              string     `json:"email" validate:"required,email"`
	Mobile             string     `json:"mobile" validate:"required,max=20"`
	Address            string     `json:"address" validate:"max=500"`
	SubscriptionPlanID *uuid.UUID `json:"subscription_plan_id,omitempty"`
	SubscriptionMonths int        `json:"subscription_months,omitempty" validate:"omitempty,min=1,max=36"`
	Amount             *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Date               string     `json:"date,omitempty"`
	StartTime          string     `json:"start_time,omitempty"`
	EndTime            string     `json:"end_time,omitempty"`
	Purpose            string     `json:"purpose,omitempty"`
}

type GatewaySignature struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// TokenPaymentVerifyRequest carries the booking fields and the checkout signature side by side.
type TokenPaymentVerifyRequest struct {
	SeatBookingRequest
	GatewaySignature
}

type PaymentOrder struct {
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	KeyID     string    `json:"key_id"`
	BookingID uuid.UUID `json:"booking_id,omitempty"`
}

type BookingDecisionRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=approved rejected"`
}

type CreateOrderRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
}

type ConfirmPaymentRequest struct {
	BookingID        uuid.UUID `json:"booking_id" validate:"required"`
	PaymentMethod    string    `json:"payment_method" validate:"required,max=50"`
	PaymentReference string    `json:"payment_reference" validate:"required,max=255"`
}

type GatewayPaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
	GatewaySignature
}

// Activation is the booking after a confirmed payment, with the student it was linked to.
type Activation struct {
	Booking
	Student Student `json:"student"`
}

type BookingFilter struct {
	Status *BookingStatus
	Limit  uint64
	Offset uint64
}

type LibraryQuery struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

type RemovalDecisionRequest struct {
	Status     RemovalStatus `json:"status" validate:"required,oneof=approved rejected cancelled"`
	AdminNotes *string       `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}

type RemovalFilter struct {
	AdminID uuid.UUID
	Status  *RemovalStatus
	Limit   uint64
	Offset  uint64
}

// RemovalRequestView is a removal request joined with the student it targets.
type RemovalRequestView struct {
	RemovalRequest
	StudentCode  string `db:"student_code" json:"student_code"`
	StudentName  string `db:"student_name" json:"student_name"`
	StudentEmail string `db:"student_email" json:"student_email"`
}

type RemovalCounts struct {
	Total    int `json:"total_requests"`
	Pending  int `json:"pending_requests"`
	Approved int `json:"approved_requests"`
	Rejected int `json:"rejected_requests"`
}

type RemovalStats struct {
	RemovalCounts
	OverdueStudents int `json:"overdue_students"`
}

type RemovalRequestList struct {
	Requests []RemovalRequestView `json:"requests"`
	RemovalCounts
}

type OverdueStudent struct {
	Student
	DaysOverdue       int  `db:"-" json:"days_overdue"`
	HasPendingRequest bool `db:"has_pending_request" json:"has_pending_request"`
}

type RenewalOrderRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

type RenewalVerifyRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
	GatewaySignature
}

// LifecycleReport summarises one subscription check pass.
type LifecycleReport struct {
	Warnings int `json:"warnings"`
	Expired  int `json:"expired"`
	Failed   int `json:"failed"`
}

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}
