package model

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

type bookingTransition struct {
	from, to BookingStatus
}

var bookingTransitions = map[bookingTransition]bool{
	{BookingPending, BookingApproved}:   true,
	{BookingPending, BookingRejected}:   true,
	{BookingPending, BookingActive}:     true,
	{BookingApproved, BookingActive}:    true,
	{BookingPending, BookingCancelled}:  true,
	{BookingApproved, BookingCancelled}: true,
	{BookingActive, BookingCancelled}:   true,
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	return bookingTransitions[bookingTransition{s, to}]
}

func (s BookingStatus) Terminal() bool {
	return s == BookingRejected || s == BookingCancelled
}

// Occupying statuses hold a seat in capacity accounting.
func (s BookingStatus) Occupying() bool {
	return s == BookingApproved || s == BookingActive
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingActive, BookingCancelled:
		return true
	}
	return false
}

// CancellableBookingStatuses are cancelled when a student is removed.
var CancellableBookingStatuses = []BookingStatus{BookingPending, BookingApproved, BookingActive}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentTokenPaid PaymentStatus = "token_paid"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

const (
	PaymentMethodGateway       = "razorpay"
	PaymentMethodAdminOverride = "admin_override"
)

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "Active"
	SubscriptionExpired SubscriptionStatus = "Expired"
	SubscriptionRemoved SubscriptionStatus = "Removed"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

type RemovalStatus string

const (
	RemovalPending   RemovalStatus = "pending"
	RemovalApproved  RemovalStatus = "approved"
	RemovalRejected  RemovalStatus = "rejected"
	RemovalCancelled RemovalStatus = "cancelled"
)

func (s RemovalStatus) CanTransition(to RemovalStatus) bool {
	return s == RemovalPending && (to == RemovalApproved || to == RemovalRejected || to == RemovalCancelled)
}

func (s RemovalStatus) Valid() bool {
	switch s {
	case RemovalPending, RemovalApproved, RemovalRejected, RemovalCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type NotificationType string

const (
	NotificationSystem  NotificationType = "system"
	NotificationGeneral NotificationType = "general"
)
