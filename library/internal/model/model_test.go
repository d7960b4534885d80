package model_test

import (
	"testing"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from, to model.BookingStatus
		want     bool
	}{
		{model.BookingPending, model.BookingApproved, true},
		{model.BookingPending, model.BookingRejected, true},
		{model.BookingPending, model.BookingActive, true},
		{model.BookingApproved, model.BookingActive, true},
		{model.BookingActive, model.BookingCancelled, true},
		{model.BookingApproved, model.BookingRejected, false},
		{model.BookingActive, model.BookingApproved, false},
		{model.BookingRejected, model.BookingApproved, false},
		{model.BookingCancelled, model.BookingActive, false},
		{model.BookingActive, model.BookingActive, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
	require.True(t, model.BookingRejected.Terminal())
	require.True(t, model.BookingCancelled.Terminal())
	require.False(t, model.BookingPending.Terminal())
	require.False(t, model.BookingStatus("done").Valid())
}

func TestRemovalStatus_CanTransition(t *testing.T) {
	t.Parallel()
	for _, to := range []model.RemovalStatus{model.RemovalApproved, model.RemovalRejected, model.RemovalCancelled} {
		require.True(t, model.RemovalPending.CanTransition(to))
		require.False(t, model.RemovalApproved.CanTransition(to))
	}
	require.False(t, model.RemovalPending.CanTransition(model.RemovalPending))
}

func TestSubscriptionEnd(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)
	for _, months := range []int{1, 3, 6, 12} {
		end := model.SubscriptionEnd(start, months)
		require.Equal(t, time.Duration(30*months)*24*time.Hour, end.Sub(start))
	}
	require.Equal(t, start.AddDate(0, 0, 30), model.SubscriptionEnd(start, 0))
}

func TestSubscriptionPlan_Price(t *testing.T) {
	t.Parallel()
	discounted := 900.0
	require.Equal(t, 1000.0, model.SubscriptionPlan{Amount: 1000}.Price())
	require.Equal(t, 900.0, model.SubscriptionPlan{Amount: 1000, DiscountedAmount: &discounted}.Price())
}
