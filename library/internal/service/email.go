package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/mailer"
)

func letter(to, subject, name string, lines ...string) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\nLibraryConnekto")
	return mailer.Message{To: to, Subject: subject, Body: b.String()}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}

func bookingReceivedEmail(b model.Booking, lib model.Library) mailer.Message {
	lines := []string{
		fmt.Sprintf("We received your seat booking request for %s.", lib.Name),
		fmt.Sprintf("Booking: %s", b.ID),
		fmt.Sprintf("Plan: %d month(s), amount %.2f", b.SubscriptionMonths, b.Amount),
	}
	if b.PaymentStatus == model.PaymentTokenPaid {
		lines = append(lines, "Your token payment has been received.")
	}
	lines = append(lines, "The library admin will review it shortly.")
	return letter(b.Email, "Seat booking received - "+lib.Name, b.Name, lines...)
}

func bookingDecisionEmail(b model.Booking, lib model.Library) mailer.Message {
	switch b.Status {
	case model.BookingRejected:
		lines := []string{fmt.Sprintf("Your seat booking request for %s was not approved.", lib.Name)}
		if b.PaymentStatus == model.PaymentTokenPaid || b.PaymentStatus == model.PaymentRefunded {
			lines = append(lines, "Your token payment will be refunded.")
		}
		return letter(b.Email, "Seat booking update - "+lib.Name, b.Name, lines...)
	case model.BookingActive:
		return letter(b.Email, "Seat booking activated - "+lib.Name, b.Name,
			fmt.Sprintf("Your seat at %s is active.", lib.Name),
			fmt.Sprintf("Subscription: %s to %s", formatDate(b.StartDate), formatDate(b.EndDate)))
	default:
		return letter(b.Email, "Seat booking approved - "+lib.Name, b.Name,
			fmt.Sprintf("Your seat booking request for %s was approved.", lib.Name),
			fmt.Sprintf("Complete the payment of %.2f to activate your seat.", b.Amount))
	}
}

func paymentConfirmedEmail(act model.Activation, lib model.Library) mailer.Message {
	return letter(act.Booking.Email, "Payment confirmed - "+lib.Name, act.Booking.Name,
		fmt.Sprintf("Your payment for %s is confirmed and your seat is active.", lib.Name),
		fmt.Sprintf("Student ID: %s", act.Student.StudentID),
		fmt.Sprintf("Subscription: %s to %s", formatDate(act.Booking.StartDate), formatDate(act.Booking.EndDate)))
}

func expiryWarningEmail(st model.Student, daysLeft int) mailer.Message {
	return letter(st.Email, warningTitle(daysLeft), st.Name,
		fmt.Sprintf("Your subscription ends on %s.", formatDate(st.SubscriptionEnd)),
		"Renew now to keep your seat.")
}

func expiredEmail(st model.Student) mailer.Message {
	return letter(st.Email, "Subscription Expired", st.Name,
		fmt.Sprintf("Your subscription ended on %s.", formatDate(st.SubscriptionEnd)),
		"Renew within 2 days to keep your seat.")
}

func removedEmail(st model.Student) mailer.Message {
	return letter(st.Email, "Removed from library", st.Name,
		"Your subscription was not renewed and you have been removed from the library.",
		"Contact the library admin to be restored.")
}

func restoredEmail(st model.Student) mailer.Message {
	return letter(st.Email, "Access restored", st.Name,
		fmt.Sprintf("Your student account %s has been restored.", st.StudentID))
}

func renewedEmail(st model.Student) mailer.Message {
	return letter(st.Email, "Subscription Renewed", st.Name,
		fmt.Sprintf("Your subscription is active until %s.", formatDate(st.SubscriptionEnd)))
}
