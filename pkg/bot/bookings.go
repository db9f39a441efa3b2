package bot

import (
	"context"
	"fmt"
	"strings"

	"motoride/pkg/logger"
	"motoride/pkg/models"

	tele "gopkg.in/telebot.v3"
)

const (
	bookingsLoading = "⏳ Loading your bookings..."
	bookingsEmpty   = "You haven't booked a ride yet."
)

// RenderBookingHistory renders exactly one of three states: the loading
// indicator, the "no bookings yet" message, or the booking rows in the
// order the store supplied them. It never mutates the collection.
func RenderBookingHistory(bookings []*models.Booking, loading bool) string {
	if loading {
		return bookingsLoading
	}
	if len(bookings) == 0 {
		return bookingsEmpty
	}

	var sb strings.Builder
	for i, b := range bookings {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderBookingRow(b))
	}
	return sb.String()
}

// Rows are keyed by the booking ID; the store guarantees it is present.
func renderBookingRow(b *models.Booking) string {
	return fmt.Sprintf("🧾 Booking #%d\n🗓 %s | 💰 %d %s\n🔵 Pickup: %s\n📍 Dropoff: %s",
		b.ID,
		b.BookedAt.Format("January 2, 2006 3:04 PM"),
		b.RidePrice, b.Currency,
		b.PickupLocation, b.DropoffLocation,
	)
}

func (b *Bot) handleMyBookings(c tele.Context) error {
	session, ok := b.session(c.Sender().ID)
	if !ok {
		return c.Send(messages["session_expired"])
	}
	session.mu.Lock()
	accountID := session.AccountID
	session.mu.Unlock()
	if accountID == 0 {
		return c.Send(messages["bookings_login"])
	}

	loading, err := b.Bot.Send(c.Chat(), RenderBookingHistory(nil, true))
	if err != nil {
		return err
	}

	bookings, err := b.Svc.Booking().History(context.Background(), accountID)
	if err != nil {
		b.Log.Error("failed to load bookings", logger.Error(err), logger.Int64("account_id", accountID))
		_, err = b.Bot.Edit(loading, messages["bookings_failed"])
		return err
	}

	_, err = b.Bot.Edit(loading, RenderBookingHistory(bookings, false))
	return err
}
