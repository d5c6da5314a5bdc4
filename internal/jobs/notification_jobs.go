package jobs

import (
	"context"
	"fmt"
	"time"

	"community-portal-backend/internal/logger"
)

// DispatchOutbox drains the pending outbox events into emails. Failures
// leave events pending for the next run; delivery is at-least-once.
func (jr *JobRunner) DispatchOutbox() {
	jr.runWithRecovery("DispatchOutbox", func() {
		ctx := context.Background()
		sent, err := jr.services.Dispatcher.DispatchPending(ctx)
		if err != nil {
			logger.Warn("Outbox dispatch incomplete", "error", err)
			return
		}
		if sent > 0 {
			logger.Info("Outbox events dispatched", "count", sent)
		}
	})
}

// SendMeetupReminders emails every attendee who RSVPed "coming" for a meetup
// happening tomorrow.
func (jr *JobRunner) SendMeetupReminders() {
	jr.runWithRecovery("SendMeetupReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")

		query := `
			SELECT m.id, m.title, m.date, m.start_time, m.venue,
			       u.email, u.username
			FROM meetups m
			JOIN rsvps r ON r.meetup_id = m.id AND r.coming = TRUE
			JOIN systers_users u ON u.id = r.user_id
			WHERE m.date = $1
		`
		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to query upcoming meetups", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				meetupID  int32
				title     string
				date      string
				startTime string
				venue     string
				email     string
				username  string
			)
			if err := rows.Scan(&meetupID, &title, &date, &startTime, &venue, &email, &username); err != nil {
				logger.Error("Failed to scan meetup reminder row", "error", err)
				continue
			}

			subject := "Reminder: " + title
			body := fmt.Sprintf(`Hello %s,

This is a reminder that the meetup %q you RSVPed for takes place tomorrow, %s at %s.`,
				username, title, date, startTime)
			if venue != "" {
				body += fmt.Sprintf("\n\nVenue: %s", venue)
			}

			if err := jr.services.Email.Send(ctx, email, username, subject, body); err != nil {
				logger.Warn("Failed to send meetup reminder",
					"meetup_id", meetupID, "email", email, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating meetup reminders", "error", err)
			return
		}

		if count > 0 {
			logger.Info("Meetup reminders sent", "count", count)
		}
	})
}
