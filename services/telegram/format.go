package telegram

import (
	"fmt"
	"strings"
	"time"

	"vacancy/models"
	"vacancy/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatAvailability renders the free dates of every room, one
// "dd/MM/yyyy → dd/MM/yyyy" line per gap. Timestamps are shown in loc.
func FormatAvailability(report *models.AvailabilityReport, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	b.WriteString("*Free dates:*\n")
	if report.Source == models.SourceSnapshot {
		fmt.Fprintf(&b, "_Reservation workspace unreachable, using data from %s_\n",
			report.DataAsOf.In(loc).Format("02/01/2006 15:04"))
	}
	for _, room := range report.RoomOrder {
		fmt.Fprintf(&b, "*%s:*\n", escape(report.RoomLabel(room)))
		ranges := report.EmptyDatesByRoom[room]
		if len(ranges) == 0 {
			b.WriteString("no gaps between bookings\n\n")
			continue
		}
		for _, r := range ranges {
			fmt.Fprintf(&b, "%s → %s\n", utils.FormatDisplayDate(r.Start), utils.FormatDisplayDate(r.End))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCheckIns renders the check-in list.
func FormatCheckIns(checkIns []models.CheckIn) string {
	if len(checkIns) == 0 {
		return "No check-ins today or tomorrow."
	}
	var b strings.Builder
	b.WriteString("*Check-in list:*\n")
	for _, ci := range checkIns {
		person := ci.PersonName
		if person == "" {
			person = ci.PersonID
		}
		room := ci.RoomName
		if room == "" {
			room = ci.RoomID
		}
		fmt.Fprintf(&b, "*Person:* %s\n", escape(person))
		fmt.Fprintf(&b, "*Check date:* %s\n", utils.FormatDisplayDate(ci.CheckDate))
		fmt.Fprintf(&b, "*Room:* %s\n\n", escape(room))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRooms renders a numbered room list.
func FormatRooms(rooms []models.Room) string {
	if len(rooms) == 0 {
		return "No rooms found."
	}
	var b strings.Builder
	b.WriteString("Rooms:\n")
	for i, r := range rooms {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, escape(name))
	}
	return strings.TrimRight(b.String(), "\n")
}
