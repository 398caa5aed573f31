package meeting_service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
)

const crlf = "\r\n"

// buildICal renders an RFC 5545 VCALENDAR for one meeting. The output is
// deterministic for a fixed clock so external calendar clients round-trip
// title, start and end exactly.
func (s *MeetingService) buildICal(meeting entity.Meeting, attendees []entity.MeetingAttendee, resolved map[uuid.UUID]entity.Employee) string {
	var b strings.Builder

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString(crlf)
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:" + s.ProductID)
	writeLine("BEGIN:VEVENT")
	writeLine(fmt.Sprintf("UID:%s@%s", meeting.ID, s.UIDDomain))
	writeLine("DTSTART:" + icalTime(meeting.StartUTC))
	writeLine("DTEND:" + icalTime(meeting.EndUTC))
	writeLine("SUMMARY:" + icalEscape(meeting.Title))
	if meeting.Description != nil {
		writeLine("DESCRIPTION:" + icalEscape(*meeting.Description))
	}
	if meeting.Location != nil {
		writeLine("LOCATION:" + icalEscape(*meeting.Location))
	}
	if organizer, ok := resolved[meeting.OrganizerID]; ok {
		writeLine(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", organizer.DisplayName(), organizer.Email))
	}
	for _, attendee := range attendees {
		if employee, ok := resolved[attendee.EmployeeID]; ok {
			writeLine(fmt.Sprintf("ATTENDEE;CN=%s:mailto:%s", employee.DisplayName(), employee.Email))
		}
	}
	writeLine("DTSTAMP:" + icalTime(s.Now()))
	writeLine("END:VEVENT")
	writeLine("END:VCALENDAR")

	return b.String()
}

func icalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// icalEscape applies the RFC 5545 TEXT escaping rules. Backslash must be
// escaped first so it does not double-escape the others.
func icalEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
