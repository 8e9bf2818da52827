// Package ics renders the council calendar (meetings plus events) as an
// iCalendar feed.
package ics

import (
	"fmt"
	"strings"
	"time"

	"gitea.jw6.us/james/elternrat/internal/store"
)

// Options control calendar-level properties of the feed.
type Options struct {
	ProdID       string
	CalendarName string
	// Location resolves meeting date/time fields, which are stored without
	// zone information. Nil means time.Local.
	Location *time.Location
	// Now stamps DTSTAMP. Zero means time.Now.
	Now time.Time
}

// Build renders a VCALENDAR feed. Meetings with start and end times become
// timed events; meetings without become all-day events (exclusive DTEND).
func Build(meetings []store.Meeting, events []store.EventItem, opts Options) string {
	prodID := opts.ProdID
	if prodID == "" {
		prodID = "-//Elternrat//Tool//DE"
	}
	name := opts.CalendarName
	if name == "" {
		name = "Elternrat"
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	dtstamp := formatUTC(now)

	var out []string
	out = append(out,
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:"+prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:"+escape(name),
	)

	for _, m := range meetings {
		out = append(out, "BEGIN:VEVENT")
		out = append(out, fmt.Sprintf("UID:meeting-%s@elternrat", m.ID))
		out = append(out, "DTSTAMP:"+dtstamp)
		out = append(out, "SUMMARY:"+escape("Sitzung Elternrat"))

		if start, end, ok := meetingTimes(m, loc); ok {
			out = append(out, "DTSTART:"+formatUTC(start))
			out = append(out, "DTEND:"+formatUTC(end))
		} else if day, err := time.ParseInLocation("2006-01-02", m.Date, loc); err == nil {
			out = append(out, "DTSTART;VALUE=DATE:"+day.Format("20060102"))
			out = append(out, "DTEND;VALUE=DATE:"+day.AddDate(0, 0, 1).Format("20060102"))
		}

		if m.Location != "" {
			out = append(out, "LOCATION:"+escape(m.Location))
		}
		if desc := meetingDescription(m); desc != "" {
			out = append(out, "DESCRIPTION:"+escape(desc))
		}
		out = append(out, "END:VEVENT")
	}

	for _, e := range events {
		out = append(out, "BEGIN:VEVENT")
		out = append(out, fmt.Sprintf("UID:event-%s@elternrat", e.ID))
		out = append(out, "DTSTAMP:"+dtstamp)
		out = append(out, "SUMMARY:"+escape(e.Title))
		out = append(out, "DTSTART:"+formatUTC(e.Start))
		out = append(out, "DTEND:"+formatUTC(e.End))
		if e.Location != "" {
			out = append(out, "LOCATION:"+escape(e.Location))
		}
		if desc := strings.TrimSpace(e.Description); desc != "" {
			out = append(out, "DESCRIPTION:"+escape(desc))
		}
		out = append(out, "END:VEVENT")
	}

	out = append(out, "END:VCALENDAR")

	var sb strings.Builder
	for _, line := range out {
		sb.WriteString(fold(line))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func meetingTimes(m store.Meeting, loc *time.Location) (start, end time.Time, ok bool) {
	if m.Start == "" || m.End == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", m.Date+" "+m.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.ParseInLocation("2006-01-02 15:04", m.Date+" "+m.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func meetingDescription(m store.Meeting) string {
	var parts []string
	if m.Location != "" {
		parts = append(parts, "Ort: "+m.Location)
	}
	if len(m.Traktanden) > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, "Traktanden:")
		for _, t := range m.Traktanden {
			parts = append(parts, "- "+t.Title)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	return s
}

// fold breaks long content lines at 75 octets with a space continuation, per
// RFC 5545 line folding.
func fold(line string) string {
	const max = 75
	if len(line) <= max {
		return line
	}
	parts := []string{line[:max]}
	rest := line[max:]
	// Continuation lines lose one octet to the leading space.
	for len(rest) > max-1 {
		parts = append(parts, " "+rest[:max-1])
		rest = rest[max-1:]
	}
	parts = append(parts, " "+rest)
	return strings.Join(parts, "\r\n")
}
