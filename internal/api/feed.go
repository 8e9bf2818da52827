package api

import (
	"io"
	"net/http"
	"time"

	"gitea.jw6.us/james/elternrat/internal/ics"
	"gitea.jw6.us/james/elternrat/internal/store"
)

// CalendarFeed serves the active school year's meetings and events as an
// iCalendar file.
func (h *Handler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	state := h.store.State()
	year := state.Settings.ActiveSchoolYear

	var meetings []store.Meeting
	for _, m := range state.Entities.Meetings {
		if m.SchoolYear == year {
			meetings = append(meetings, m)
		}
	}
	var events []store.EventItem
	for _, e := range state.Entities.Events {
		if e.SchoolYear == year {
			events = append(events, e)
		}
	}

	loc, err := time.LoadLocation(state.Settings.Timezone)
	if err != nil {
		loc = time.Local
	}

	feed := ics.Build(meetings, events, ics.Options{
		CalendarName: state.Settings.SchoolName,
		Location:     loc,
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="elternrat.ics"`)
	_, _ = io.WriteString(w, feed)
}
