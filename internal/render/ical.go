package render

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"jadwalin/internal/schedule"
)

// Calendar exports the schedule as an iCalendar feed with one event per
// meeting, placed inside the week starting at weekStart (expected to be a
// Monday).
func Calendar(state *schedule.State, weekStart time.Time) string {
	problem := state.Problem()
	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)

	for i, meeting := range problem.Meetings {
		assignment := state.Assign[i]
		section := problem.Sections[meeting.Section]

		day := weekStart.AddDate(0, 0, int(assignment.Day))
		start := time.Date(day.Year(), day.Month(), day.Day(), assignment.Start, 0, 0, 0, weekStart.Location())

		event := calendar.AddEvent(fmt.Sprintf("%v-%v@jadwalin", section.Code, meeting.Ordinal))
		event.SetCreatedTime(weekStart)
		event.SetDtStampTime(weekStart)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(meeting.Length) * time.Hour))
		event.SetSummary(section.Code)
		event.SetLocation(problem.Rooms[assignment.Room].Code)
	}

	return calendar.Serialize()
}
