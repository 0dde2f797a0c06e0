package render

import (
	"fmt"
	"strings"

	"jadwalin/internal/schedule"
	"jadwalin/pkg/model"
)

// WeeklyTables projects a schedule into one day-by-hour text grid per room.
// Cells holding more than one section (a room conflict the search did not
// resolve) list every occupant separated by slashes.
func WeeklyTables(state *schedule.State) string {
	problem := state.Problem()
	var builder strings.Builder

	for room, info := range problem.Rooms {
		fmt.Fprintf(&builder, "Room %v (capacity %v)\n", info.Code, info.Capacity)

		builder.WriteString("   ")
		for day := range schedule.DaysPerWeek {
			fmt.Fprintf(&builder, "%-12v", model.Day(day))
		}
		builder.WriteString("\n")

		cells := make([][][]string, schedule.DaysPerWeek)
		for day := range cells {
			cells[day] = make([][]string, schedule.LastHour-schedule.FirstHour)
		}
		for i, meeting := range problem.Meetings {
			assignment := state.Assign[i]
			if assignment.Room != room {
				continue
			}
			code := problem.Sections[meeting.Section].Code
			for hour := assignment.Start; hour < assignment.Start+meeting.Length; hour++ {
				cells[assignment.Day][hour-schedule.FirstHour] = append(cells[assignment.Day][hour-schedule.FirstHour], code)
			}
		}

		for hour := schedule.FirstHour; hour < schedule.LastHour; hour++ {
			fmt.Fprintf(&builder, "%2d ", hour)
			for day := range schedule.DaysPerWeek {
				fmt.Fprintf(&builder, "%-12v", strings.Join(cells[day][hour-schedule.FirstHour], "/"))
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
