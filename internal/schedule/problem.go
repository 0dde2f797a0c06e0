package schedule

import (
	"fmt"

	"jadwalin/pkg/model"
)

// Weekly grid bounds. A meeting occupies hours [Start, Start+Length) on its
// day, with FirstHour <= Start and Start+Length <= LastHour.
const (
	FirstHour   = 7
	LastHour    = 18
	DaysPerWeek = 5
)

// Pattern controls how a section's credit value becomes weekly meetings. The
// derivation is deterministic, so meeting identities are stable across every
// state of a run.
type Pattern int

const (
	// SingleBlock derives one meeting of Credits contiguous hours.
	SingleBlock Pattern = iota
	// SplitDaily derives Credits one-hour meetings.
	SplitDaily
)

// Meeting is one schedulable unit derived from a course section.
type Meeting struct {
	Section int // index into Problem.Sections
	Ordinal int // position among the section's weekly meetings
	Length  int // contiguous hours
}

// StudentMeeting is one meeting a student attends, tagged with the priority
// rank of the owning section for that student.
type StudentMeeting struct {
	Meeting  int
	Priority int
}

// Problem is the immutable search context shared by every state of a run:
// the instance data plus the derived meeting set and per-student attendance.
type Problem struct {
	Sections []model.CourseSection
	Rooms    []model.Room
	Meetings []Meeting
	// StudentMeetings lists, per student, every meeting they attend.
	StudentMeetings [][]StudentMeeting
	Pattern         Pattern
}

func NewProblem(instance model.Instance, pattern Pattern) (*Problem, error) {
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	problem := &Problem{
		Sections: instance.Sections,
		Rooms:    instance.Rooms,
		Pattern:  pattern,
	}

	sectionMeetings := make(map[string][]int, len(instance.Sections))
	for i, section := range instance.Sections {
		lengths, err := decompose(section.Credits, pattern)
		if err != nil {
			return nil, fmt.Errorf("section %v: %w", section.Code, err)
		}
		for ordinal, length := range lengths {
			sectionMeetings[section.Code] = append(sectionMeetings[section.Code], len(problem.Meetings))
			problem.Meetings = append(problem.Meetings, Meeting{Section: i, Ordinal: ordinal, Length: length})
		}
	}

	for _, student := range instance.Students {
		meetings := make([]StudentMeeting, 0, len(student.Enrollments))
		for _, enrollment := range student.Enrollments {
			for _, meeting := range sectionMeetings[enrollment.Section] {
				meetings = append(meetings, StudentMeeting{Meeting: meeting, Priority: enrollment.Priority})
			}
		}
		problem.StudentMeetings = append(problem.StudentMeetings, meetings)
	}

	return problem, nil
}

func decompose(credits int, pattern Pattern) ([]int, error) {
	switch pattern {
	case SingleBlock:
		if credits > LastHour-FirstHour {
			return nil, fmt.Errorf("credit value %v exceeds the %v-hour day", credits, LastHour-FirstHour)
		}
		return []int{credits}, nil
	case SplitDaily:
		lengths := make([]int, credits)
		for i := range lengths {
			lengths[i] = 1
		}
		return lengths, nil
	default:
		return nil, fmt.Errorf("unknown meeting pattern %v", pattern)
	}
}

// positionCount is the number of legal (day, start, room) placements for a
// block of the given length.
func (p *Problem) positionCount(length int) int {
	return DaysPerWeek * (LastHour - FirstHour - length + 1) * len(p.Rooms)
}

// positionAt decodes an index in [0, positionCount) into an assignment. The
// ordering is fixed: rooms vary fastest, then start hours, then days.
func (p *Problem) positionAt(length, index int) Assignment {
	starts := LastHour - FirstHour - length + 1
	room := index % len(p.Rooms)
	index /= len(p.Rooms)
	return Assignment{
		Day:   model.Day(index / starts),
		Start: FirstHour + index%starts,
		Room:  room,
	}
}

// positionIndex is the inverse of positionAt.
func (p *Problem) positionIndex(length int, assignment Assignment) int {
	starts := LastHour - FirstHour - length + 1
	return (int(assignment.Day)*starts+assignment.Start-FirstHour)*len(p.Rooms) + assignment.Room
}
