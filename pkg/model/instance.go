package model

import (
	"fmt"
	"sort"
)

type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (day Day) String() string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return fmt.Sprintf("Day(%v)", int(day))
}

// CourseSection is one offered class section. Credits determines the weekly
// meeting footprint of the section.
type CourseSection struct {
	Code     string
	Enrolled int
	Credits  int
}

type Room struct {
	Code     string
	Capacity int
}

// Enrollment pairs a section code with the student's priority rank for it,
// where 1 is the highest priority.
type Enrollment struct {
	Section  string
	Priority int
}

type Student struct {
	Id          string
	Enrollments []Enrollment
}

// Instance is a complete scheduling problem: the three semantic containers
// consumed by the optimization core.
type Instance struct {
	Sections []CourseSection
	Rooms    []Room
	Students []Student
}

// NewStudent builds a Student from parallel section and priority lists. The
// enrollments are ordered by the supplied priority values and their ranks
// normalized to 1-based positions, so downstream scoring only ever sees ranks
// 1..n regardless of the raw values in the input file.
func NewStudent(id string, sections []string, priorities []int) (Student, error) {
	if len(sections) != len(priorities) {
		return Student{}, fmt.Errorf("student %v has %v sections but %v priorities", id, len(sections), len(priorities))
	}

	type pair struct {
		section  string
		priority int
	}
	pairs := make([]pair, len(sections))
	for i := range sections {
		pairs[i] = pair{section: sections[i], priority: priorities[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].priority < pairs[j].priority })

	student := Student{Id: id, Enrollments: make([]Enrollment, len(pairs))}
	for i, p := range pairs {
		student.Enrollments[i] = Enrollment{Section: p.section, Priority: i + 1}
	}
	return student, nil
}

func (instance Instance) Validate() error {
	if len(instance.Sections) == 0 {
		return fmt.Errorf("instance has no course sections")
	}
	if len(instance.Rooms) == 0 {
		return fmt.Errorf("instance has no rooms")
	}

	sections := make(map[string]bool, len(instance.Sections))
	for _, section := range instance.Sections {
		if section.Code == "" {
			return fmt.Errorf("course section with empty code")
		}
		if sections[section.Code] {
			return fmt.Errorf("duplicated course section %v", section.Code)
		}
		if section.Credits <= 0 {
			return fmt.Errorf("section %v has non-positive credit value %v", section.Code, section.Credits)
		}
		if section.Enrolled < 0 {
			return fmt.Errorf("section %v has negative enrolled count %v", section.Code, section.Enrolled)
		}
		sections[section.Code] = true
	}

	rooms := make(map[string]bool, len(instance.Rooms))
	for _, room := range instance.Rooms {
		if rooms[room.Code] {
			return fmt.Errorf("duplicated room %v", room.Code)
		}
		if room.Capacity <= 0 {
			return fmt.Errorf("room %v has non-positive capacity %v", room.Code, room.Capacity)
		}
		rooms[room.Code] = true
	}

	for _, student := range instance.Students {
		if len(student.Enrollments) == 0 {
			return fmt.Errorf("student %v has no enrolled sections", student.Id)
		}
		for _, enrollment := range student.Enrollments {
			if !sections[enrollment.Section] {
				return fmt.Errorf("student %v is enrolled in unknown section %v", student.Id, enrollment.Section)
			}
			if enrollment.Priority <= 0 {
				return fmt.Errorf("student %v has non-positive priority rank for section %v", student.Id, enrollment.Section)
			}
		}
	}
	return nil
}
