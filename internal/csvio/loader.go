package csvio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"jadwalin/pkg/model"
)

type sectionRecord struct {
	Code     string `csv:"code"`
	Enrolled int    `csv:"enrolled"`
	Credits  int    `csv:"credits"`
}

type roomRecord struct {
	Code     string `csv:"code"`
	Capacity int    `csv:"capacity"`
}

type studentRecord struct {
	Id         string `csv:"student"`
	Sections   string `csv:"sections"`   // semicolon-separated section codes
	Priorities string `csv:"priorities"` // semicolon-separated ranks, aligned with sections
}

// LoadInstance reads the three instance containers from CSV files and
// validates the assembled instance.
func LoadInstance(sectionsPath, roomsPath, studentsPath string) (model.Instance, error) {
	var sections []*sectionRecord
	if err := readCsv(sectionsPath, &sections); err != nil {
		return model.Instance{}, err
	}
	var rooms []*roomRecord
	if err := readCsv(roomsPath, &rooms); err != nil {
		return model.Instance{}, err
	}
	var students []*studentRecord
	if err := readCsv(studentsPath, &students); err != nil {
		return model.Instance{}, err
	}

	instance := model.Instance{
		Sections: lo.Map(sections, func(record *sectionRecord, _ int) model.CourseSection {
			return model.CourseSection{Code: record.Code, Enrolled: record.Enrolled, Credits: record.Credits}
		}),
		Rooms: lo.Map(rooms, func(record *roomRecord, _ int) model.Room {
			return model.Room{Code: record.Code, Capacity: record.Capacity}
		}),
	}

	for _, record := range students {
		codes := strings.Split(record.Sections, ";")
		ranks, err := parseRanks(record.Priorities)
		if err != nil {
			return model.Instance{}, fmt.Errorf("student %v: %w", record.Id, err)
		}
		student, err := model.NewStudent(record.Id, codes, ranks)
		if err != nil {
			return model.Instance{}, err
		}
		instance.Students = append(instance.Students, student)
	}

	if err := instance.Validate(); err != nil {
		return model.Instance{}, err
	}
	return instance, nil
}

func readCsv(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.UnmarshalFile(file, out); err != nil {
		return fmt.Errorf("cannot parse %v: %w", path, err)
	}
	return nil
}

func parseRanks(field string) ([]int, error) {
	parts := strings.Split(field, ";")
	ranks := make([]int, len(parts))
	for i, part := range parts {
		rank, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid priority %q", part)
		}
		ranks[i] = rank
	}
	return ranks, nil
}
