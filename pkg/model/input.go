package model

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type sectionJson struct {
	Code     string `mapstructure:"kode"`
	Enrolled int    `mapstructure:"jumlah_mahasiswa"`
	Credits  int    `mapstructure:"sks"`
}

type roomJson struct {
	Code     string `mapstructure:"kode"`
	Capacity int    `mapstructure:"kuota"`
}

type studentJson struct {
	Id         string   `mapstructure:"nim"`
	Sections   []string `mapstructure:"daftar_mk"`
	Priorities []int    `mapstructure:"prioritas"`
}

type instanceJson struct {
	Sections []sectionJson `mapstructure:"kelas_mata_kuliah"`
	Rooms    []roomJson    `mapstructure:"ruangan"`
	Students []studentJson `mapstructure:"mahasiswa"`
}

// InstanceFromJson loads and validates a problem instance from a JSON file
// with the kelas_mata_kuliah/ruangan/mahasiswa sections.
func InstanceFromJson(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Instance{}, err
	}

	var input instanceJson
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Instance{}, err
	}

	return input.toInstance()
}

func (input instanceJson) toInstance() (Instance, error) {
	instance := Instance{
		Sections: lo.Map(input.Sections, func(section sectionJson, _ int) CourseSection {
			return CourseSection{Code: section.Code, Enrolled: section.Enrolled, Credits: section.Credits}
		}),
		Rooms: lo.Map(input.Rooms, func(room roomJson, _ int) Room {
			return Room{Code: room.Code, Capacity: room.Capacity}
		}),
	}

	for _, student := range input.Students {
		parsed, err := NewStudent(student.Id, student.Sections, student.Priorities)
		if err != nil {
			return Instance{}, err
		}
		instance.Students = append(instance.Students, parsed)
	}

	if err := instance.Validate(); err != nil {
		return Instance{}, err
	}
	return instance, nil
}
