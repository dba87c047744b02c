package config

import (
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/knitnet/geometry"
)

// coursesFile is the on-disk form of sampled rows:
//
//	course_height: 1.0
//	rows:
//	  - [[0, 0, 0], [1, 0, 0], [2, 0, 0]]
//	  - [[0, 1, 0], [1, 1, 0], [2, 1, 0]]
type coursesFile struct {
	CourseHeight float64        `yaml:"course_height"`
	Rows         [][][3]float64 `yaml:"rows"`
}

// LoadCourses reads sampled rows from a YAML file and validates them.
func LoadCourses(path string) (geometry.Courses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geometry.Courses{}, errors.Wrap(err, "config: read courses")
	}

	return ParseCourses(data)
}

// ParseCourses decodes sampled rows from YAML and validates them.
func ParseCourses(data []byte) (geometry.Courses, error) {
	var f coursesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return geometry.Courses{}, errors.Wrap(err, "config: parse courses")
	}

	c := geometry.Courses{CourseHeight: f.CourseHeight, Rows: make([]geometry.Row, len(f.Rows))}
	for i, row := range f.Rows {
		pts := make([]geometry.Point, len(row))
		for j, p := range row {
			pts[j] = v3.Vec{X: p[0], Y: p[1], Z: p[2]}
		}
		c.Rows[i] = geometry.Row{Points: pts}
	}
	if err := c.Validate(); err != nil {
		return geometry.Courses{}, errors.Wrap(err, "config: courses")
	}

	return c, nil
}
