package inmemdb

import (
	"fmt"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/subject"
	"github.com/trezcool/saynoretake/core/user"
)

const studentPassword = "12345"

// SeedStudents are the students of a fresh session, in registration order.
var SeedStudents = []string{"Kamila", "Akbota", "Nurkanat"}

func seedSubjects() []subject.Subject {
	return []subject.Subject{
		subject.WithBonus(subject.New("Calculus",
			subject.Category{Name: "Quiz", Max: 40},
			subject.Category{Name: "Midterm", Max: 30},
		), 5),
		subject.WithBonus(subject.New("Design Patterns",
			subject.Category{Name: "Lab.work", Max: 40},
			subject.Category{Name: "Project", Max: 20},
		), 3),
		subject.New("Data Structure and Algorithms",
			subject.Category{Name: "Home work", Max: 30},
			subject.Category{Name: "Contest", Max: 30},
		),
		subject.New("Turkish language",
			subject.Category{Name: "Midterm", Max: 30},
			subject.Category{Name: "Ders", Max: 30},
		),
	}
}

// Seed fills `dir` with the configured adviser and the SeedStudents, each with its own set of subjects.
// The adviser, then every extra observer, is registered on each student.
func Seed(dir user.Directory, conf *core.Config, logger core.Logger, observers ...user.Observer) *user.Adviser {
	adviser := user.NewAdviser(conf.Seed.AdviserName, conf.Seed.AdviserPassword, dir, logger)
	dir.SetAdviser(adviser)

	for _, name := range SeedStudents {
		s := user.NewStudent(name, studentPassword, adviser.Name(), seedSubjects()...)
		s.AddObserver(adviser)
		for _, o := range observers {
			s.AddObserver(o)
		}
		dir.AddStudent(s)
	}

	logger.Debug(fmt.Sprintf("seeded adviser %s and %d students", adviser.Name(), len(SeedStudents)))
	return adviser
}
