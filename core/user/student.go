package user

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/strategy"
	"github.com/trezcool/saynoretake/core/subject"
)

var (
	// errors
	ErrSubjectNotFound = errors.New("subject not found")

	strategyNotSet = "Strategy not set."
)

type Student struct {
	name        string
	password    string
	adviserName string // resolved by equality against the Adviser's name
	subjects    []subject.Subject
	observers   []Observer
}

var _ strategy.Gradebook = (*Student)(nil)

func NewStudent(name, password, adviserName string, subjects ...subject.Subject) *Student {
	return &Student{
		name:        name,
		password:    password,
		adviserName: adviserName,
		subjects:    subjects,
	}
}

func (s *Student) Name() string        { return s.name }
func (s *Student) AdviserName() string { return s.adviserName }

func (s *Student) Authenticate(name, password string) bool {
	return s.name == name && s.password == password
}

func (s *Student) AddSubject(sub subject.Subject) {
	s.subjects = append(s.subjects, sub)
}

// Subjects returns the student's subjects in insertion order.
func (s *Student) Subjects() []subject.Subject {
	subs := make([]subject.Subject, len(s.subjects))
	copy(subs, s.subjects)
	return subs
}

// Subject finds a subject by case-insensitive name.
func (s *Student) Subject(name string) (subject.Subject, error) {
	for _, sub := range s.subjects {
		if strings.EqualFold(sub.Name(), name) {
			return sub, nil
		}
	}

	names := make([]string, 0, len(s.subjects))
	for _, sub := range s.subjects {
		names = append(names, sub.Name())
	}
	if match, ok := core.ClosestMatch(name, names); ok {
		return nil, errors.Wrapf(ErrSubjectNotFound, "%q (did you mean %q?)", name, match)
	}
	return nil, errors.Wrapf(ErrSubjectNotFound, "%q", name)
}

// AddGrade records a grade on one of the student's subjects and notifies the observers.
// Rejected grades change nothing and notify no one.
func (s *Student) AddGrade(subjectName, category string, amount float64) error {
	sub, err := s.Subject(subjectName)
	if err != nil {
		return err
	}
	if err = sub.AddGrade(category, amount); err != nil {
		return errors.Wrap(err, sub.Name())
	}
	s.NotifyObservers()
	return nil
}

func (s *Student) GenerateReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nGrade Report for %s\n", s.name)
	for _, sub := range s.subjects {
		fmt.Fprintf(&b, "- %s: %s\n", sub.Name(), core.FormatScore(sub.TotalScore()))
	}
	return b.String()
}

// ExecuteStrategy runs `strat` against the student's subjects.
func (s *Student) ExecuteStrategy(strat strategy.Strategy) string {
	if strat == nil {
		return strategyNotSet
	}
	return strat.Calculate(s)
}

// AddObserver registers `o`; registering the same observer twice notifies it twice.
func (s *Student) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// RemoveObserver unregisters the first registration of `o`.
func (s *Student) RemoveObserver(o Observer) {
	for i, obs := range s.observers {
		if sameObserver(obs, o) {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// sameObserver compares observers by identity; observers of uncomparable types compare by value.
func sameObserver(a, b Observer) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// NotifyObservers calls Update on every observer registered when the notification starts, in registration order.
func (s *Student) NotifyObservers() {
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	for _, o := range observers {
		o.Update(s)
	}
}
