// Package subject models gradeable course components: a Subject holds grading
// categories, each with its own cap, and accumulates points per category.
package subject

import (
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
)

var (
	// errors
	ErrUnknownCategory = errors.New("invalid category")
	ErrCapExceeded     = errors.New("total score exceeds category maximum")
	ErrInvalidAmount   = errors.New("score must be a non-negative number")
)

// Subject is the capability shared by base subjects and their decorations.
type Subject interface {
	Name() string
	// Categories returns the grading categories in declaration order.
	Categories() []Category
	// AddGrade adds `amount` to the accumulated score of `category`.
	// A rejected grade leaves the subject untouched.
	AddGrade(category string, amount float64) error
	TotalScore() float64
	Grades() map[string]float64
	MaxPoints() map[string]float64
}

// Category is a named grading bucket and its maximum score.
type Category struct {
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

type baseSubject struct {
	name       string
	categories []Category
	grades     map[string]float64
	maxPoints  map[string]float64
}

var _ Subject = (*baseSubject)(nil) // interface compliance check

// New creates a Subject with every category starting at 0.
// A category declared twice keeps its first position and its last maximum.
func New(name string, categories ...Category) Subject {
	sub := &baseSubject{
		name:       name,
		categories: make([]Category, 0, len(categories)),
		grades:     make(map[string]float64, len(categories)),
		maxPoints:  make(map[string]float64, len(categories)),
	}
	for _, cat := range categories {
		if _, ok := sub.maxPoints[cat.Name]; ok {
			for i := range sub.categories {
				if sub.categories[i].Name == cat.Name {
					sub.categories[i].Max = cat.Max
				}
			}
		} else {
			sub.categories = append(sub.categories, cat)
		}
		sub.maxPoints[cat.Name] = cat.Max
		sub.grades[cat.Name] = 0
	}
	return sub
}

func (s *baseSubject) Name() string { return s.name }

func (s *baseSubject) Categories() []Category {
	cats := make([]Category, len(s.categories))
	copy(cats, s.categories)
	return cats
}

func (s *baseSubject) AddGrade(category string, amount float64) error {
	current, ok := s.grades[category]
	if !ok {
		if match, found := core.ClosestMatch(category, s.categoryNames()); found {
			return errors.Wrapf(ErrUnknownCategory, "%q (did you mean %q?)", category, match)
		}
		return errors.Wrapf(ErrUnknownCategory, "%q", category)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.Wrapf(ErrInvalidAmount, "%v", amount)
	}

	max := s.maxPoints[category]
	if amount+current > max {
		return errors.Wrapf(ErrCapExceeded, "%s: %s/%s", category, core.FormatScore(amount+current), core.FormatScore(max))
	}
	s.grades[category] = current + amount
	return nil
}

func (s *baseSubject) TotalScore() float64 {
	var total float64
	for _, cat := range s.categories {
		total += s.grades[cat.Name]
	}
	return total
}

func (s *baseSubject) Grades() map[string]float64 {
	return copyScores(s.grades)
}

func (s *baseSubject) MaxPoints() map[string]float64 {
	return copyScores(s.maxPoints)
}

func (s *baseSubject) categoryNames() []string {
	names := make([]string, 0, len(s.categories))
	for _, cat := range s.categories {
		names = append(names, cat.Name)
	}
	return names
}

func copyScores(m map[string]float64) map[string]float64 {
	cp := make(map[string]float64, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
