package subject

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculus() Subject {
	return New("Calculus", Category{Name: "Quiz", Max: 40}, Category{Name: "Midterm", Max: 30})
}

func sumGrades(sub Subject) float64 {
	var sum float64
	for _, g := range sub.Grades() {
		sum += g
	}
	return sum
}

func TestNew(t *testing.T) {
	sub := newCalculus()

	assert.Equal(t, "Calculus", sub.Name())
	assert.Equal(t, map[string]float64{"Quiz": 0, "Midterm": 0}, sub.Grades())
	assert.Equal(t, map[string]float64{"Quiz": 40, "Midterm": 30}, sub.MaxPoints())
	assert.Equal(t, []Category{{Name: "Quiz", Max: 40}, {Name: "Midterm", Max: 30}}, sub.Categories())
	assert.Zero(t, sub.TotalScore())
}

func TestNew_duplicateCategory(t *testing.T) {
	sub := New("Turkish language", Category{Name: "Ders", Max: 30}, Category{Name: "Midterm", Max: 30}, Category{Name: "Ders", Max: 20})

	assert.Equal(t, []Category{{Name: "Ders", Max: 20}, {Name: "Midterm", Max: 30}}, sub.Categories())
	assert.Equal(t, 20.0, sub.MaxPoints()["Ders"])
}

func Test_baseSubject_AddGrade(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		amounts    []float64 // applied in order, only the last one is checked for wantErr
		wantErr    error
		wantGrades map[string]float64
	}{
		{name: "single grade", category: "Quiz", amounts: []float64{12.5}, wantGrades: map[string]float64{"Quiz": 12.5, "Midterm": 0}},
		{name: "accumulates", category: "Midterm", amounts: []float64{10, 10, 10}, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 30}},
		{name: "reaches cap exactly", category: "Quiz", amounts: []float64{40}, wantGrades: map[string]float64{"Quiz": 40, "Midterm": 0}},
		{name: "zero is accepted", category: "Quiz", amounts: []float64{0}, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 0}},
		{name: "exceeds cap at once", category: "Quiz", amounts: []float64{41}, wantErr: ErrCapExceeded, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 0}},
		{name: "exceeds cap after accumulation", category: "Midterm", amounts: []float64{25, 6}, wantErr: ErrCapExceeded, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 25}},
		{name: "unknown category", category: "Lab.work", amounts: []float64{5}, wantErr: ErrUnknownCategory, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 0}},
		{name: "category is case-sensitive", category: "quiz", amounts: []float64{5}, wantErr: ErrUnknownCategory, wantGrades: map[string]float64{"Quiz": 0, "Midterm": 0}},
		{name: "negative amount", category: "Quiz", amounts: []float64{10, -5}, wantErr: ErrInvalidAmount, wantGrades: map[string]float64{"Quiz": 10, "Midterm": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := newCalculus()
			var err error
			for _, amount := range tt.amounts {
				err = sub.AddGrade(tt.category, amount)
			}
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, errors.Cause(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantGrades, sub.Grades())
			assert.Equal(t, sumGrades(sub), sub.TotalScore())
		})
	}
}

func Test_baseSubject_AddGrade_hint(t *testing.T) {
	sub := newCalculus()

	err := sub.AddGrade("Midtrem", 5)
	assert.EqualError(t, err, `"Midtrem" (did you mean "Midterm"?): invalid category`)

	err = sub.AddGrade("Contest", 5)
	assert.EqualError(t, err, `"Contest": invalid category`)
}

func Test_baseSubject_snapshots(t *testing.T) {
	sub := newCalculus()

	grades := sub.Grades()
	grades["Quiz"] = 100
	maxPoints := sub.MaxPoints()
	maxPoints["Quiz"] = 1000
	cats := sub.Categories()
	cats[0].Max = 1000

	assert.Zero(t, sub.Grades()["Quiz"])
	assert.Equal(t, 40.0, sub.MaxPoints()["Quiz"])
	assert.Equal(t, 40.0, sub.Categories()[0].Max)
}

func TestWithBonus(t *testing.T) {
	tests := []struct {
		name   string
		grades map[string]float64
		bonus  float64
	}{
		{name: "no grades", bonus: 5},
		{name: "some grades", grades: map[string]float64{"Quiz": 12, "Midterm": 7.5}, bonus: 3},
		{name: "capped", grades: map[string]float64{"Quiz": 40, "Midterm": 30}, bonus: 5},
		{name: "zero bonus", grades: map[string]float64{"Quiz": 1}, bonus: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := newCalculus()
			base := newCalculus()
			decorated := WithBonus(base, tt.bonus)
			for cat, g := range tt.grades {
				require.NoError(t, plain.AddGrade(cat, g))
				require.NoError(t, decorated.AddGrade(cat, g))
			}

			assert.Equal(t, plain.TotalScore()+tt.bonus, decorated.TotalScore())
			assert.Equal(t, sumGrades(decorated)+tt.bonus, decorated.TotalScore())
			// grades live in the wrapped subject
			assert.Equal(t, base.Grades(), decorated.Grades())
			assert.Equal(t, base.MaxPoints(), decorated.MaxPoints())
			assert.Equal(t, "Calculus", decorated.Name())
			assert.Equal(t, tt.bonus, Bonus(decorated))
		})
	}
}

func TestWithBonus_chain(t *testing.T) {
	base := newCalculus()
	sub := WithBonus(WithBonus(base, 5), 3)
	require.NoError(t, sub.AddGrade("Quiz", 10))

	assert.Equal(t, 18.0, sub.TotalScore())
	assert.Equal(t, 8.0, Bonus(sub))
	assert.Equal(t, 10.0, base.TotalScore())
	assert.Zero(t, Bonus(base))
}

func TestWithBonus_rejectionForwarded(t *testing.T) {
	sub := WithBonus(newCalculus(), 5)
	require.NoError(t, sub.AddGrade("Quiz", 40))

	err := sub.AddGrade("Quiz", 1)
	assert.Equal(t, ErrCapExceeded, errors.Cause(err))
	assert.Equal(t, 45.0, sub.TotalScore())
}
