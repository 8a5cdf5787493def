package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Calculus", CleanString("  Calculus\t"))
	assert.Equal(t, "calculus", CleanString("  Calculus\t", true))
	assert.Equal(t, "", CleanString("   "))
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"Quiz", "Midterm", "Lab.work", "Home work"}

	tests := []struct {
		name      string
		s         string
		wantMatch string
		wantOk    bool
	}{
		{name: "exact, other case", s: "quiz", wantMatch: "Quiz", wantOk: true},
		{name: "typo", s: "Midtrem", wantMatch: "Midterm", wantOk: true},
		{name: "missing space", s: "Homework", wantMatch: "Home work", wantOk: true},
		{name: "blank", s: "  ", wantOk: false},
		{name: "unrelated", s: "xyz", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := ClosestMatch(tt.s, candidates)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.wantMatch, match)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 0, want: "0.0"},
		{score: 45, want: "45.0"},
		{score: 12.5, want: "12.5"},
		{score: 100, want: "100.0"},
		{score: math.Inf(1), want: "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatScore(tt.score))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "score", Error: "too high"})
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "", err.Error())
	assert.False(t, IsValidationError(assert.AnError))
}
