// Package strategy holds the swappable scoring algorithms applied to a student's subjects.
package strategy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/subject"
)

const (
	// scale every subject is scored on
	maxScore = 100.0

	passScore = 50.0

	scholarshipOnTrack = 60.0
	scholarshipAtRisk  = 30.0
	scholarshipTarget  = 70.0
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Gradebook is what a Strategy reads: an owner name and its subjects in display order.
type Gradebook interface {
	Name() string
	Subjects() []subject.Subject
}

// Strategy is a pure scoring algorithm producing a textual assessment.
type Strategy interface {
	Calculate(gb Gradebook) string
}

type (
	// Retake estimates the chance of retaking each subject.
	Retake struct{}

	// Scholarship tells how far each subject is from scholarship level.
	Scholarship struct{}
)

var (
	_ Strategy = Retake{}
	_ Strategy = Scholarship{}

	byName = map[string]Strategy{
		"retake":      Retake{},
		"scholarship": Scholarship{},
	}
)

// Parse returns the Strategy named `name` (case-insensitive).
func Parse(name string) (Strategy, error) {
	if s, ok := byName[core.CleanString(name, true /* lower */)]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// Names lists the accepted strategy names.
func Names() []string {
	return []string{"retake", "scholarship"}
}

func (Retake) Calculate(gb Gradebook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nRetake Probability for %s\n", gb.Name())

	for _, sub := range gb.Subjects() {
		total := sub.TotalScore()
		score := fmt.Sprintf("(Score: %s/%s)", core.FormatScore(total), core.FormatScore(maxScore))

		if total >= passScore {
			fmt.Fprintf(&b, "- %s: No need to retake %s\n", sub.Name(), score)
		} else {
			probability := (passScore - total) / maxScore * 100
			fmt.Fprintf(&b, "- %s: %.2f%% chance of retaking %s\n", sub.Name(), probability, score)
		}
	}
	return b.String()
}

func (Scholarship) Calculate(gb Gradebook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nScholarship Eligibility for %s\n", gb.Name())

	for _, sub := range gb.Subjects() {
		total := sub.TotalScore()
		fmt.Fprintf(&b, "- %s: %s\n", sub.Name(), core.FormatScore(total))

		switch {
		case total >= scholarshipOnTrack:
			b.WriteString("You are on track for a scholarship.\n")
		case total >= scholarshipAtRisk:
			fmt.Fprintf(&b, "You need to score at least %s in the final to secure the scholarship.\n",
				core.FormatScore(scholarshipTarget-total))
		default:
			b.WriteString("You need significant improvement to qualify for a scholarship.\n")
		}
	}
	return b.String()
}
