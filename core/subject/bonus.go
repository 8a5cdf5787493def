package subject

// bonusSubject decorates another Subject with a fixed bonus on its total score.
// Decorations chain: the bonus of every layer adds up.
type bonusSubject struct {
	Subject
	bonus float64
}

var _ Subject = (*bonusSubject)(nil)

// WithBonus wraps `sub`; grades and caps stay owned by the wrapped subject.
func WithBonus(sub Subject, bonus float64) Subject {
	return &bonusSubject{Subject: sub, bonus: bonus}
}

func (s *bonusSubject) TotalScore() float64 {
	return s.Subject.TotalScore() + s.bonus
}

// Bonus returns the total bonus of the decoration chain starting at `sub`.
func Bonus(sub Subject) float64 {
	var total float64
	for {
		bs, ok := sub.(*bonusSubject)
		if !ok {
			return total
		}
		total += bs.bonus
		sub = bs.Subject
	}
}
