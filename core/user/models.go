package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/subject"
)

// Roles
const (
	RoleAdviser Role = iota + 1
	RoleStudent
)

var (
	// AllRoles lists the role tags accepted at login.
	AllRoles = []string{RoleAdviser.String(), RoleStudent.String()}

	// errors
	ErrInvalidRole = errors.New("invalid user type")
)

// Role tags a User with the kind of entity it carries.
type Role int

func (r Role) String() string {
	switch r {
	case RoleAdviser:
		return "Adviser"
	case RoleStudent:
		return "Student"
	default:
		return "Unknown"
	}
}

// ParseRole parses a role tag, case-insensitively.
func ParseRole(tag string) (Role, error) {
	switch core.CleanString(tag, true /* lower */) {
	case strings.ToLower(RoleAdviser.String()):
		return RoleAdviser, nil
	case strings.ToLower(RoleStudent.String()):
		return RoleStudent, nil
	default:
		return 0, errors.Wrapf(ErrInvalidRole, "%q", tag)
	}
}

// User is either an Adviser or a Student; exactly one of them is set, according to Role.
type User struct {
	Role    Role
	Adviser *Adviser
	Student *Student
}

func AdviserUser(a *Adviser) User { return User{Role: RoleAdviser, Adviser: a} }
func StudentUser(s *Student) User { return User{Role: RoleStudent, Student: s} }

func (u User) Name() string {
	switch u.Role {
	case RoleAdviser:
		return u.Adviser.Name()
	case RoleStudent:
		return u.Student.Name()
	default:
		return ""
	}
}

func (u User) Authenticate(name, password string) bool {
	switch u.Role {
	case RoleAdviser:
		return u.Adviser != nil && u.Adviser.Authenticate(name, password)
	case RoleStudent:
		return u.Student != nil && u.Student.Authenticate(name, password)
	default:
		return false
	}
}

func (u User) IsAdviser() bool { return u.Role == RoleAdviser }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// Observer reacts to grade changes of the students it is registered on.
type Observer interface {
	Update(s *Student)
}

// ObserverFunc adapts a function to Observer. Funcs never compare equal, so RemoveObserver cannot unregister one.
type ObserverFunc func(s *Student)

func (f ObserverFunc) Update(s *Student) { f(s) }

// LoginRequest carries the credentials typed at login.
// Name, Password and AdviserName are compared as-is.
type LoginRequest struct {
	Role        string `json:"role" validate:"required,role"`
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	AdviserName string `json:"adviser_name"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Role = core.CleanString(lr.Role)
	return validate.Struct(lr)
}

// NewGrade contains information needed to add a grade to one of a student's subjects.
type NewGrade struct {
	Subject  string  `json:"subject" validate:"required,notblank"`
	Category string  `json:"category" validate:"required,notblank"`
	Score    float64 `json:"score" validate:"gte=0"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.Category = core.CleanString(ng.Category)
	return validate.Struct(ng)
}

// SubjectSummary is a read-only snapshot of a subject.
type SubjectSummary struct {
	Name       string             `json:"name"`
	TotalScore float64            `json:"total_score"`
	Bonus      float64            `json:"bonus"`
	Categories []subject.Category `json:"categories"`
	Grades     map[string]float64 `json:"grades"`
}

func NewSubjectSummary(sub subject.Subject) SubjectSummary {
	return SubjectSummary{
		Name:       sub.Name(),
		TotalScore: sub.TotalScore(),
		Bonus:      subject.Bonus(sub),
		Categories: sub.Categories(),
		Grades:     sub.Grades(),
	}
}
