package user

import (
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAdviserNameRequired  = errors.New("adviser name is required for student authentication")
)

// AccessGate checks, before letting a student in, that the adviser they claim is really theirs.
type AccessGate struct {
	user        User
	adviserName string
	adviser     *Adviser
}

func NewAccessGate(usr User, adviserName string, adviser *Adviser) AccessGate {
	return AccessGate{user: usr, adviserName: adviserName, adviser: adviser}
}

func (g AccessGate) Authenticate(name, password string) bool {
	switch g.user.Role {
	case RoleStudent:
		if !g.user.Authenticate(name, password) {
			return false
		}
		return g.adviserName == g.user.Student.AdviserName() && g.adviser != nil && g.adviser.selfCheck()
	case RoleAdviser:
		return g.user.Authenticate(name, password)
	default:
		return false
	}
}

// Resolve looks up the `roleTag` user named `name` in `dir` and checks its credentials.
// It never creates users.
func Resolve(dir Directory, roleTag, name, password string) (User, error) {
	role, err := ParseRole(roleTag)
	if err != nil {
		return User{}, err
	}

	var usr User
	switch role {
	case RoleAdviser:
		adviser, err := dir.GetAdviser()
		if err != nil {
			return User{}, err
		}
		usr = AdviserUser(adviser)
	case RoleStudent:
		student, err := dir.GetStudent(name)
		if err != nil {
			return User{}, err
		}
		usr = StudentUser(student)
	}

	if !usr.Authenticate(name, password) {
		return User{}, ErrNotFound
	}
	return usr, nil
}
