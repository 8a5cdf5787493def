package user

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/strategy"
)

type (
	// Directory is the registry of the session's students and their adviser.
	Directory interface {
		StudentLister

		// AddStudent registers `s` under its name, replacing any student with the same name.
		AddStudent(s *Student)
		GetStudent(name string) (*Student, error)
		SetAdviser(a *Adviser)
		GetAdviser() (*Adviser, error)
	}

	// Service is what presentation layers call; it lets one action at a time reach the domain.
	Service struct {
		mu     sync.Mutex
		dir    Directory
		logger core.Logger
	}
)

func NewService(dir Directory, logger core.Logger) *Service {
	return &Service{dir: dir, logger: logger}
}

// Login resolves the user behind `req`; students also have to name their adviser.
// `req` is expected to be validated already.
func (svc *Service) Login(req LoginRequest) (User, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	usr, err := Resolve(svc.dir, req.Role, req.Name, req.Password)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, err
	}

	var adviser *Adviser
	if usr.IsStudent() {
		if req.AdviserName == "" {
			return User{}, ErrAdviserNameRequired
		}
		adviser, err = svc.dir.GetAdviser()
		if err != nil && errors.Cause(err) != ErrNotFound {
			return User{}, errors.Wrap(err, "getting adviser")
		}
	}
	if !NewAccessGate(usr, req.AdviserName, adviser).Authenticate(req.Name, req.Password) {
		return User{}, ErrAuthenticationFailed
	}

	svc.logger.Info(fmt.Sprintf("%s %s logged in", usr.Role, usr.Name()), usr)
	return usr, nil
}

// AddGrade adds a grade to one of the student's subjects.
// Domain rejections are logged and returned; they never alter any state.
func (svc *Service) AddGrade(studentName string, ng NewGrade) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	student, err := svc.dir.GetStudent(studentName)
	if err != nil {
		return err
	}
	usr := StudentUser(student)

	if err = student.AddGrade(ng.Subject, ng.Category, ng.Score); err != nil {
		svc.logger.Warn(fmt.Sprintf("grade rejected: %v", err), usr)
		return err
	}
	svc.logger.Info(fmt.Sprintf("grade added: %s / %s +%s", ng.Subject, ng.Category, core.FormatScore(ng.Score)), usr)
	return nil
}

func (svc *Service) StudentReport(name string) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	student, err := svc.dir.GetStudent(name)
	if err != nil {
		return "", err
	}
	return student.GenerateReport(), nil
}

func (svc *Service) Subjects(name string) ([]SubjectSummary, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	student, err := svc.dir.GetStudent(name)
	if err != nil {
		return nil, err
	}
	subs := student.Subjects()
	summaries := make([]SubjectSummary, 0, len(subs))
	for _, sub := range subs {
		summaries = append(summaries, NewSubjectSummary(sub))
	}
	return summaries, nil
}

// Assess runs the strategy named `strategyName` against the student's subjects.
func (svc *Service) Assess(name, strategyName string) (string, error) {
	strat, err := strategy.Parse(strategyName)
	if err != nil {
		return "", err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	student, err := svc.dir.GetStudent(name)
	if err != nil {
		return "", err
	}
	return student.ExecuteStrategy(strat), nil
}

// AdviserReport returns the adviser's aggregate report of all students.
func (svc *Service) AdviserReport() (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	adviser, err := svc.dir.GetAdviser()
	if err != nil {
		return "", err
	}
	return adviser.Report(), nil
}
