package user

import (
	"fmt"
	"strings"

	"github.com/trezcool/saynoretake/core"
)

// StudentLister is the part of the Directory an Adviser reads its reports from.
type StudentLister interface {
	AllStudents() []*Student
}

type Adviser struct {
	name     string
	password string
	students StudentLister
	logger   core.Logger

	report    string
	refreshed bool
}

var _ Observer = (*Adviser)(nil)

func NewAdviser(name, password string, students StudentLister, logger core.Logger) *Adviser {
	return &Adviser{
		name:     name,
		password: password,
		students: students,
		logger:   logger,
	}
}

func (a *Adviser) Name() string { return a.name }

func (a *Adviser) Authenticate(name, password string) bool {
	return a.name == name && a.password == password
}

// Update refreshes the aggregate report of all students, whichever student triggered it.
func (a *Adviser) Update(s *Student) {
	a.logger.Info(fmt.Sprintf("Adviser %s received notification: Student %s added a grade.", a.name, s.Name()))
	a.refresh()
}

// Report returns the last refreshed aggregate report.
func (a *Adviser) Report() string {
	if !a.refreshed {
		a.refresh()
	}
	return a.report
}

// GenerateReport builds a fresh aggregate report without caching it.
func (a *Adviser) GenerateReport() string {
	var b strings.Builder
	for _, s := range a.students.AllStudents() {
		b.WriteString(s.GenerateReport())
		b.WriteString("\n\n")
	}
	return b.String()
}

func (a *Adviser) refresh() {
	a.report = a.GenerateReport()
	a.refreshed = true
}

// selfCheck reports whether the adviser's own credentials match.
func (a *Adviser) selfCheck() bool {
	return a.Authenticate(a.name, a.password)
}
