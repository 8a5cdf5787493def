package user

import (
	"net/mail"

	"github.com/trezcool/saynoretake/core"
)

var adviserAddress = mail.Address{Name: "Nursat", Address: "nursat@test.kz"}

// emailServiceMock records messages synchronously.
type emailServiceMock struct {
	sent []*core.EmailMessage
}

func (svc *emailServiceMock) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

// testDirectory is a minimal Directory for the package's tests.
type testDirectory struct {
	students []*Student
	adviser  *Adviser
}

var _ Directory = (*testDirectory)(nil)

func (d *testDirectory) AllStudents() []*Student {
	students := make([]*Student, len(d.students))
	copy(students, d.students)
	return students
}

func (d *testDirectory) AddStudent(s *Student) {
	for i, st := range d.students {
		if st.Name() == s.Name() {
			d.students[i] = s
			return
		}
	}
	d.students = append(d.students, s)
}

func (d *testDirectory) GetStudent(name string) (*Student, error) {
	for _, s := range d.students {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (d *testDirectory) SetAdviser(a *Adviser) { d.adviser = a }

func (d *testDirectory) GetAdviser() (*Adviser, error) {
	if d.adviser == nil {
		return nil, ErrNotFound
	}
	return d.adviser, nil
}
