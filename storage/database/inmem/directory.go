package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core/user"
)

type (
	// Directory keeps the session's students in registration order, and their adviser.
	Directory struct {
		students *studentTable
		adviser  *adviserTable
	}

	studentTable struct {
		mutex sync.RWMutex
		order []string
		table map[string]*user.Student
	}

	adviserTable struct {
		mutex   sync.RWMutex
		adviser *user.Adviser
	}
)

var _ user.Directory = (*Directory)(nil)

func NewDirectory() *Directory {
	return &Directory{
		students: &studentTable{table: make(map[string]*user.Student)},
		adviser:  new(adviserTable),
	}
}

func (dir *Directory) AllStudents() []*user.Student {
	dir.students.mutex.RLock()
	defer dir.students.mutex.RUnlock()

	students := make([]*user.Student, 0, len(dir.students.order))
	for _, name := range dir.students.order {
		students = append(students, dir.students.table[name])
	}
	return students
}

// AddStudent keeps the position of a student registered under the same name.
func (dir *Directory) AddStudent(s *user.Student) {
	dir.students.mutex.Lock()
	defer dir.students.mutex.Unlock()

	if _, ok := dir.students.table[s.Name()]; !ok {
		dir.students.order = append(dir.students.order, s.Name())
	}
	dir.students.table[s.Name()] = s
}

func (dir *Directory) GetStudent(name string) (*user.Student, error) {
	dir.students.mutex.RLock()
	defer dir.students.mutex.RUnlock()

	if s, ok := dir.students.table[name]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(user.ErrNotFound, "student %q", name)
}

func (dir *Directory) SetAdviser(a *user.Adviser) {
	dir.adviser.mutex.Lock()
	defer dir.adviser.mutex.Unlock()
	dir.adviser.adviser = a
}

func (dir *Directory) GetAdviser() (*user.Adviser, error) {
	dir.adviser.mutex.RLock()
	defer dir.adviser.mutex.RUnlock()

	if dir.adviser.adviser == nil {
		return nil, errors.Wrap(user.ErrNotFound, "adviser")
	}
	return dir.adviser.adviser, nil
}
