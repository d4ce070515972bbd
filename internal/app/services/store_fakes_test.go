package services

import (
	"context"
	"sync"
	"time"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
)

// memStore is an in-memory implementation of all four store interfaces with
// the same error semantics as the Postgres repositories.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	enrollments []*models.Enrollment
	grades      map[int64]*models.Grade
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
		grades:  make(map[int64]*models.Grade),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// seedUser inserts a user directly, bypassing uniqueness checks.
func (m *memStore) seedUser(role models.RoleType, email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{
		ID:        m.id(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		RoleType:  role,
		CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u
}

// seedCourse inserts a course directly.
func (m *memStore) seedCourse(code string, professorID int64) *models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Course{
		ID:          m.id(),
		Title:       "Course " + code,
		Code:        code,
		ProfessorID: professorID,
		CreatedAt:   time.Now(),
		Professor:   m.users[professorID],
	}
	m.courses[c.ID] = c
	return c
}

// UserStore

func (m *memStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) GetAll(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.RoleType != nil {
		u.RoleType = *patch.RoleType
	}
	return u, nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// courseStore adapts memStore to CourseStore: Create collides with
// UserStore's method set, so the course side lives on a wrapper.
type courseStore struct {
	m *memStore
}

func (s courseStore) Create(ctx context.Context, course *models.Course) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, c := range s.m.courses {
		if c.Code == course.Code {
			return apperrors.ErrCourseCodeExists
		}
	}
	course.ID = s.m.id()
	course.CreatedAt = time.Now()
	s.m.courses[course.ID] = course
	return nil
}

func (s courseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (s courseStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*models.Course, 0, len(s.m.courses))
	for _, c := range s.m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s courseStore) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if patch.Code != nil {
		for _, other := range s.m.courses {
			if other.ID != id && other.Code == *patch.Code {
				return nil, apperrors.ErrCourseCodeExists
			}
		}
		c.Code = *patch.Code
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	return c, nil
}

func (s courseStore) DeleteCascade(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for gid, g := range s.m.grades {
		if g.CourseID == id {
			delete(s.m.grades, gid)
		}
	}
	kept := s.m.enrollments[:0]
	for _, e := range s.m.enrollments {
		if e.CourseID != id {
			kept = append(kept, e)
		}
	}
	s.m.enrollments = kept
	delete(s.m.courses, id)
	return nil
}

// enrollmentStore adapts memStore to EnrollmentStore.
type enrollmentStore struct {
	m *memStore
}

func (s enrollmentStore) Add(ctx context.Context, courseID, studentID int64) (*models.Enrollment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, e := range s.m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			return nil, apperrors.ErrAlreadyEnrolled
		}
	}
	e := &models.Enrollment{
		ID:         s.m.id(),
		CourseID:   courseID,
		StudentID:  studentID,
		EnrolledAt: time.Now(),
	}
	s.m.enrollments = append(s.m.enrollments, e)
	return e, nil
}

func (s enrollmentStore) Remove(ctx context.Context, courseID, studentID int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, e := range s.m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			s.m.enrollments = append(s.m.enrollments[:i], s.m.enrollments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotEnrolled
}

func (s enrollmentStore) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, e := range s.m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (s enrollmentStore) ListStudentsByCourse(ctx context.Context, courseID int64) ([]*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var students []*models.User
	for _, e := range s.m.enrollments {
		if e.CourseID == courseID {
			students = append(students, s.m.users[e.StudentID])
		}
	}
	return students, nil
}

// gradeStore adapts memStore to GradeStore.
type gradeStore struct {
	m *memStore
}

func (s gradeStore) UpsertEnrolled(ctx context.Context, grade *models.Grade) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	enrolled := false
	for _, e := range s.m.enrollments {
		if e.CourseID == grade.CourseID && e.StudentID == grade.StudentID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return apperrors.ErrNotEnrolled
	}
	for _, g := range s.m.grades {
		if g.CourseID == grade.CourseID && g.StudentID == grade.StudentID {
			g.Value = grade.Value
			g.AssignedBy = grade.AssignedBy
			g.AssignedAt = time.Now()
			grade.ID = g.ID
			grade.AssignedAt = g.AssignedAt
			return nil
		}
	}
	grade.ID = s.m.id()
	grade.AssignedAt = time.Now()
	stored := *grade
	s.m.grades[grade.ID] = &stored
	return nil
}

func (s gradeStore) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	g, ok := s.m.grades[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	return g, nil
}

func (s gradeStore) list(filter func(*models.Grade) bool) []*models.Grade {
	var out []*models.Grade
	for _, g := range s.m.grades {
		if filter(g) {
			withRelations := *g
			withRelations.Student = s.m.users[g.StudentID]
			withRelations.Course = s.m.courses[g.CourseID]
			withRelations.Assigner = s.m.users[g.AssignedBy]
			out = append(out, &withRelations)
		}
	}
	return out
}

func (s gradeStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.list(func(g *models.Grade) bool { return g.StudentID == studentID }), nil
}

func (s gradeStore) ListByCourse(ctx context.Context, courseID int64, onlyStudentID *int64) ([]*models.Grade, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.list(func(g *models.Grade) bool {
		if g.CourseID != courseID {
			return false
		}
		return onlyStudentID == nil || g.StudentID == *onlyStudentID
	}), nil
}

func (s gradeStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.grades[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(s.m.grades, id)
	return nil
}
