package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/repositories"
	"github.com/yigit/studentregistry/internal/pkg/helpers"
	"github.com/yigit/studentregistry/internal/pkg/validation"
)

// StudentService defines the interface for student record operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	SearchStudents(ctx context.Context, term string) ([]*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

// normalizeStudent applies the write defaults: blank optional fields become
// NULL and a missing status becomes Active.
func normalizeStudent(s *models.Student) {
	s.Phone = helpers.NullIfBlank(s.Phone)
	s.DateOfBirth = helpers.NullIfBlank(s.DateOfBirth)
	s.Gender = helpers.NullIfBlank(s.Gender)
	s.Address = helpers.NullIfBlank(s.Address)
	s.Course = helpers.NullIfBlank(s.Course)
	s.Level = helpers.NullIfBlank(s.Level)
	s.Intake = helpers.NullIfBlank(s.Intake)
	s.Nationality = helpers.NullIfBlank(s.Nationality)
	s.EnrollmentDate = helpers.NullIfBlank(s.EnrollmentDate)

	s.Status = strings.TrimSpace(s.Status)
	if s.Status == "" {
		s.Status = models.StatusActive
	}
}

// ListStudents returns every student, newest first
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAllStudents(ctx)
}

// GetStudent returns the student with the given internal id
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

// CreateStudent stores a new student and returns its internal id
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if student == nil {
		return 0, fmt.Errorf("student is nil")
	}
	if err := validation.Struct(student); err != nil {
		return 0, err
	}
	normalizeStudent(student)

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return 0, err
	}
	student.ID = id
	return id, nil
}

// UpdateStudent overwrites the student identified by student.ID
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return fmt.Errorf("student is nil")
	}
	if err := validation.Struct(student); err != nil {
		return err
	}
	normalizeStudent(student)

	return s.studentRepo.UpdateStudent(ctx, student)
}

// DeleteStudent removes the student with the given internal id
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.DeleteStudent(ctx, id)
}

// SearchStudents returns students matching term. The term is used as given.
func (s *studentServiceImpl) SearchStudents(ctx context.Context, term string) ([]*models.Student, error) {
	return s.studentRepo.SearchStudents(ctx, term)
}
