package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/db"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
	"github.com/yigit/studentregistry/internal/pkg/dberrors"
	"github.com/yigit/studentregistry/internal/pkg/logger"
)

const studentsTable = "students"

// studentColumns is the select list shared by every read; scanStudent follows its order
var studentColumns = []string{
	"id", "student_id", "first_name", "last_name", "email", "phone",
	"date_of_birth", "gender", "address", "course", "cgpa", "level",
	"intake", "nationality", "enrollment_date", "status", "created_at", "updated_at",
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.Database) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: database.Builder(),
	}
}

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	var status, createdAt, updatedAt sql.NullString
	err := row.Scan(
		&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DateOfBirth, &s.Gender, &s.Address, &s.Course, &s.CGPA, &s.Level,
		&s.Intake, &s.Nationality, &s.EnrollmentDate, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = status.String
	s.CreatedAt = createdAt.String
	s.UpdatedAt = updatedAt.String
	return s, nil
}

// insertColumns returns the columns and values for an insert. enrollment_date
// is left out when unset so the column default (today) applies.
func insertColumns(s *models.Student) ([]string, []interface{}) {
	columns := []string{
		"student_id", "first_name", "last_name", "email", "phone", "date_of_birth",
		"gender", "address", "course", "cgpa", "level", "intake", "nationality", "status",
	}
	values := []interface{}{
		s.StudentID, s.FirstName, s.LastName, s.Email, s.Phone, s.DateOfBirth,
		s.Gender, s.Address, s.Course, s.CGPA, s.Level, s.Intake, s.Nationality, s.Status,
	}
	if s.EnrollmentDate != nil {
		columns = append(columns, "enrollment_date")
		values = append(values, s.EnrollmentDate)
	}
	return columns, values
}

// CreateStudent inserts a student and returns its new internal id
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	columns, values := insertColumns(student)
	query, args, err := r.sb.Insert(studentsTable).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("studentID", student.StudentID).Str("email", student.Email).Msg("Attempted to create student with duplicate student ID or email")
			return 0, apperrors.NewConflictError(err.Error())
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// InsertIfAbsent inserts a student unless it collides with an existing
// student_id or email, in which case nothing is written and false is returned.
func (r *StudentRepository) InsertIfAbsent(ctx context.Context, student *models.Student) (bool, error) {
	columns, values := insertColumns(student)
	query, args, err := r.sb.Insert(studentsTable).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert-if-absent student SQL")
		return false, fmt.Errorf("failed to build insert student query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing insert-if-absent student query")
		return false, fmt.Errorf("error inserting student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// GetStudentByID retrieves a student by internal id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From(studentsTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetAllStudents retrieves every student, most recently created first
func (r *StudentRepository) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, r.sb.Select(studentColumns...).From(studentsTable))
}

// SearchStudents returns students whose first name, last name, email,
// student_id or course contains term (case-sensitive)
func (r *StudentRepository) SearchStudents(ctx context.Context, term string) ([]*models.Student, error) {
	d := r.db.Dialect
	builder := r.sb.Select(studentColumns...).
		From(studentsTable).
		Where(squirrel.Or{
			d.Contains("first_name", term),
			d.Contains("last_name", term),
			d.Contains("email", term),
			d.Contains("student_id", term),
			d.Contains("course", term),
		})
	return r.queryStudents(ctx, builder)
}

func (r *StudentRepository) queryStudents(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Student, error) {
	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateStudent overwrites the attributes of the student with student.ID
// and stamps updated_at. enrollment_date is kept when student has none.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	values := map[string]interface{}{
		"student_id":    student.StudentID,
		"first_name":    student.FirstName,
		"last_name":     student.LastName,
		"email":         student.Email,
		"phone":         student.Phone,
		"date_of_birth": student.DateOfBirth,
		"gender":        student.Gender,
		"address":       student.Address,
		"course":        student.Course,
		"cgpa":          student.CGPA,
		"level":         student.Level,
		"intake":        student.Intake,
		"nationality":   student.Nationality,
		"status":        student.Status,
		"updated_at":    r.db.Dialect.Now(),
	}
	if student.EnrollmentDate != nil {
		values["enrollment_date"] = student.EnrollmentDate
	}

	query, args, err := r.sb.Update(studentsTable).
		SetMap(values).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError(err.Error())
		}
		logger.Error().Err(err).Int64("id", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent deletes a student by internal id
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(studentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// CountStudents counts all students, or only those with the given status when
// status is non-empty
func (r *StudentRepository) CountStudents(ctx context.Context, status string) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From(studentsTable)
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("status", status).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountByCourse tallies students per course value, largest first
func (r *StudentRepository) CountByCourse(ctx context.Context) ([]models.CourseCount, error) {
	query, args, err := r.sb.Select("course", "COUNT(*) AS total").
		From(studentsTable).
		GroupBy("course").
		OrderBy("total DESC", "course ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course count query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course count query")
		return nil, fmt.Errorf("error counting courses: %w", err)
	}
	defer rows.Close()

	courses := []models.CourseCount{}
	for rows.Next() {
		var cc models.CourseCount
		if err := rows.Scan(&cc.Course, &cc.Count); err != nil {
			return nil, fmt.Errorf("error scanning course count row: %w", err)
		}
		courses = append(courses, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course count rows: %w", err)
	}

	return courses, nil
}
