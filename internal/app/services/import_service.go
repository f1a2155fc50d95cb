package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/repositories"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
	"github.com/yigit/studentregistry/internal/pkg/filestorage"
	"github.com/yigit/studentregistry/internal/pkg/helpers"
	"github.com/yigit/studentregistry/internal/pkg/logger"
	"github.com/yigit/studentregistry/internal/pkg/metrics"
	"github.com/yigit/studentregistry/internal/pkg/validation"
)

// ImportOutcome is the fate of a single CSV row
type ImportOutcome string

const (
	OutcomeInserted          ImportOutcome = "inserted"
	OutcomeSkippedDuplicate  ImportOutcome = "skipped-duplicate"
	OutcomeRejectedMalformed ImportOutcome = "rejected-malformed"
)

// ImportRowResult records what happened to one data row. Line is the 1-based
// line number in the source file.
type ImportRowResult struct {
	Line      int
	StudentID string
	Outcome   ImportOutcome
	Reason    string
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Inserted int
	Skipped  int
	Rejected int
	Rows     []ImportRowResult
}

// ImportService defines the interface for bulk CSV imports
type ImportService interface {
	// ImportCSV reads a CSV document with a header row and inserts each row
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
	// ImportUpload stages an uploaded file, imports it and removes the staged copy
	ImportUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*ImportResult, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	studentRepo *repositories.StudentRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewImportService creates a new import service instance
func NewImportService(studentRepo *repositories.StudentRepository, storage filestorage.FileStorage, lgr zerolog.Logger) ImportService {
	return &importServiceImpl{
		studentRepo: studentRepo,
		storage:     storage,
		logger:      logger.WithComponent(lgr, "import"),
	}
}

// importRow is one parsed CSV row. Header names match the Student JSON names.
type importRow struct {
	line   int
	fields map[string]string
}

// importCandidate is validated before insert
type importCandidate struct {
	StudentID string `json:"student_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

// ImportUpload implements ImportService
func (s *importServiceImpl) ImportUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*ImportResult, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}

	path, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	defer func() {
		if err := s.storage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove staged upload")
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening staged upload: %w", err)
	}
	defer file.Close()

	return s.ImportCSV(ctx, file)
}

// ImportCSV implements ImportService. The whole document is parsed before
// anything is written, so a syntax error imports nothing.
func (s *importServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Rows: make([]ImportRowResult, 0, len(rows))}
	for _, row := range rows {
		rowResult, err := s.importRow(ctx, row)
		if err != nil {
			s.logger.Error().Err(err).Int("line", row.line).Int("inserted", result.Inserted).Msg("Bulk import aborted")
			return nil, err
		}

		switch rowResult.Outcome {
		case OutcomeInserted:
			result.Inserted++
		case OutcomeSkippedDuplicate:
			result.Skipped++
		case OutcomeRejectedMalformed:
			result.Rejected++
		}
		metrics.RecordImportRow(string(rowResult.Outcome))
		result.Rows = append(result.Rows, rowResult)
	}

	s.logger.Info().
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Int("rejected", result.Rejected).
		Msg("Bulk import complete")
	return result, nil
}

func (s *importServiceImpl) importRow(ctx context.Context, row importRow) (ImportRowResult, error) {
	student := row.toStudent()
	rowResult := ImportRowResult{Line: row.line, StudentID: student.StudentID}

	candidate := importCandidate{
		StudentID: student.StudentID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Email:     student.Email,
	}
	if err := validation.Struct(candidate); err != nil {
		rowResult.Outcome = OutcomeRejectedMalformed
		rowResult.Reason = err.Error()
		return rowResult, nil
	}

	inserted, err := s.studentRepo.InsertIfAbsent(ctx, student)
	if err != nil {
		return rowResult, fmt.Errorf("importing line %d: %w", row.line, err)
	}
	if inserted {
		rowResult.Outcome = OutcomeInserted
	} else {
		rowResult.Outcome = OutcomeSkippedDuplicate
		rowResult.Reason = "student_id or email already exists"
	}
	return rowResult, nil
}

func (row importRow) toStudent() *models.Student {
	opt := func(name string) *string {
		return helpers.StringOrNil(row.fields[name])
	}

	student := &models.Student{
		StudentID:      strings.TrimSpace(row.fields["student_id"]),
		FirstName:      strings.TrimSpace(row.fields["first_name"]),
		LastName:       strings.TrimSpace(row.fields["last_name"]),
		Email:          strings.TrimSpace(row.fields["email"]),
		Phone:          opt("phone"),
		DateOfBirth:    opt("date_of_birth"),
		Gender:         opt("gender"),
		Address:        opt("address"),
		Course:         opt("course"),
		Level:          opt("level"),
		Intake:         opt("intake"),
		Nationality:    opt("nationality"),
		EnrollmentDate: opt("enrollment_date"),
		Status:         strings.TrimSpace(row.fields["status"]),
	}
	if student.Status == "" {
		student.Status = models.StatusActive
	}
	if cgpa, err := strconv.ParseFloat(strings.TrimSpace(row.fields["cgpa"]), 64); err == nil {
		student.CGPA = &cgpa
	}
	return student
}

// parseCSV reads the header and every data row. Unknown headers are ignored;
// missing cells read as empty.
func parseCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrInvalidCSV)
	}
	if err != nil {
		return nil, invalidCSV(err)
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidCSV(err)
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) && name != "" {
				fields[name] = record[i]
			}
		}
		rows = append(rows, importRow{line: line, fields: fields})
	}
	return rows, nil
}

func invalidCSV(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, err)
}
