package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/studentregistry/internal/app/models"
	appRepos "github.com/yigit/studentregistry/internal/app/repositories"
)

func strPtr(s string) *string { return &s }

// sampleStudents are inserted into an empty store
func sampleStudents() []*appModels.Student {
	return []*appModels.Student{
		{
			StudentID: "STU001", FirstName: "John", LastName: "Doe", Email: "john.doe@email.com",
			Phone: strPtr("+1234567890"), DateOfBirth: strPtr("2000-05-15"), Gender: strPtr("Male"),
			Address: strPtr("123 Main St, City"), Course: strPtr("Computer Science"),
		},
		{
			StudentID: "STU002", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com",
			Phone: strPtr("+1234567891"), DateOfBirth: strPtr("1999-08-22"), Gender: strPtr("Female"),
			Address: strPtr("456 Oak Ave, City"), Course: strPtr("Mathematics"),
		},
		{
			StudentID: "STU003", FirstName: "Mike", LastName: "Johnson", Email: "mike.johnson@email.com",
			Phone: strPtr("+1234567892"), DateOfBirth: strPtr("2001-03-10"), Gender: strPtr("Male"),
			Address: strPtr("789 Pine Rd, City"), Course: strPtr("Physics"),
		},
	}
}

// CreateDefaultData inserts the sample students when the students table is
// empty. It returns how many were inserted. Individual insert failures are
// logged and joined into the returned error without stopping the rest.
func CreateDefaultData(ctx context.Context, studentRepo *appRepos.StudentRepository, lgr zerolog.Logger) (int, error) {
	count, err := studentRepo.CountStudents(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("checking existing students: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("students", count).Msg("Store not empty, skipping sample data")
		return 0, nil
	}

	var (
		inserted int
		finalErr error
	)
	for _, student := range sampleStudents() {
		student.Status = appModels.StatusActive
		added, err := studentRepo.InsertIfAbsent(ctx, student)
		if err != nil {
			lgr.Error().Err(err).Str("studentID", student.StudentID).Msg("Error inserting sample student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if added {
			inserted++
		}
	}

	lgr.Info().Int("inserted", inserted).Msg("Sample data inserted")
	return inserted, finalErr
}
