package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/repositories"
	"github.com/yigit/studentregistry/internal/pkg/metrics"
)

// StatsService defines the interface for aggregate reporting
type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
	GetIntakeSummary(ctx context.Context) (map[string]*models.IntakeSummary, error)
}

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(studentRepo *repositories.StudentRepository) StatsService {
	return &statsServiceImpl{
		studentRepo: studentRepo,
	}
}

// GetStats runs the four count queries concurrently. Any failure fails the call.
func (s *statsServiceImpl) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Total, err = s.studentRepo.CountStudents(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.Active, err = s.studentRepo.CountStudents(gctx, models.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		stats.Inactive, err = s.studentRepo.CountStudents(gctx, models.StatusInactive)
		return err
	})
	g.Go(func() (err error) {
		stats.Courses, err = s.studentRepo.CountByCourse(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.StudentsTotal.Set(float64(stats.Total))
	return stats, nil
}

// GetIntakeSummary loads every student and tallies them per intake
func (s *statsServiceImpl) GetIntakeSummary(ctx context.Context) (map[string]*models.IntakeSummary, error) {
	students, err := s.studentRepo.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	return BuildIntakeSummary(students), nil
}

// BuildIntakeSummary groups students by intake in a single pass. Students
// without an intake are counted under models.UnknownIntake.
func BuildIntakeSummary(students []*models.Student) map[string]*models.IntakeSummary {
	summary := make(map[string]*models.IntakeSummary)

	for _, st := range students {
		intake := models.UnknownIntake
		if st.Intake != nil && strings.TrimSpace(*st.Intake) != "" {
			intake = *st.Intake
		}

		bucket, ok := summary[intake]
		if !ok {
			bucket = models.NewIntakeSummary()
			summary[intake] = bucket
		}
		bucket.Total++

		if st.CGPA != nil {
			cgpa := *st.CGPA
			if band := cgpaBand(cgpa); band != "" {
				bucket.CGPARanges[band]++
			}
			if cgpa >= 3.5 && cgpa <= 4.0 {
				bucket.DeanList++
			}
		}

		gender := ""
		if st.Gender != nil {
			gender = *st.Gender
		}
		if levels, tracked := bucket.LevelGender[gender]; tracked {
			bucket.Gender[gender]++
			if st.Level != nil {
				if _, ok := levels[*st.Level]; ok {
					levels[*st.Level]++
				}
			}
		}

		if st.Nationality != nil && *st.Nationality != "" {
			bucket.Nationality[*st.Nationality]++
		}
	}

	return summary
}

// cgpaBand returns the band label for cgpa, or "" outside [2.0, 4.0]
func cgpaBand(cgpa float64) string {
	switch {
	case cgpa >= 3.5 && cgpa <= 4.0:
		return models.BandThreeHalf
	case cgpa >= 3.0 && cgpa < 3.5:
		return models.BandThree
	case cgpa >= 2.5 && cgpa < 3.0:
		return models.BandTwoHalf
	case cgpa >= 2.0 && cgpa < 2.5:
		return models.BandTwo
	default:
		return ""
	}
}
