package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/repositories"
	"github.com/yigit/studentregistry/internal/testutil"
)

func summaryStudent(intake, gender, level string, cgpa float64) *models.Student {
	s := &models.Student{CGPA: testutil.FloatPtr(cgpa)}
	if intake != "" {
		s.Intake = testutil.StrPtr(intake)
	}
	if gender != "" {
		s.Gender = testutil.StrPtr(gender)
	}
	if level != "" {
		s.Level = testutil.StrPtr(level)
	}
	return s
}

func TestBuildIntakeSummaryExample(t *testing.T) {
	summary := BuildIntakeSummary([]*models.Student{
		summaryStudent("Fall24", "Female", "P1", 3.6),
		summaryStudent("Fall24", "Male", "P2", 2.2),
	})

	require.Len(t, summary, 1)
	fall := summary["Fall24"]
	require.NotNil(t, fall)
	assert.Equal(t, 2, fall.Total)
	assert.Equal(t, 1, fall.CGPARanges[models.BandThreeHalf])
	assert.Equal(t, 1, fall.CGPARanges[models.BandTwo])
	assert.Equal(t, 0, fall.CGPARanges[models.BandTwoHalf])
	assert.Equal(t, 0, fall.CGPARanges[models.BandThree])
	assert.Equal(t, 1, fall.DeanList)
	assert.Equal(t, map[string]int{"Male": 1, "Female": 1}, fall.Gender)
	assert.Equal(t, 1, fall.LevelGender["Female"]["P1"])
	assert.Equal(t, 1, fall.LevelGender["Male"]["P2"])
	assert.Equal(t, 0, fall.LevelGender["Male"]["P3"])
}

func TestBuildIntakeSummaryEdges(t *testing.T) {
	nationality := summaryStudent("", "Other", "P4", 4.5)
	nationality.Nationality = testutil.StrPtr("Kenyan")
	blankIntake := summaryStudent(" ", "Male", "P9", 1.9)
	blankIntake.Nationality = testutil.StrPtr("Kenyan")
	noCGPA := &models.Student{Intake: testutil.StrPtr("Spring25"), Gender: testutil.StrPtr("Female")}

	summary := BuildIntakeSummary([]*models.Student{
		nationality,
		blankIntake,
		summaryStudent("Spring25", "Female", "P3", 3.5),
		summaryStudent("Spring25", "Male", "P1", 4.0),
		summaryStudent("Spring25", "Male", "P1", 2.5),
		summaryStudent("Spring25", "Female", "P2", 3.49),
		noCGPA,
	})

	unknown := summary[models.UnknownIntake]
	require.NotNil(t, unknown)
	assert.Equal(t, 2, unknown.Total)
	for band, n := range unknown.CGPARanges {
		assert.Zero(t, n, band)
	}
	assert.Zero(t, unknown.DeanList, "4.5 and 1.9 fall outside every band")
	assert.Equal(t, map[string]int{"Male": 1, "Female": 0}, unknown.Gender)
	assert.Equal(t, map[string]int{"Kenyan": 2}, unknown.Nationality)
	assert.Equal(t, map[string]int{"P1": 0, "P2": 0, "P3": 0}, unknown.LevelGender["Male"])
	assert.NotContains(t, unknown.LevelGender, "Other")

	spring := summary["Spring25"]
	require.NotNil(t, spring)
	assert.Equal(t, 5, spring.Total)
	assert.Equal(t, 2, spring.CGPARanges[models.BandThreeHalf])
	assert.Equal(t, 1, spring.CGPARanges[models.BandThree])
	assert.Equal(t, 1, spring.CGPARanges[models.BandTwoHalf])
	assert.Equal(t, 2, spring.DeanList)
	assert.Equal(t, 3, spring.Gender["Female"])
	assert.Equal(t, 2, spring.LevelGender["Male"]["P1"])
	assert.Empty(t, spring.Nationality)
}

func TestBuildIntakeSummaryEmpty(t *testing.T) {
	assert.Empty(t, BuildIntakeSummary(nil))
}

func TestGetStatsCountsOtherStatusesOnlyInTotal(t *testing.T) {
	database := testutil.NewDatabase(t)
	repo := repositories.NewStudentRepository(database)
	svc := NewStatsService(repo)
	ctx := context.Background()

	for i, st := range []struct{ course, status string }{
		{"Physics", models.StatusActive},
		{"Physics", models.StatusActive},
		{"Mathematics", models.StatusInactive},
		{"Physics", "Graduated"},
	} {
		id := string(rune('A' + i))
		_, err := repo.CreateStudent(ctx, &models.Student{
			StudentID: "STU" + id, FirstName: "F", LastName: "L",
			Email: id + "@example.com", Course: testutil.StrPtr(st.course), Status: st.status,
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 2, stats.Active)
	assert.EqualValues(t, 1, stats.Inactive)
	assert.Less(t, stats.Active+stats.Inactive, stats.Total)
	require.Len(t, stats.Courses, 2)
	assert.Equal(t, "Physics", *stats.Courses[0].Course)
	assert.EqualValues(t, 3, stats.Courses[0].Count)
}

func TestGetStatsFailsWhenStoreFails(t *testing.T) {
	database := testutil.NewDatabase(t)
	svc := NewStatsService(repositories.NewStudentRepository(database))
	require.NoError(t, database.Close())

	stats, err := svc.GetStats(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestGetIntakeSummaryFromStore(t *testing.T) {
	database := testutil.NewDatabase(t)
	repo := repositories.NewStudentRepository(database)
	svc := NewStatsService(repo)
	ctx := context.Background()

	_, err := repo.CreateStudent(ctx, &models.Student{
		StudentID: "STU1", FirstName: "F", LastName: "L", Email: "f@example.com",
		CGPA: testutil.FloatPtr(3.9), Intake: testutil.StrPtr("Fall24"), Status: models.StatusActive,
	})
	require.NoError(t, err)

	summary, err := svc.GetIntakeSummary(ctx)
	require.NoError(t, err)
	require.Contains(t, summary, "Fall24")
	assert.Equal(t, 1, summary["Fall24"].DeanList)
}
