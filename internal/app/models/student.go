package models

// Student status values
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Student defines the student model based on the 'students' table.
// Optional columns are pointers and serialize as null when absent.
type Student struct {
	ID             int64    `json:"id" db:"id" example:"1"`
	StudentID      string   `json:"student_id" db:"student_id" validate:"required" example:"STU001"`
	FirstName      string   `json:"first_name" db:"first_name" validate:"required" example:"John"`
	LastName       string   `json:"last_name" db:"last_name" validate:"required" example:"Doe"`
	Email          string   `json:"email" db:"email" validate:"required" example:"john.doe@email.com"`
	Phone          *string  `json:"phone" db:"phone" example:"+1234567890"`
	DateOfBirth    *string  `json:"date_of_birth" db:"date_of_birth" example:"2000-05-15"`
	Gender         *string  `json:"gender" db:"gender" example:"Male"`
	Address        *string  `json:"address" db:"address" example:"123 Main St, City"`
	Course         *string  `json:"course" db:"course" example:"Computer Science"`
	CGPA           *float64 `json:"cgpa" db:"cgpa" example:"3.6"`
	Level          *string  `json:"level" db:"level" example:"P1"`
	Intake         *string  `json:"intake" db:"intake" example:"Fall24"`
	Nationality    *string  `json:"nationality" db:"nationality" example:"Kenyan"`
	EnrollmentDate *string  `json:"enrollment_date" db:"enrollment_date" example:"2024-09-01"`
	Status         string   `json:"status" db:"status" example:"Active"`
	CreatedAt      string   `json:"created_at" db:"created_at" example:"2024-09-01 10:00:00"`
	UpdatedAt      string   `json:"updated_at" db:"updated_at" example:"2024-09-01 10:00:00"`
}

// CourseCount is one row of the per-course tally
type CourseCount struct {
	Course *string `json:"course"`
	Count  int64   `json:"count"`
}

// Stats holds the global record counts
type Stats struct {
	Total    int64         `json:"total"`
	Active   int64         `json:"active"`
	Inactive int64         `json:"inactive"`
	Courses  []CourseCount `json:"courses"`
}
