package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yigit/studentregistry/internal/app/models"
)

// OptionalFloat accepts a JSON number, a numeric string, an empty string or
// null. Anything that does not parse as a number is treated as absent.
type OptionalFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	f.Value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		f.Value = &v
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			f.Value = &parsed
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// StudentRequest is the body accepted by create and update. Update resends
// every field; absent optional fields are stored as null.
type StudentRequest struct {
	StudentID      string        `json:"student_id" example:"STU004"`
	FirstName      string        `json:"first_name" example:"Amina"`
	LastName       string        `json:"last_name" example:"Okello"`
	Email          string        `json:"email" example:"amina.okello@email.com"`
	Phone          *string       `json:"phone,omitempty" example:"+256700000000"`
	DateOfBirth    *string       `json:"date_of_birth,omitempty" example:"2003-02-11"`
	Gender         *string       `json:"gender,omitempty" example:"Female"`
	Address        *string       `json:"address,omitempty" example:"12 Lake Rd, Kampala"`
	Course         *string       `json:"course,omitempty" example:"Computer Science"`
	CGPA           OptionalFloat `json:"cgpa" swaggertype:"number" example:"3.4"`
	Level          *string       `json:"level,omitempty" example:"P2"`
	Intake         *string       `json:"intake,omitempty" example:"Fall24"`
	Nationality    *string       `json:"nationality,omitempty" example:"Ugandan"`
	EnrollmentDate *string       `json:"enrollment_date,omitempty" example:"2024-09-01"`
	Status         string        `json:"status,omitempty" example:"Active"`
}

// ToModel converts the request into a Student without id or timestamps
func (r *StudentRequest) ToModel() *models.Student {
	return &models.Student{
		StudentID:      r.StudentID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		DateOfBirth:    r.DateOfBirth,
		Gender:         r.Gender,
		Address:        r.Address,
		Course:         r.Course,
		CGPA:           r.CGPA.Value,
		Level:          r.Level,
		Intake:         r.Intake,
		Nationality:    r.Nationality,
		EnrollmentDate: r.EnrollmentDate,
		Status:         r.Status,
	}
}

// StudentListResponse wraps a list of students
type StudentListResponse struct {
	Students []*models.Student `json:"students"`
}

// StudentResponse wraps a single student
type StudentResponse struct {
	Student *models.Student `json:"student"`
}

// CreateStudentResponse is returned after a successful create.
// StudentID carries the new internal id, not the external student number.
type CreateStudentResponse struct {
	Message   string `json:"message" example:"Student added successfully"`
	StudentID int64  `json:"student_id" example:"4"`
}

// ImportRowResponse describes a CSV row that was not inserted
type ImportRowResponse struct {
	Line      int    `json:"line" example:"3"`
	StudentID string `json:"student_id,omitempty" example:"STU001"`
	Outcome   string `json:"outcome" example:"skipped-duplicate"`
	Reason    string `json:"reason,omitempty"`
}

// ImportResponse is returned by the bulk upload endpoint
type ImportResponse struct {
	Message  string              `json:"message" example:"Bulk upload complete. 2 students added."`
	Inserted int                 `json:"inserted" example:"2"`
	Skipped  int                 `json:"skipped" example:"1"`
	Rejected int                 `json:"rejected" example:"0"`
	Rows     []ImportRowResponse `json:"rows"`
}
