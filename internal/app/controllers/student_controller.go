package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/app/services"
	"github.com/yigit/studentregistry/internal/middleware"
)

// uploadFormField is the multipart field carrying the CSV file
const uploadFormField = "file"

// StudentController handles student record endpoints
type StudentController struct {
	studentService services.StudentService
	importService  services.ImportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, importService services.ImportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
	}
}

// parseIDParam reads the :id path parameter. It writes a 400 and returns
// false when the value is not an integer.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondBadRequest(ctx, "Invalid student ID", "Student ID must be a valid number")
		return 0, false
	}
	return id, true
}

// GetAllStudents lists every student
// @Summary List students
// @Description Returns all students, most recently created first
// @Tags students
// @Produce json
// @Success 200 {object} dto.StudentListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentListResponse{Students: students})
}

// GetStudentByID retrieves a student by internal id
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path int true "Internal student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentResponse{Student: student})
}

// CreateStudent handles student creation
// @Summary Create a student
// @Description Status defaults to Active and enrollment_date to today. Duplicate student_id or email is reported as a 500 with the storage message.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student fields"
// @Success 200 {object} dto.CreateStudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Storage error, including unique constraint violations"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.studentService.CreateStudent(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CreateStudentResponse{
		Message:   "Student added successfully",
		StudentID: id,
	})
}

// UpdateStudent overwrites an existing student
// @Summary Update a student
// @Description Every field is resent; omitted optional fields are cleared
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Internal student ID"
// @Param request body dto.StudentRequest true "Student fields"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student := req.ToModel()
	student.ID = id

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student updated successfully"})
}

// DeleteStudent deletes a student
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id path int true "Internal student ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// SearchStudents performs a case-sensitive substring search
// @Summary Search students
// @Description Matches first_name, last_name, email, student_id or course
// @Tags students
// @Produce json
// @Param term path string true "Search term"
// @Success 200 {object} dto.StudentListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/search/{term} [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	students, err := c.studentService.SearchStudents(ctx.Request.Context(), ctx.Param("term"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentListResponse{Students: students})
}

// UploadStudents bulk imports a CSV file
// @Summary Bulk import students from CSV
// @Description The header row names Student fields. Rows whose student_id or email already exists are skipped.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable CSV file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/upload [post]
func (c *StudentController) UploadStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile(uploadFormField)
	if err != nil {
		middleware.RespondBadRequest(ctx, "No file uploaded", err.Error())
		return
	}

	result, err := c.importService.ImportUpload(ctx.Request.Context(), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toImportResponse(result))
}

func toImportResponse(result *services.ImportResult) dto.ImportResponse {
	resp := dto.ImportResponse{
		Message:  fmt.Sprintf("Bulk upload complete. %d students added.", result.Inserted),
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
		Rejected: result.Rejected,
		Rows:     []dto.ImportRowResponse{},
	}
	for _, row := range result.Rows {
		if row.Outcome == services.OutcomeInserted {
			continue
		}
		resp.Rows = append(resp.Rows, dto.ImportRowResponse{
			Line:      row.Line,
			StudentID: row.StudentID,
			Outcome:   string(row.Outcome),
			Reason:    row.Reason,
		})
	}
	return resp
}
