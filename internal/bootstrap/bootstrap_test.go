package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/config"
	"github.com/yigit/studentregistry/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.UploadPath = t.TempDir()
	cfg.Metrics.Enabled = true

	deps, err := BuildDependencies(cfg, testutil.NewDatabase(t), zerolog.Nop())
	require.NoError(t, err)
	return SetupRouter(cfg, deps, zerolog.Nop())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func createStudent(t *testing.T, r http.Handler, studentID, email string) int64 {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/students", map[string]interface{}{
		"student_id": studentID,
		"first_name": "Amina",
		"last_name":  "Okello",
		"email":      email,
		"course":     "Computer Science",
		"cgpa":       "3.6",
		"intake":     "Fall24",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.CreateStudentResponse
	decode(t, w, &resp)
	assert.Equal(t, "Student added successfully", resp.Message)
	return resp.StudentID
}

func TestStudentLifecycle(t *testing.T) {
	r := newTestRouter(t)

	id := createStudent(t, r, "STU004", "amina@example.com")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.StudentResponse
	decode(t, w, &got)
	assert.Equal(t, "STU004", got.Student.StudentID)
	assert.Equal(t, models.StatusActive, got.Student.Status)
	require.NotNil(t, got.Student.CGPA)
	assert.InDelta(t, 3.6, *got.Student.CGPA, 1e-9)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/students/%d", id), map[string]interface{}{
		"student_id": "STU004",
		"first_name": "Amina",
		"last_name":  "Okello",
		"email":      "amina.new@example.com",
		"status":     "Inactive",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d", id), nil)
	decode(t, w, &got)
	assert.Equal(t, "amina.new@example.com", got.Student.Email)
	assert.Equal(t, models.StatusInactive, got.Student.Status)
	assert.Nil(t, got.Student.Course, "omitted optional fields are cleared on update")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d", id), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var errResp dto.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, "Student not found", errResp.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errResp.Code)
}

func TestListStudentsEmptyAndOrdered(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"students":[]}`, w.Body.String())

	first := createStudent(t, r, "STU1", "one@example.com")
	second := createStudent(t, r, "STU2", "two@example.com")

	var list dto.StudentListResponse
	decode(t, doJSON(t, r, http.MethodGet, "/api/students", nil), &list)
	require.Len(t, list.Students, 2)
	assert.Equal(t, second, list.Students[0].ID)
	assert.Equal(t, first, list.Students[1].ID)
}

func TestCreateDuplicateIsServerError(t *testing.T) {
	r := newTestRouter(t)
	createStudent(t, r, "STU1", "one@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/students", map[string]interface{}{
		"student_id": "STU1",
		"first_name": "Other",
		"last_name":  "Person",
		"email":      "other@example.com",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var errResp dto.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, errResp.Code)
	assert.Contains(t, errResp.Error, "UNIQUE")
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/students/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/students", map[string]interface{}{
		"student_id": "STU1",
		"first_name": "Missing",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errResp dto.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errResp.Code)
	assert.Contains(t, errResp.Error, "email")

	req := httptest.NewRequest(http.MethodPost, "/api/students", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUnknownStudent(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/students/99", map[string]interface{}{
		"student_id": "STU99",
		"first_name": "No",
		"last_name":  "One",
		"email":      "no.one@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchStudents(t *testing.T) {
	r := newTestRouter(t)
	createStudent(t, r, "STU042", "amina@example.com")
	createStudent(t, r, "STU777", "brian@example.com")

	var list dto.StudentListResponse
	decode(t, doJSON(t, r, http.MethodGet, "/api/students/search/brian", nil), &list)
	require.Len(t, list.Students, 1)
	assert.Equal(t, "STU777", list.Students[0].StudentID)

	decode(t, doJSON(t, r, http.MethodGet, "/api/students/search/nobody", nil), &list)
	assert.Empty(t, list.Students)
}

func TestSearchTermWithEncodedSlash(t *testing.T) {
	r := newTestRouter(t)
	createStudent(t, r, "ST/05", "slash@example.com")
	createStudent(t, r, "STU777", "brian@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/students/search/ST%2F0", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list dto.StudentListResponse
	decode(t, w, &list)
	require.Len(t, list.Students, 1)
	assert.Equal(t, "ST/05", list.Students[0].StudentID)

	decode(t, doJSON(t, r, http.MethodGet, "/api/students/search/Amina%20Ok", nil), &list)
	assert.Empty(t, list.Students, "names are matched per column")
}

func TestStatsAndSummary(t *testing.T) {
	r := newTestRouter(t)
	createStudent(t, r, "STU1", "one@example.com")
	createStudent(t, r, "STU2", "two@example.com")

	var stats models.Stats
	w := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stats)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 2, stats.Active)
	assert.EqualValues(t, 0, stats.Inactive)
	require.Len(t, stats.Courses, 1)
	assert.EqualValues(t, 2, stats.Courses[0].Count)

	var summary map[string]models.IntakeSummary
	w = doJSON(t, r, http.MethodGet, "/api/students/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &summary)
	require.Contains(t, summary, "Fall24")
	assert.Equal(t, 2, summary["Fall24"].Total)
	assert.Equal(t, 2, summary["Fall24"].CGPARanges[models.BandThreeHalf])
	assert.Equal(t, 2, summary["Fall24"].DeanList)
}

func uploadCSV(t *testing.T, r http.Handler, field, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "students.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/students/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadStudents(t *testing.T) {
	r := newTestRouter(t)
	createStudent(t, r, "STU1", "one@example.com")

	csvData := "student_id,first_name,last_name,email,cgpa\n" +
		"STU1,Dup,Row,dup@example.com,3.1\n" +
		"STU2,New,Row,new@example.com,2.7\n" +
		"STU3,,Row,missing@example.com,\n"

	w := uploadCSV(t, r, "file", csvData)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ImportResponse
	decode(t, w, &resp)
	assert.Equal(t, "Bulk upload complete. 1 students added.", resp.Message)
	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 1, resp.Rejected)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "STU1", resp.Rows[0].StudentID)
	assert.Equal(t, 2, resp.Rows[0].Line)

	var list dto.StudentListResponse
	decode(t, doJSON(t, r, http.MethodGet, "/api/students", nil), &list)
	assert.Len(t, list.Students, 2)
}

func TestUploadStudentsRejectsBadInput(t *testing.T) {
	r := newTestRouter(t)

	w := uploadCSV(t, r, "document", "student_id\nSTU1\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = uploadCSV(t, r, "file", "student_id,email\n\"STU1,broken@example.com\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var list dto.StudentListResponse
	decode(t, doJSON(t, r, http.MethodGet, "/api/students", nil), &list)
	assert.Empty(t, list.Students)
}

func TestOperationalRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health dto.HealthResponse
	decode(t, w, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "sqlite", health.Database)

	w = doJSON(t, r, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/students/search/{term}")

	w = doJSON(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doJSON(t, r, http.MethodGet, "/api/students", nil)
	w = doJSON(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studentregistry_http_requests_total")
}
