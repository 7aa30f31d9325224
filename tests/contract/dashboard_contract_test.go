package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/handler"
	"github.com/noah-isme/study-dashboard/internal/service"
)

type stubProgressService struct {
	response dto.ProgressOverview
}

func (s stubProgressService) Overview(context.Context, bool) (dto.ProgressOverview, error) {
	return s.response, nil
}

type stubMarksService struct {
	service.MarksService
	response dto.MarksSummary
}

func (s stubMarksService) Summary(context.Context, string) (dto.MarksSummary, error) {
	return s.response, nil
}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func fetchPayload(t *testing.T, app *fiber.App, target string) interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestProgressOverviewContract(t *testing.T) {
	schema := compileSchema(t, "progress.schema.json")

	due := time.Now().UTC().Add(24 * time.Hour)
	response := dto.ProgressOverview{
		Total:                2,
		Completed:            1,
		Pending:              1,
		Urgent:               1,
		CompletionPercentage: 50,
		Assignments: []dto.AssignmentCard{
			{
				ID:             "a1",
				Title:          "React Project",
				Course:         "Web Development",
				Status:         "pending",
				Priority:       "high",
				PriorityLabel:  "HIGH PRIORITY",
				DueDate:        due,
				DueDateLabel:   due.Format("Jan 2, 2006"),
				DaysUntilDue:   1,
				Urgent:         true,
				Badge:          service.BadgeDueSoon,
				RemainingLabel: "1 day remaining",
				HasDownload:    true,
			},
		},
		Courses: []dto.CourseProgress{
			{CourseName: "Databases", Total: 1, Completed: 1, Percentage: 100},
			{CourseName: "Web Development", Total: 1, Completed: 0, Percentage: 0},
		},
	}

	h := handler.NewProgressHandler(stubProgressService{response: response}, nil, nil, zerolog.Nop())

	app := fiber.New()
	h.RegisterAPI(app.Group("/api/v1/progress"))

	require.NoError(t, schema.Validate(fetchPayload(t, app, "/api/v1/progress")))
}

func TestMarksSummaryContract(t *testing.T) {
	schema := compileSchema(t, "marks_summary.schema.json")

	added := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
	response := dto.MarksSummary{
		TotalEntries:  2,
		AverageScore:  83,
		ActiveCourses: 2,
		Courses: []dto.CourseMarks{
			{ID: "c1", Name: "Web Development", Color: "blue", EntryCount: 1, Average: 90, RoundedAverage: 90},
			{ID: "c2", Name: "Databases", Color: "green", EntryCount: 1, Average: 75, RoundedAverage: 75},
			{ID: "c3", Name: "Networks", Color: "red"},
		},
		Entries: []dto.MarksEntryView{
			{ID: "m1", AssignmentName: "Quiz 1", Course: "Web Development", MarksObtained: 45, TotalMarks: 50, Percentage: 90, RoundedPercentage: 90, Band: service.BandHigh, DateAdded: added, DateLabel: "Mar 1, 2025"},
			{ID: "m2", AssignmentName: "Essay", Course: "Databases", MarksObtained: 30, TotalMarks: 40, Percentage: 75, RoundedPercentage: 75, Band: service.BandMedium, DateAdded: added, DateLabel: "Mar 1, 2025"},
		},
	}

	h := handler.NewMarksHandler(stubMarksService{response: response}, zerolog.Nop())

	app := fiber.New()
	h.RegisterAPI(app.Group("/api/v1/marks"))

	require.NoError(t, schema.Validate(fetchPayload(t, app, "/api/v1/marks/summary")))
}
