package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

var errBackendDown = errors.New("GET /assignments: HTTP error! status: 503")

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

type assignmentRepoStub struct {
	items      []models.Assignment
	err        error
	statusPuts []string
	echo       bool
}

func (r *assignmentRepoStub) List(ctx context.Context) ([]models.Assignment, error) {
	return r.items, r.err
}

func (r *assignmentRepoStub) GetByID(ctx context.Context, id string) (models.Assignment, error) {
	if r.err != nil {
		return models.Assignment{}, r.err
	}
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Assignment{}, nil
}

func (r *assignmentRepoStub) UpdateStatus(ctx context.Context, id, status string) (models.Assignment, error) {
	r.statusPuts = append(r.statusPuts, id+"="+status)
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			if r.echo {
				return r.items[i], nil
			}
		}
	}
	return models.Assignment{}, nil
}

type fileFetcherStub struct {
	files map[string]client.Attachment
	links []string
}

func (f *fileFetcherStub) Fetch(ctx context.Context, link string) (client.Attachment, error) {
	f.links = append(f.links, link)
	file, ok := f.files[link]
	if !ok {
		return client.Attachment{}, &client.RequestError{Method: "GET", Endpoint: "/files", StatusCode: 404}
	}
	return file, nil
}

type marksRepoStub struct {
	entries []models.MarksEntry
	err     error
	created []repository.MarksInput
	patches map[string]repository.MarksPatch
	deleted []string
}

func (r *marksRepoStub) List(ctx context.Context) ([]models.MarksEntry, error) {
	return r.entries, r.err
}

func (r *marksRepoStub) ListByCourse(ctx context.Context, courseID string) ([]models.MarksEntry, error) {
	return nil, r.err
}

func (r *marksRepoStub) Create(ctx context.Context, input repository.MarksInput) (models.MarksEntry, error) {
	r.created = append(r.created, input)
	entry := models.MarksEntry{
		ID:             "new",
		AssignmentName: input.AssignmentName,
		Course:         input.Course,
		MarksObtained:  input.MarksObtained,
		TotalMarks:     input.TotalMarks,
		DateAdded:      fixedNow(),
	}
	r.entries = append(r.entries, entry)
	return entry, r.err
}

func (r *marksRepoStub) Update(ctx context.Context, id string, patch repository.MarksPatch) (models.MarksEntry, error) {
	if r.patches == nil {
		r.patches = map[string]repository.MarksPatch{}
	}
	r.patches[id] = patch
	for i := range r.entries {
		if r.entries[i].ID == id && patch.MarksObtained != nil {
			r.entries[i].MarksObtained = *patch.MarksObtained
			return r.entries[i], r.err
		}
	}
	return models.MarksEntry{}, r.err
}

func (r *marksRepoStub) Delete(ctx context.Context, id string) (models.ActionResult, error) {
	if r.err != nil {
		return models.ActionResult{}, r.err
	}
	r.deleted = append(r.deleted, id)
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return models.ActionResult{Success: true}, nil
}

type courseRepoStub struct {
	courses []models.Course
	err     error
}

func (r *courseRepoStub) List(ctx context.Context) ([]models.Course, error) {
	return r.courses, r.err
}

type settingsRepoStub struct {
	current models.UserSettings
	saved   []models.UserSettings
	err     error
}

func (r *settingsRepoStub) Get(ctx context.Context) (models.UserSettings, error) {
	return r.current, r.err
}

func (r *settingsRepoStub) Update(ctx context.Context, settings models.UserSettings) (models.UserSettings, error) {
	if r.err != nil {
		return models.UserSettings{}, r.err
	}
	r.saved = append(r.saved, settings)
	return models.UserSettings{}, nil
}

type notificationRepoStub struct {
	items    []models.Notification
	channels []string
	result   models.ActionResult
	err      error
}

func (r *notificationRepoStub) List(ctx context.Context) ([]models.Notification, error) {
	return r.items, r.err
}

func (r *notificationRepoStub) SendTest(ctx context.Context, channel string) (models.ActionResult, error) {
	r.channels = append(r.channels, channel)
	return r.result, r.err
}

type classroomRepoStub struct {
	result models.ActionResult
	status models.ClassroomStatus
	err    error
}

func (r *classroomRepoStub) Sync(ctx context.Context) (models.ActionResult, error) {
	return r.result, r.err
}

func (r *classroomRepoStub) Status(ctx context.Context) (models.ClassroomStatus, error) {
	return r.status, r.err
}
