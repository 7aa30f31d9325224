package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/markdown"
	"github.com/noah-isme/study-dashboard/internal/models"
)

func newTestAssignmentService(repo *assignmentRepoStub, files *fileFetcherStub) *assignmentService {
	svc := NewAssignmentService(repo, files, testValidator(), testLogger()).(*assignmentService)
	svc.now = fixedNow
	return svc
}

func sampleAssignments() []models.Assignment {
	now := fixedNow()
	return []models.Assignment{
		{
			ID:             "1",
			Title:          "React Hooks Essay",
			Course:         "Web Development",
			Description:    "# Brief\nWrite about hooks.\n\n- useState\n- useEffect",
			DueDate:        now.Add(12 * time.Hour),
			Status:         models.AssignmentStatusPending,
			Priority:       models.PriorityHigh,
			DownloadLink:   "/assignments/react.pdf",
			AIResponseFile: "/ai/react-response.txt",
		},
		{
			ID:       "2",
			Title:    "Linear Algebra Set",
			Course:   "Mathematics",
			DueDate:  now.Add(72 * time.Hour),
			Status:   models.AssignmentStatusPending,
			Priority: models.PriorityMedium,
		},
		{
			ID:       "3",
			Title:    "Lab Report",
			Course:   "Physics",
			DueDate:  now.Add(-48 * time.Hour),
			Status:   models.AssignmentStatusCompleted,
			Priority: models.PriorityLow,
		},
	}
}

func TestAssignmentServiceListBuildsCards(t *testing.T) {
	svc := newTestAssignmentService(&assignmentRepoStub{items: sampleAssignments()}, &fileFetcherStub{})

	cards, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	require.Equal(t, BadgeDueSoon, cards[0].Badge)
	require.True(t, cards[0].Urgent)
	require.Equal(t, "HIGH PRIORITY", cards[0].PriorityLabel)
	require.Equal(t, "1 day remaining", cards[0].RemainingLabel)
	require.True(t, cards[0].HasDownload)
	require.True(t, cards[0].HasAIResponse)

	require.Equal(t, BadgePending, cards[1].Badge)
	require.Equal(t, "3 days remaining", cards[1].RemainingLabel)
	require.False(t, cards[1].HasDownload)

	require.Equal(t, BadgeCompleted, cards[2].Badge)
	require.Empty(t, cards[2].RemainingLabel)
}

func TestAssignmentServiceGetRendersDescription(t *testing.T) {
	svc := newTestAssignmentService(&assignmentRepoStub{items: sampleAssignments()}, &fileFetcherStub{})

	detail, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "React Hooks Essay", detail.Title)
	require.Equal(t, markdown.Block{Kind: markdown.KindHeading1, Text: "Brief"}, detail.DescriptionBlocks[0])
	require.Contains(t, string(detail.DescriptionHTML), "<ul><li>useState</li><li>useEffect</li></ul>")
}

func TestAssignmentServiceGetMissing(t *testing.T) {
	svc := newTestAssignmentService(&assignmentRepoStub{items: sampleAssignments()}, &fileFetcherStub{})

	_, err := svc.Get(context.Background(), "404")
	require.ErrorIs(t, err, ErrNoAssignmentSelected)

	_, err = svc.Get(context.Background(), "  ")
	require.ErrorIs(t, err, ErrNoAssignmentSelected)
}

func TestAssignmentServicePropagatesBackendErrors(t *testing.T) {
	svc := newTestAssignmentService(&assignmentRepoStub{err: errBackendDown}, &fileFetcherStub{})

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, errBackendDown)

	_, err = svc.Get(context.Background(), "1")
	require.ErrorIs(t, err, errBackendDown)
}

func TestAssignmentServiceToggleStatusFlipsOnce(t *testing.T) {
	repo := &assignmentRepoStub{items: sampleAssignments(), echo: true}
	svc := newTestAssignmentService(repo, &fileFetcherStub{})

	card, err := svc.ToggleStatus(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusCompleted, card.Status)
	require.Equal(t, BadgeCompleted, card.Badge)

	card, err = svc.ToggleStatus(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusPending, card.Status)

	require.Equal(t, []string{"1=completed", "3=pending"}, repo.statusPuts)
}

func TestAssignmentServiceToggleWithoutEcho(t *testing.T) {
	repo := &assignmentRepoStub{items: sampleAssignments()}
	svc := newTestAssignmentService(repo, &fileFetcherStub{})

	card, err := svc.ToggleStatus(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, "2", card.ID)
	require.Equal(t, models.AssignmentStatusCompleted, card.Status)
	require.Len(t, repo.statusPuts, 1)
}

func TestAssignmentServiceUpdateStatusValidates(t *testing.T) {
	repo := &assignmentRepoStub{items: sampleAssignments(), echo: true}
	svc := newTestAssignmentService(repo, &fileFetcherStub{})

	_, err := svc.UpdateStatus(context.Background(), "1", dto.AssignmentStatusRequest{Status: "archived"})
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	require.Empty(t, repo.statusPuts)

	card, err := svc.UpdateStatus(context.Background(), "1", dto.AssignmentStatusRequest{Status: models.AssignmentStatusCompleted})
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusCompleted, card.Status)
}

func TestAssignmentServiceAttachments(t *testing.T) {
	files := &fileFetcherStub{files: map[string]client.Attachment{
		"/assignments/react.pdf": {Data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), ContentType: "application/octet-stream"},
		"/ai/react-response.txt": {Data: []byte("Hooks let function components hold state."), ContentType: ""},
	}}
	svc := newTestAssignmentService(&assignmentRepoStub{items: sampleAssignments()}, files)

	download, err := svc.Attachment(context.Background(), "1", AttachmentDownload)
	require.NoError(t, err)
	require.Equal(t, "React Hooks Essay.pdf", download.Filename)
	require.Equal(t, "application/pdf", download.ContentType)
	require.False(t, download.Inline)

	response, err := svc.Attachment(context.Background(), "1", AttachmentAIResponse)
	require.NoError(t, err)
	require.Equal(t, "react-response.txt", response.Filename)
	require.Contains(t, response.ContentType, "text/plain")
	require.True(t, response.Inline)

	_, err = svc.Attachment(context.Background(), "2", AttachmentDownload)
	require.ErrorIs(t, err, ErrAttachmentNotFound)

	_, err = svc.Attachment(context.Background(), "1", "source")
	require.ErrorIs(t, err, ErrAttachmentNotFound)

	require.Equal(t, []string{"/assignments/react.pdf", "/ai/react-response.txt"}, files.links)
}

func TestAssignmentServiceAttachmentFetchFailure(t *testing.T) {
	items := sampleAssignments()
	items[0].DownloadLink = "/missing.pdf"
	svc := newTestAssignmentService(&assignmentRepoStub{items: items}, &fileFetcherStub{})

	_, err := svc.Attachment(context.Background(), "1", AttachmentDownload)
	require.True(t, client.IsRequestError(err))
}

func TestDetectContentTypeFallsBackToHeader(t *testing.T) {
	file := client.Attachment{Data: []byte{0x00, 0xfe, 0x13, 0x37, 0x00, 0x01}, ContentType: "application/x-custom"}
	require.Equal(t, "application/x-custom", detectContentType(file))
}
