package handler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

const defaultTotalMarks = 100

// MarksHandler wires the marks summary routes.
type MarksHandler struct {
	service service.MarksService
	logger  zerolog.Logger
}

// NewMarksHandler constructs the handler.
func NewMarksHandler(service service.MarksService, logger zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		service: service,
		logger:  logger.With().Str("component", "marks_handler").Logger(),
	}
}

// RegisterPages attaches the HTML routes.
func (h *MarksHandler) RegisterPages(router fiber.Router) {
	router.Get("", h.page)
	router.Post("", h.addPage)
	router.Post("/:id", h.updatePage)
	router.Get("/:id/delete", h.confirmDeletePage)
	router.Post("/:id/delete", h.deletePage)
}

// RegisterAPI attaches the JSON routes.
func (h *MarksHandler) RegisterAPI(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *MarksHandler) page(c *fiber.Ctx) error {
	course := strings.TrimSpace(c.Query("course"))

	summary, err := h.service.Summary(c.UserContext(), course)
	if err != nil {
		return renderLoadError(c, h.logger, "Marks", pageMarks, err)
	}

	if course == "" {
		return render(c, "marks/index", "Marks Summary", pageMarks, fiber.Map{"Summary": summary})
	}
	return render(c, "marks/course", course, pageMarks, fiber.Map{"Summary": summary})
}

func (h *MarksHandler) addPage(c *fiber.Ctx) error {
	course := strings.TrimSpace(c.FormValue("course"))
	back := marksURL(course)

	payload, err := marksCreateForm(c)
	if err != nil {
		return failAction(c, h.logger, err, back)
	}

	if _, err := h.service.Add(c.UserContext(), payload); err != nil {
		return failAction(c, h.logger, err, back)
	}

	setFlash(c, "Marks entry added", false)
	return c.Redirect(back, fiber.StatusSeeOther)
}

func (h *MarksHandler) updatePage(c *fiber.Ctx) error {
	back := marksURL(c.FormValue("course"))

	obtained, err := formInt(c, "marks_obtained", nil)
	if err != nil {
		return failAction(c, h.logger, err, back)
	}

	if _, err := h.service.Update(c.UserContext(), c.Params("id"), dto.MarksUpdateRequest{MarksObtained: obtained}); err != nil {
		return failAction(c, h.logger, err, back)
	}

	setFlash(c, "Marks entry updated", false)
	return c.Redirect(back, fiber.StatusSeeOther)
}

func (h *MarksHandler) confirmDeletePage(c *fiber.Ctx) error {
	entry, err := h.service.Find(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrMarksEntryNotFound) {
			return fiber.ErrNotFound
		}
		return renderLoadError(c, h.logger, "Delete Marks", pageMarks, err)
	}

	return render(c, "marks/confirm_delete", "Delete Marks", pageMarks, fiber.Map{"Entry": entry})
}

func (h *MarksHandler) deletePage(c *fiber.Ctx) error {
	id := c.Params("id")
	back := marksURL(c.FormValue("course"))
	confirmed := c.FormValue("confirm") == "yes"

	if err := h.service.Delete(c.UserContext(), id, confirmed); err != nil {
		if errors.Is(err, service.ErrConfirmationRequired) {
			return c.Redirect("/marks/"+url.PathEscape(id)+"/delete", fiber.StatusSeeOther)
		}
		return failAction(c, h.logger, err, back)
	}

	setFlash(c, "Marks entry deleted", false)
	return c.Redirect(back, fiber.StatusSeeOther)
}

func (h *MarksHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), c.Query("course"))
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "marks summary retrieved", summary)
}

func (h *MarksHandler) list(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), c.Query("course"))
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "marks retrieved", summary.Entries)
}

func (h *MarksHandler) create(c *fiber.Ctx) error {
	var payload dto.MarksCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.TotalMarks == nil {
		total := defaultTotalMarks
		payload.TotalMarks = &total
	}

	entry, err := h.service.Add(c.UserContext(), payload)
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "marks entry added", entry)
}

func (h *MarksHandler) update(c *fiber.Ctx) error {
	var payload dto.MarksUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.Update(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "marks entry updated", entry)
}

// delete treats the DELETE verb itself as the confirmation.
func (h *MarksHandler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id, true); err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "marks entry deleted", fiber.Map{"id": id})
}

func marksCreateForm(c *fiber.Ctx) (dto.MarksCreateRequest, error) {
	obtained, err := formInt(c, "marks_obtained", nil)
	if err != nil {
		return dto.MarksCreateRequest{}, err
	}

	total := defaultTotalMarks
	totalMarks, err := formInt(c, "total_marks", &total)
	if err != nil {
		return dto.MarksCreateRequest{}, err
	}

	return dto.MarksCreateRequest{
		AssignmentName: c.FormValue("assignment_name"),
		Course:         c.FormValue("course"),
		MarksObtained:  obtained,
		TotalMarks:     totalMarks,
	}, nil
}
