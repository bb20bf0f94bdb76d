package api

import (
	"errors"
	"io"
	"strings"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"
	"github.com/DavidBolaji/rag-project/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type QuestionHandler struct {
	orchestrator *usecase.Orchestrator
}

func NewQuestionHandler(orch *usecase.Orchestrator) *QuestionHandler {
	return &QuestionHandler{orchestrator: orch}
}

// HandleQuestion serves the text path. The response exposes only the
// localized answer and the intent; the internal cause of a pipeline failure
// is logged upstream, never returned.
func (h *QuestionHandler) HandleQuestion(c *fiber.Ctx) error {
	var req entity.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	answer, err := h.orchestrator.AnswerText(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entity.QuestionResponse{
		Answer: answer.Text,
		Intent: answer.Intent,
	})
}

// HandleAudio serves the voice path. The payload must declare an audio
// content type; anything else is rejected before a provider is invoked.
func (h *QuestionHandler) HandleAudio(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrMissingAudio.Error()})
	}

	language := c.FormValue("language")
	if language == "" {
		language = "en"
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "audio/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrNotAudio.Error()})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable audio upload"})
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable audio upload"})
	}

	answer, err := h.orchestrator.AnswerAudio(c.Context(), audio, mimeType, fileHeader.Filename, language, c.FormValue("user_id"))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entity.QuestionResponse{
		Answer: answer.Text,
		Intent: answer.Intent,
	})
}

// HandleFeedback acknowledges an explicit user rating. Persistence is
// fire-and-forget; this endpoint cannot fail on a storage outage.
func (h *QuestionHandler) HandleFeedback(c *fiber.Ctx) error {
	var req entity.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	h.orchestrator.RecordRating(c.Context(), req)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// mapError collapses orchestrator errors to the two caller-visible shapes:
// a validation failure or a generic internal failure.
func (h *QuestionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrEmptyQuestion),
		errors.Is(err, entity.ErrMissingAudio),
		errors.Is(err, entity.ErrNotAudio):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, entity.ErrRateLimitExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
