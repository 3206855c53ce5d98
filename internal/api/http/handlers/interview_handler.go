package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/justjoin/justjoin-backend/internal/repository"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// InterviewHandler serves the AI-interview endpoints. The question set
// is a fixed stub; only the interview_enabled gate is real.
type InterviewHandler struct {
	jobSeekers repository.JobSeekerRepository
}

// NewInterviewHandler constructs handler.
func NewInterviewHandler(jobSeekers repository.JobSeekerRepository) *InterviewHandler {
	return &InterviewHandler{jobSeekers: jobSeekers}
}

var stubQuestions = []fiber.Map{
	{"id": 1, "question": "これまでの職務経験を教えてください。", "category": "experience"},
	{"id": 2, "question": "最も成果を上げたプロジェクトについて教えてください。", "category": "achievement"},
	{"id": 3, "question": "志望する職種を選んだ理由は何ですか。", "category": "motivation"},
	{"id": 4, "question": "チームでの役割についてどう考えていますか。", "category": "teamwork"},
	{"id": 5, "question": "今後のキャリアプランを教えてください。", "category": "career"},
}

// Questions handles GET /api/interview/questions/:userId, gated on the
// profile's interview_enabled flag.
func (h *InterviewHandler) Questions(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	profile, err := h.jobSeekers.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("profile")
		}
		return err
	}
	if !profile.InterviewEnabled {
		return apperrors.NewForbidden("interview is not enabled for this profile")
	}

	return c.JSON(fiber.Map{"success": true, "data": stubQuestions})
}
