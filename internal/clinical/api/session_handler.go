package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	validate       *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validate:       validator.New(),
	}
}

type CreateSessionRequest struct {
	DoctorID      int64           `json:"doctor_id" validate:"required"`
	PatientID     int64           `json:"patient_id" validate:"required"`
	Date          *time.Time      `json:"date,omitempty"`
	Movements     json.RawMessage `json:"movements" validate:"required"`
	VitalSignsAvg json.RawMessage `json:"vital_signs_avg,omitempty"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateSessionRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	in := service.CreateSessionInput{
		DoctorID:      request.DoctorID,
		PatientID:     request.PatientID,
		Movements:     request.Movements,
		VitalSignsAvg: request.VitalSignsAvg,
	}
	if request.Date != nil {
		in.Date = *request.Date
	}

	sessionID, movementID, err := h.sessionService.CreateSession(c.Context(), callerID, in)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrDoctorNotFound), errors.Is(err, service.ErrPatientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error creating session", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create session"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id":  sessionID,
		"movement_id": movementID,
	})
}
