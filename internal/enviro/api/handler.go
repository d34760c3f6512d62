package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/service"
)

type IngestHandler struct {
	ingestService service.IngestService
}

func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

type IngestRequest struct {
	Bairros map[string]json.RawMessage `json:"bairros"`
}

type ingestFunc func(ctx context.Context, bairros map[string]json.RawMessage) (*service.IngestResult, error)

func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	return h.handle(c, h.ingestService.Ingest)
}

func (h *IngestHandler) IngestV2(c *fiber.Ctx) error {
	return h.handle(c, h.ingestService.IngestV2)
}

func (h *IngestHandler) handle(c *fiber.Ctx, ingest ingestFunc) error {
	var request IngestRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if request.Bairros == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Field 'bairros' is required"})
	}

	result, err := ingest(c.Context(), request.Bairros)

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Ingestion failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not process ingestion"})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type NeighborhoodResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *ReportHandler) ListBairros(c *fiber.Ctx) error {
	neighborhoods, err := h.reportService.ListNeighborhoods(c.Context())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing neighborhoods", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch neighborhoods"})
	}

	response := make([]NeighborhoodResponse, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		response = append(response, NeighborhoodResponse{ID: n.ID, Name: n.Name})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

type MeasurementRecord struct {
	Timestamp       time.Time       `json:"timestamp"`
	Clima           json.RawMessage `json:"clima"`
	QualidadeDoAr   json.RawMessage `json:"qualidade_do_ar"`
	QualidadeDaAgua json.RawMessage `json:"qualidade_da_agua"`
	Riscos          json.RawMessage `json:"riscos"`
}

type MeasurementsResponse struct {
	Bairro    string              `json:"bairro"`
	Registros []MeasurementRecord `json:"registros"`
}

func (h *ReportHandler) ListMedicoes(c *fiber.Ctx) error {
	name := c.Params("name")

	measurements, err := h.reportService.ListMeasurements(c.Context(), name, c.Query("start"), c.Query("end"))

	if err != nil {
		switch {
		case errors.Is(err, service.ErrNeighborhoodNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bairro not found"})
		case errors.Is(err, service.ErrInvalidStart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'start' timestamp"})
		case errors.Is(err, service.ErrInvalidEnd):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'end' timestamp"})
		default:
			slog.ErrorContext(c.UserContext(), "Error listing measurements", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch measurements"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(MeasurementsResponse{
		Bairro:    name,
		Registros: toRecords(measurements),
	})
}

func toRecords(measurements []model.Measurement) []MeasurementRecord {
	records := make([]MeasurementRecord, 0, len(measurements))
	for _, m := range measurements {
		records = append(records, MeasurementRecord{
			Timestamp:       m.Timestamp.UTC(),
			Clima:           m.Clima,
			QualidadeDoAr:   m.QualidadeDoAr,
			QualidadeDaAgua: m.QualidadeDaAgua,
			Riscos:          m.Riscos,
		})
	}
	return records
}

func (h *ReportHandler) RiskReport(c *fiber.Ctx) error {
	report, err := h.reportService.RiskReport(c.Context())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error building risk report", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build risk report"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"bairros": report})
}
