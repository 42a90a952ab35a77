package worker

// reporte_worker.go
// Processes report-rendering jobs from QueueReportes: renders the sales
// spreadsheet to disk and, when an address was given, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/service"

	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	Desde    string  `json:"desde"` // YYYY-MM-DD
	Hasta    string  `json:"hasta"`
	Sucursal string  `json:"sucursal,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ReporteWorker struct {
	reporteService service.ReporteService
	dispatcher     *Dispatcher
	storagePath    string
}

func NewReporteWorker(reporteService service.ReporteService, dispatcher *Dispatcher, storagePath string) *ReporteWorker {
	return &ReporteWorker{
		reporteService: reporteService,
		dispatcher:     dispatcher,
		storagePath:    storagePath,
	}
}

// Process renders one report:
//  1. Parse ReporteJobPayload from the job envelope
//  2. Build the spreadsheet from the sales in the range
//  3. Save it under the storage path
//  4. Optionally enqueue an email job with the file attached
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	filter := dto.ReporteFilter{Desde: payload.Desde, Hasta: payload.Hasta, Sucursal: payload.Sucursal}
	f, err := w.reporteService.GenerarExcel(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("desde", payload.Desde).Str("hasta", payload.Hasta).
			Msg("reporte_worker: failed to build spreadsheet")
		return err
	}

	if err := os.MkdirAll(w.storagePath, 0o755); err != nil {
		return fmt.Errorf("reporte_worker: storage path: %w", err)
	}
	name := fmt.Sprintf("ventas_%s_%s_%d.xlsx", payload.Desde, payload.Hasta, time.Now().Unix())
	path := filepath.Join(w.storagePath, name)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("reporte_worker: save: %w", err)
	}
	log.Info().Str("path", path).Msg("reporte_worker: reporte generado")

	if payload.Email != nil && *payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail:        *payload.Email,
			Subject:        fmt.Sprintf("Reporte de ventas %s a %s", payload.Desde, payload.Hasta),
			Body:           "Adjunto encontrarás el reporte de ventas solicitado.",
			AttachmentPath: path,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.Email).Msg("reporte_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.Email).Msg("reporte_worker: email job enqueued")
		}
	}
	return nil
}
