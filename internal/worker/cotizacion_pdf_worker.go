package worker

// cotizacion_pdf_worker.go
// Renders the quotation PDF off the request path. When the payload carries a
// client email, a follow-up email job is enqueued with the generated file.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/infra"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

// CotizacionPDFPayload is the job envelope sent to QueueCotizacionPDF.
type CotizacionPDFPayload struct {
	CotizacionID string `json:"cotizacion_id"`
	EmailCliente string `json:"email_cliente,omitempty"`
}

type CotizacionPDFWorker struct {
	repo       repository.CotizacionRepository
	pdf        *infra.PDFGenerator
	dispatcher *Dispatcher
}

func NewCotizacionPDFWorker(repo repository.CotizacionRepository, pdf *infra.PDFGenerator, dispatcher *Dispatcher) *CotizacionPDFWorker {
	return &CotizacionPDFWorker{repo: repo, pdf: pdf, dispatcher: dispatcher}
}

// Process renders the PDF for one quotation.
func (w *CotizacionPDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CotizacionPDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("cotizacion_pdf_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.CotizacionID)
	if err != nil {
		return fmt.Errorf("cotizacion_pdf_worker: invalid cotizacion_id: %w", err)
	}

	cot, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cotizacion_pdf_worker: load cotizacion %s: %w", id, err)
	}

	path, err := w.pdf.GenerarCotizacion(cot)
	if err != nil {
		return fmt.Errorf("cotizacion_pdf_worker: render: %w", err)
	}
	log.Info().Str("cotizacion_id", id.String()).Str("path", path).Msg("cotizacion_pdf_worker: PDF generated")

	if payload.EmailCliente != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.EmailCliente,
			Subject: "Su cotización de Salty & Sweety",
			Body:    "Adjuntamos la cotización solicitada. Quedamos a su disposición.",
			PDFPath: path,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Str("to", payload.EmailCliente).Msg("cotizacion_pdf_worker: enqueue email failed")
		}
	}
	return nil
}
