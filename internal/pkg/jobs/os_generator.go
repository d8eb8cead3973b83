package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/pdf"
	"github.com/sintechbr/sst/internal/pkg/storage"
	"github.com/sintechbr/sst/internal/pkg/whatsapp"
)

// errSkipped marks items a tick intentionally left alone: lost claims
// and appointments with broken empresa/profissional links.
var errSkipped = errors.New("agendamento skipped")

// ErrNotEligible is returned by GenerateForAgendamento when the
// appointment is not in a state the pipeline may process.
var ErrNotEligible = errors.New("agendamento is not eligible for OS generation")

// Pipeline turns pending appointments into service orders: claim the
// row, render the PDF, upload it, record the os_ordens row, notify the
// company and mark the appointment done. Each item's failure is
// isolated; the batch never aborts for one bad row.
type Pipeline struct {
	agendamentos repository.AgendamentoRepository
	ordens       repository.OSOrdemRepository
	uploader     storage.Uploader
	renderer     pdf.Renderer
	notifier     whatsapp.Sender
}

// NewPipeline wires the OS generation pipeline.
func NewPipeline(
	agendamentos repository.AgendamentoRepository,
	ordens repository.OSOrdemRepository,
	uploader storage.Uploader,
	renderer pdf.Renderer,
	notifier whatsapp.Sender,
) *Pipeline {
	return &Pipeline{
		agendamentos: agendamentos,
		ordens:       ordens,
		uploader:     uploader,
		renderer:     renderer,
		notifier:     notifier,
	}
}

// Run executes one tick: scan Pendente appointments and process them
// sequentially. The caller bounds the tick with the context deadline so
// a hung external call cannot block the next scheduled run.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	ags, err := p.agendamentos.ListByStatus(models.AGENDAMENTO_PENDENTE)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to scan pending agendamentos: %w", err)
	}

	summary := Summary{Scanned: len(ags)}
	for i := range ags {
		if ctx.Err() != nil {
			log.Warnf("[OSPipeline] tick deadline reached, %d items left for next run", len(ags)-i)
			break
		}

		ag := &ags[i]
		switch err := p.process(ctx, ag, models.AGENDAMENTO_PENDENTE); {
		case err == nil:
			summary.Generated++
		case errors.Is(err, errSkipped):
			summary.Skipped++
		default:
			summary.Failed++
			log.Errorf("[OSPipeline] agendamento %s: %v", ag.ID, err)
		}
	}

	log.Infof("[OSPipeline] tick done: %s", summary)
	return summary, nil
}

// GenerateForAgendamento processes a single appointment on demand (the
// feature-gated API paths). Both Pendente and Confirmado rows are
// eligible here.
func (p *Pipeline) GenerateForAgendamento(ctx context.Context, agendamentoID string) error {
	ag, err := p.agendamentos.GetByID(agendamentoID)
	if err != nil {
		return fmt.Errorf("failed to load agendamento %s: %w", agendamentoID, err)
	}

	if ag.Status != models.AGENDAMENTO_PENDENTE && ag.Status != models.AGENDAMENTO_CONFIRMADO {
		return ErrNotEligible
	}

	if err := p.process(ctx, ag, ag.Status); err != nil {
		if errors.Is(err, errSkipped) {
			return ErrNotEligible
		}
		return err
	}
	return nil
}

// process runs the per-item procedure. On any failure after a
// successful claim the row is released back to its original status so
// the next tick retries it.
func (p *Pipeline) process(ctx context.Context, ag *models.Agendamento, fromStatus string) error {
	claimed, err := p.agendamentos.Claim(ag.ID, fromStatus, models.AGENDAMENTO_PROCESSANDO)
	if err != nil {
		return fmt.Errorf("claim failed: %w", err)
	}
	if !claimed {
		// Another tick or a concurrent caller won the row.
		return errSkipped
	}

	if !ag.HasVinculos() {
		log.Warnf("[OSPipeline] agendamento %s sem vínculos de empresa ou profissional", ag.ID)
		p.release(ag.ID, fromStatus)
		return errSkipped
	}

	numeroOS := models.NumeroOSFor(ag.ID)
	pdfBytes, err := p.renderer.RenderOrdemServico(pdf.OrdemServicoData{
		NumeroOS:     numeroOS,
		Empresa:      ag.Empresa.NomeFantasia,
		Profissional: ag.Profissional.Nome,
		Data:         ag.DataSugerida,
	})
	if err != nil {
		p.release(ag.ID, fromStatus)
		return fmt.Errorf("pdf render failed: %w", err)
	}

	key := fmt.Sprintf("os/%s/%s.pdf", ag.TenantID, ag.ID)
	if err := p.uploader.Upload(ctx, key, pdfBytes, "application/pdf", true); err != nil {
		p.release(ag.ID, fromStatus)
		return fmt.Errorf("pdf upload failed: %w", err)
	}
	pdfURL := p.uploader.PublicURL(key)

	ordem := &models.OSOrdem{
		TenantID:      ag.TenantID,
		AgendamentoID: ag.ID,
		NumeroOS:      numeroOS,
		PDFURL:        pdfURL,
		Status:        models.OS_STATUS_GERADA,
	}
	if err := p.ordens.Create(ordem); err != nil {
		p.release(ag.ID, fromStatus)
		return fmt.Errorf("os_ordens insert failed: %w", err)
	}

	// Notification is best-effort: the order already exists even when
	// the message never leaves.
	p.notify(ctx, ag, numeroOS, pdfURL)

	if err := p.agendamentos.SetStatus(ag.ID, models.AGENDAMENTO_OS_GERADA); err != nil {
		// Release so the next tick retries the item instead of leaving
		// it stranded in Processando. The retry is safe end to end: the
		// order number is deterministic, the upload is an upsert and
		// the os_ordens insert ignores the existing row.
		p.release(ag.ID, fromStatus)
		return fmt.Errorf("status transition failed: %w", err)
	}
	return nil
}

func (p *Pipeline) release(id, toStatus string) {
	if err := p.agendamentos.SetStatus(id, toStatus); err != nil {
		log.Errorf("[OSPipeline] failed to release agendamento %s back to %s: %v", id, toStatus, err)
	}
}

func (p *Pipeline) notify(ctx context.Context, ag *models.Agendamento, numeroOS, pdfURL string) {
	if ag.Empresa == nil || ag.Empresa.Telefone == "" {
		return
	}

	msg := fmt.Sprintf("📄 Ordem de Serviço gerada!\n🏢 Empresa: %s\n👷 Profissional: %s\n📅 Data: %s\n🔗 PDF: %s",
		ag.Empresa.NomeFantasia,
		ag.Profissional.Nome,
		ag.DataSugerida.Format("02/01/2006"),
		pdfURL,
	)
	if err := p.notifier.Send(ctx, ag.Empresa.Telefone, msg); err != nil {
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			log.Warn("[OSPipeline] WhatsApp não configurado, notificação ignorada")
			return
		}
		log.Errorf("[OSPipeline] notification for OS %s failed: %v", numeroOS, err)
	}
}
