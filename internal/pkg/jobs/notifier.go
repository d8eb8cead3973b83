package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/whatsapp"
)

// Notifier pings companies about newly created appointments that have
// not been notified yet. notificado_em keeps re-ticks from re-sending.
type Notifier struct {
	agendamentos repository.AgendamentoRepository
	sender       whatsapp.Sender
}

// NewNotifier wires the appointment notifier.
func NewNotifier(agendamentos repository.AgendamentoRepository, sender whatsapp.Sender) *Notifier {
	return &Notifier{agendamentos: agendamentos, sender: sender}
}

// Run sends one message per un-notified pending appointment. Items
// without a phone number are skipped silently; send failures are logged
// and retried on the next tick.
func (n *Notifier) Run(ctx context.Context) (int, error) {
	ags, err := n.agendamentos.ListPendentesNaoNotificados()
	if err != nil {
		return 0, fmt.Errorf("failed to scan un-notified agendamentos: %w", err)
	}

	sent := 0
	for i := range ags {
		if ctx.Err() != nil {
			break
		}
		ag := &ags[i]

		if ag.Empresa == nil || ag.Empresa.Telefone == "" {
			continue
		}

		msg := fmt.Sprintf("📅 Novo agendamento criado\n🏢 Empresa: %s\n📌 Status: %s",
			ag.Empresa.NomeFantasia, ag.Status)
		if err := n.sender.Send(ctx, ag.Empresa.Telefone, msg); err != nil {
			if errors.Is(err, whatsapp.ErrNotConfigured) {
				log.Warn("[Notifier] WhatsApp não configurado, tick ignorado")
				return sent, nil
			}
			log.Errorf("[Notifier] agendamento %s: %v", ag.ID, err)
			continue
		}

		if err := n.agendamentos.MarkNotificado(ag.ID, time.Now()); err != nil {
			log.Errorf("[Notifier] failed to mark agendamento %s as notified: %v", ag.ID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
