package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/app/repository"
)

const defaultSLAMaxAge = 24 * time.Hour

// SLAWatcher escalates pending appointments that sat untouched beyond
// the SLA window.
type SLAWatcher struct {
	agendamentos repository.AgendamentoRepository
	maxAge       time.Duration
}

// NewSLAWatcher wires the SLA watcher with the default 24h window.
func NewSLAWatcher(agendamentos repository.AgendamentoRepository) *SLAWatcher {
	return &SLAWatcher{agendamentos: agendamentos, maxAge: defaultSLAMaxAge}
}

// Run raises the priority of overdue pending appointments and returns
// how many were escalated.
func (w *SLAWatcher) Run(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-w.maxAge)
	ags, err := w.agendamentos.ListPendentesOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to scan overdue agendamentos: %w", err)
	}

	escalated := 0
	for i := range ags {
		if ctx.Err() != nil {
			break
		}
		ag := &ags[i]
		if ag.Prioridade == models.PRIORIDADE_ALTA {
			continue
		}
		if err := w.agendamentos.SetPrioridade(ag.ID, models.PRIORIDADE_ALTA); err != nil {
			log.Errorf("[SLAWatcher] agendamento %s: %v", ag.ID, err)
			continue
		}
		escalated++
	}

	if escalated > 0 {
		log.Infof("[SLAWatcher] escalated %d overdue agendamentos", escalated)
	}
	return escalated, nil
}
