package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/internal/pkg/pdf"
	"github.com/sintechbr/sst/internal/pkg/whatsapp"
)

type fakeAgendamentos struct {
	mu   sync.Mutex
	rows map[string]*models.Agendamento

	listErr      error
	claimErr     error
	setStatusErr map[string]error

	claims   []string
	statuses []string
}

func newFakeAgendamentos(rows ...*models.Agendamento) *fakeAgendamentos {
	f := &fakeAgendamentos{rows: map[string]*models.Agendamento{}}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeAgendamentos) Create(ag *models.Agendamento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[ag.ID] = ag
	return nil
}

func (f *fakeAgendamentos) GetByID(id string) (*models.Agendamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ag, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ag, nil
}

func (f *fakeAgendamentos) ListByTenant(tenantID string, offset, limit int) ([]models.Agendamento, error) {
	return nil, nil
}

func (f *fakeAgendamentos) ListByStatus(status string) ([]models.Agendamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Agendamento
	for _, r := range f.rows {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAgendamentos) Claim(id, fromStatus, toStatus string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return false, f.claimErr
	}
	f.claims = append(f.claims, id)
	ag, ok := f.rows[id]
	if !ok || ag.Status != fromStatus {
		return false, nil
	}
	ag.Status = toStatus
	return true, nil
}

func (f *fakeAgendamentos) SetStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.setStatusErr[status]; err != nil {
		return err
	}
	ag, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ag.Status = status
	f.statuses = append(f.statuses, id+":"+status)
	return nil
}

func (f *fakeAgendamentos) SetPrioridade(id, prioridade string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ag, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ag.Prioridade = prioridade
	return nil
}

func (f *fakeAgendamentos) MarkNotificado(id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ag, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ag.NotificadoEm = &at
	return nil
}

func (f *fakeAgendamentos) ListPendentesNaoNotificados() ([]models.Agendamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Agendamento
	for _, r := range f.rows {
		if r.Status == models.AGENDAMENTO_PENDENTE && r.NotificadoEm == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAgendamentos) ListPendentesOlderThan(cutoff time.Time) ([]models.Agendamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Agendamento
	for _, r := range f.rows {
		if r.Status == models.AGENDAMENTO_PENDENTE && r.CreatedAt.Before(cutoff) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAgendamentos) CountByStatus(tenantID string) (map[string]int64, error) {
	return nil, nil
}

func (f *fakeAgendamentos) status(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id].Status
}

type fakeOrdens struct {
	mu        sync.Mutex
	created   []*models.OSOrdem
	createErr map[string]error
}

func (f *fakeOrdens) Create(ordem *models.OSOrdem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[ordem.AgendamentoID]; err != nil {
		return err
	}
	// Mirrors the unique index + ON CONFLICT DO NOTHING insert.
	for _, o := range f.created {
		if o.AgendamentoID == ordem.AgendamentoID {
			return nil
		}
	}
	f.created = append(f.created, ordem)
	return nil
}

func (f *fakeOrdens) GetByAgendamentoID(agendamentoID string) (*models.OSOrdem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.AgendamentoID == agendamentoID {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrdens) CountByTenant(tenantID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.created)), nil
}

type fakeUploader struct {
	mu      sync.Mutex
	keys    []string
	failKey string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, data []byte, contentType string, upsert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKey != "" && key == f.failKey {
		return errors.New("upload refused")
	}
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) RenderOrdemServico(d pdf.OrdemServicoData) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 " + d.NumeroOS), nil
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	err   error
	phone []string
}

func (f *fakeSender) Send(ctx context.Context, phone, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.phone = append(f.phone, phone)
	f.sent = append(f.sent, message)
	return nil
}

func pendente(id, tenant string) *models.Agendamento {
	return &models.Agendamento{
		ID:             id,
		TenantID:       tenant,
		EmpresaID:      "e-1",
		ProfissionalID: "p-1",
		DataSugerida:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:         models.AGENDAMENTO_PENDENTE,
		Prioridade:     models.PRIORIDADE_NORMAL,
		Empresa:        &models.Empresa{ID: "e-1", NomeFantasia: "Metalurgica Sul", Telefone: "+5511999990000"},
		Profissional:   &models.Profissional{ID: "p-1", Nome: "Dra. Ana Costa"},
	}
}

func newTestPipeline(ags *fakeAgendamentos, ordens *fakeOrdens, up *fakeUploader, r pdf.Renderer, s whatsapp.Sender) *Pipeline {
	return NewPipeline(ags, ordens, up, r, s)
}

func TestPipelineRunGeneratesOrders(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"), pendente("ag-2", "t-1"))
	ordens := &fakeOrdens{}
	up := &fakeUploader{}
	sender := &fakeSender{}

	p := newTestPipeline(ags, ordens, up, fakeRenderer{}, sender)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 2, summary.Generated)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)

	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-1"))
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-2"))
	assert.Len(t, ordens.created, 2)
	assert.Len(t, up.keys, 2)
	assert.Len(t, sender.sent, 2)

	for _, o := range ordens.created {
		assert.Equal(t, models.OS_STATUS_GERADA, o.Status)
		assert.Equal(t, models.NumeroOSFor(o.AgendamentoID), o.NumeroOS)
		assert.Contains(t, o.PDFURL, "os/t-1/")
	}
}

func TestPipelineRunNothingPending(t *testing.T) {
	done := pendente("ag-1", "t-1")
	done.Status = models.AGENDAMENTO_OS_GERADA

	p := newTestPipeline(newFakeAgendamentos(done), &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Scanned)
	assert.Equal(t, "Nenhum job pendente", summary.String())
}

func TestPipelineFailureIsolation(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"), pendente("ag-2", "t-1"), pendente("ag-3", "t-1"))
	ordens := &fakeOrdens{createErr: map[string]error{"ag-2": errors.New("insert refused")}}
	up := &fakeUploader{}

	p := newTestPipeline(ags, ordens, up, fakeRenderer{}, &fakeSender{})

	summary, err := p.Run(context.Background())
	require.NoError(t, err, "one bad row must not abort the batch")

	assert.Equal(t, 3, summary.Scanned)
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 1, summary.Failed)

	// The failed row is released back to Pendente for the next tick.
	assert.Equal(t, models.AGENDAMENTO_PENDENTE, ags.status("ag-2"))
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-1"))
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-3"))
}

func TestPipelineSkipsBrokenLinks(t *testing.T) {
	broken := pendente("ag-1", "t-1")
	broken.Empresa = nil

	ags := newFakeAgendamentos(broken)
	p := newTestPipeline(ags, &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Generated)
	// Released, not stuck in Processando.
	assert.Equal(t, models.AGENDAMENTO_PENDENTE, ags.status("ag-1"))
}

func TestPipelineUploadFailureReleasesClaim(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"))
	up := &fakeUploader{failKey: "os/t-1/ag-1.pdf"}
	ordens := &fakeOrdens{}

	p := newTestPipeline(ags, ordens, up, fakeRenderer{}, &fakeSender{})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, models.AGENDAMENTO_PENDENTE, ags.status("ag-1"))
	assert.Empty(t, ordens.created, "no order row without an uploaded PDF")
}

func TestPipelineFinalStatusFailureReleasesClaim(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"))
	ags.setStatusErr = map[string]error{
		models.AGENDAMENTO_OS_GERADA: errors.New("update refused"),
	}
	ordens := &fakeOrdens{}

	p := newTestPipeline(ags, ordens, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)

	// The order row exists, but the appointment goes back to Pendente so
	// the next tick can finish the transition instead of the row sitting
	// in Processando forever.
	assert.Len(t, ordens.created, 1)
	assert.Equal(t, models.AGENDAMENTO_PENDENTE, ags.status("ag-1"))

	// Retry completes once the update goes through; the idempotent
	// insert keeps the order unique.
	ags.setStatusErr = nil
	summary, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Generated)
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-1"))
	assert.Len(t, ordens.created, 1, "retry must not duplicate the order")
}

func TestPipelineLostClaimIsSkipped(t *testing.T) {
	row := pendente("ag-1", "t-1")
	ags := newFakeAgendamentos(row)

	// Another worker already moved the row.
	row.Status = models.AGENDAMENTO_PROCESSANDO

	p := newTestPipeline(ags, &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})
	err := p.process(context.Background(), row, models.AGENDAMENTO_PENDENTE)
	assert.ErrorIs(t, err, errSkipped)
}

func TestPipelineNotificationFailureDoesNotFailItem(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"))
	sender := &fakeSender{err: errors.New("gateway down")}

	p := newTestPipeline(ags, &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, sender)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Generated)
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-1"))
}

func TestPipelineUnconfiguredWhatsAppIsSilent(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"))
	sender := &fakeSender{err: whatsapp.ErrNotConfigured}

	p := newTestPipeline(ags, &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, sender)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Generated)
}

func TestPipelineDeadlineStopsBatch(t *testing.T) {
	ags := newFakeAgendamentos(pendente("ag-1", "t-1"), pendente("ag-2", "t-1"))
	p := newTestPipeline(ags, &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scanned)
	assert.Zero(t, summary.Generated, "expired context processes nothing")
}

func TestGenerateForAgendamentoConfirmado(t *testing.T) {
	row := pendente("ag-1", "t-1")
	row.Status = models.AGENDAMENTO_CONFIRMADO
	ags := newFakeAgendamentos(row)
	ordens := &fakeOrdens{}

	p := newTestPipeline(ags, ordens, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	require.NoError(t, p.GenerateForAgendamento(context.Background(), "ag-1"))
	assert.Equal(t, models.AGENDAMENTO_OS_GERADA, ags.status("ag-1"))
	assert.Len(t, ordens.created, 1)
}

func TestGenerateForAgendamentoAlreadyGenerated(t *testing.T) {
	row := pendente("ag-1", "t-1")
	row.Status = models.AGENDAMENTO_OS_GERADA
	p := newTestPipeline(newFakeAgendamentos(row), &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	err := p.GenerateForAgendamento(context.Background(), "ag-1")
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestGenerateForAgendamentoUnknown(t *testing.T) {
	p := newTestPipeline(newFakeAgendamentos(), &fakeOrdens{}, &fakeUploader{}, fakeRenderer{}, &fakeSender{})

	err := p.GenerateForAgendamento(context.Background(), "ghost")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotEligible)
}

func TestSummaryString(t *testing.T) {
	s := Summary{Scanned: 5, Generated: 3, Skipped: 1, Failed: 1}
	str := s.String()
	assert.Contains(t, str, "Jobs executados")
	assert.NotEqual(t, "Nenhum job pendente", str)

	assert.Equal(t, "Nenhum job pendente", Summary{}.String())
}

func TestNumeroOSIsStable(t *testing.T) {
	a := models.NumeroOSFor("9f8e7d6c-0000-1111-2222-333344445555")
	b := models.NumeroOSFor("9f8e7d6c-0000-1111-2222-333344445555")
	assert.Equal(t, a, b)
	assert.Equal(t, fmt.Sprintf("OS-%s", "9F8E7D6C"), a)
}
