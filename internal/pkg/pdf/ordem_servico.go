package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// OrdemServicoData is everything the generated service-order document
// shows. The layout is fixed: single A4 page, Helvetica, fixed
// coordinates, content always assumed to fit.
type OrdemServicoData struct {
	NumeroOS     string
	Empresa      string
	Profissional string
	Data         time.Time
}

// Renderer produces service-order PDF bytes. It exists as an interface
// so the job pipeline can be tested without a PDF library in the loop.
type Renderer interface {
	RenderOrdemServico(d OrdemServicoData) ([]byte, error)
}

// FPDFRenderer renders service orders with fpdf core fonts.
type FPDFRenderer struct{}

func NewRenderer() FPDFRenderer {
	return FPDFRenderer{}
}

func (FPDFRenderer) RenderOrdemServico(d OrdemServicoData) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Text(50, 60, tr("ORDEM DE SERVIÇO"))

	doc.SetFont("Helvetica", "", 12)
	doc.Text(50, 100, tr(fmt.Sprintf("Número: %s", d.NumeroOS)))
	doc.Text(50, 130, tr(fmt.Sprintf("Empresa: %s", d.Empresa)))
	doc.Text(50, 160, tr(fmt.Sprintf("Profissional: %s", d.Profissional)))
	doc.Text(50, 190, tr(fmt.Sprintf("Data: %s", d.Data.Format("02/01/2006"))))

	doc.SetFont("Helvetica", "I", 9)
	doc.Text(50, 230, tr(fmt.Sprintf("Gerado em: %s", time.Now().Format("02/01/2006 15:04"))))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render service order: %w", err)
	}
	return buf.Bytes(), nil
}
