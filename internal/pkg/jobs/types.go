package jobs

import "fmt"

// Summary reports what one pipeline tick did. It is rendered as the
// plain-text body of the scheduled-job endpoint.
type Summary struct {
	Scanned   int `json:"scanned"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func (s Summary) String() string {
	if s.Scanned == 0 {
		return "Nenhum job pendente"
	}
	return fmt.Sprintf("Jobs executados: %d agendamentos, %d OS geradas, %d ignorados, %d falhas",
		s.Scanned, s.Generated, s.Skipped, s.Failed)
}
