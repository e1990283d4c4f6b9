package schedule

// ===============================
// Slot generation
// ===============================

const (
	// StepMinutes é a granularidade fixa dos slots, ancorada na abertura.
	StepMinutes = 30

	// CutoffBufferMinutes evita oferecer horários prestes a passar quando a
	// data é hoje.
	CutoffBufferMinutes = 10

	// NoCutoff desativa o corte de mesmo dia.
	NoCutoff = -1
)

// Slots enumera os horários de início agendáveis de um dia, em minutos do
// dia, em ordem crescente. Candidatos a cada StepMinutes a partir da
// abertura; incluídos apenas quando start+duration cabe até o fechamento,
// nenhum intervalo ocupado sobrepõe (mesmo predicado de Overlaps) e, com
// cutoffMin >= 0, o início não é anterior a cutoffMin+CutoffBufferMinutes.
//
// Entradas inválidas (janela fechada, duração <= 0, abertura >= fechamento)
// retornam lista vazia: "nada agendável" nunca é erro.
func Slots(w DayWindow, busy []Interval, durationMin, cutoffMin int) []int {
	if w.Closed || durationMin <= 0 || w.OpenMin >= w.CloseMin {
		return nil
	}

	minStart := -1
	if cutoffMin >= 0 {
		minStart = cutoffMin + CutoffBufferMinutes
	}

	var starts []int
	for s := w.OpenMin; s+durationMin <= w.CloseMin; s += StepMinutes {
		if s < minStart {
			continue
		}
		if HasConflict(s, durationMin, busy) {
			continue
		}
		starts = append(starts, s)
	}

	return starts
}
