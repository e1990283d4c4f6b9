package schedule

// ===============================
// Conflict predicate
// ===============================

// Interval é um intervalo meio-aberto [StartMin, EndMin) em minutos do dia.
type Interval struct {
	StartMin int
	EndMin   int
}

// Overlaps é O predicado de sobreposição usado pelo gerador de slots, pela
// validação de criação e pela validação de reagendamento. Intervalos
// meio-abertos: encostar (bStart == aEnd) não é conflito, agendamentos
// consecutivos são permitidos.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return bStart < aEnd && bEnd > aStart
}

// HasConflict verifica se um candidato [startMin, startMin+durationMin)
// sobrepõe algum intervalo ocupado. Os intervalos ocupados devem vir já
// filtrados por profissional, data e status não cancelado.
func HasConflict(startMin, durationMin int, busy []Interval) bool {
	end := startMin + durationMin
	for _, b := range busy {
		if Overlaps(startMin, end, b.StartMin, b.EndMin) {
			return true
		}
	}
	return false
}
