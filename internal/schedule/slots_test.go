package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsFullOpenDay(t *testing.T) {
	// Studio X: 09:00–18:00, serviço de 30 min, agenda vazia.
	w := DayWindow{OpenMin: 540, CloseMin: 1080}

	starts := Slots(w, nil, 30, NoCutoff)

	require.Len(t, starts, 18)
	assert.Equal(t, 540, starts[0], "first slot 09:00")
	assert.Equal(t, 1050, starts[17], "last slot 17:30")
	for i := 1; i < len(starts); i++ {
		assert.Equal(t, 30, starts[i]-starts[i-1])
	}
}

func TestSlotsExcludesBookedStart(t *testing.T) {
	w := DayWindow{OpenMin: 540, CloseMin: 1080}
	busy := []Interval{{StartMin: 540, EndMin: 570}} // 09:00 reservado

	starts := Slots(w, busy, 30, NoCutoff)

	assert.NotContains(t, starts, 540)
	assert.Contains(t, starts, 570, "09:30 stays available")
	assert.Len(t, starts, 17)
}

func TestSlotsClosedDayAlwaysEmpty(t *testing.T) {
	w := DayWindow{Closed: true, OpenMin: 540, CloseMin: 1080}

	assert.Empty(t, Slots(w, nil, 30, NoCutoff))
	assert.Empty(t, Slots(w, []Interval{{StartMin: 600, EndMin: 630}}, 120, NoCutoff))
}

func TestSlotsSameDayCutoff(t *testing.T) {
	w := DayWindow{OpenMin: 540, CloseMin: 1080}

	// agora = 14:05 → nenhum slot antes de 14:15
	starts := Slots(w, nil, 30, 14*60+5)

	require.NotEmpty(t, starts)
	for _, s := range starts {
		assert.GreaterOrEqual(t, s, 14*60+15, "slot %s offered before cutoff", FormatHM(s))
	}
	assert.Equal(t, 14*60+30, starts[0])
}

func TestSlotsInvalidInputs(t *testing.T) {
	assert.Empty(t, Slots(DayWindow{OpenMin: 540, CloseMin: 1080}, nil, 0, NoCutoff))
	assert.Empty(t, Slots(DayWindow{OpenMin: 540, CloseMin: 1080}, nil, -30, NoCutoff))
	assert.Empty(t, Slots(DayWindow{OpenMin: 1080, CloseMin: 540}, nil, 30, NoCutoff))
	assert.Empty(t, Slots(DayWindow{OpenMin: 540, CloseMin: 540}, nil, 30, NoCutoff))
}

func TestSlotsDurationMustFitBeforeClose(t *testing.T) {
	w := DayWindow{OpenMin: 540, CloseMin: 660} // 09:00–11:00

	starts := Slots(w, nil, 90, NoCutoff)

	// 09:00+90 = 10:30 cabe; 09:30+90 = 11:00 encosta no fechamento e cabe.
	assert.Equal(t, []int{540, 570}, starts)
}

// Propriedade: todo slot retornado passa sem conflito pelo mesmo predicado
// usado na validação de criação — gerador e validador nunca divergem.
func TestSlotsNeverConflictWithBusySet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		w := DayWindow{OpenMin: 480, CloseMin: 1200}
		duration := (1 + rng.Intn(4)) * 30

		// conjunto ocupado aleatório sem sobreposição interna
		var busy []Interval
		cur := w.OpenMin
		for cur < w.CloseMin-60 {
			cur += rng.Intn(120)
			end := cur + 30 + rng.Intn(90)
			if end > w.CloseMin {
				break
			}
			busy = append(busy, Interval{StartMin: cur, EndMin: end})
			cur = end
		}

		for _, s := range Slots(w, busy, duration, NoCutoff) {
			assert.False(t, HasConflict(s, duration, busy),
				"slot %s (dur %d) conflicts with busy set %v", FormatHM(s), duration, busy)
		}
	}
}

// Propriedade: inserir os intervalos ocupados um a um nunca conflita entre
// si; um candidato que sobrepõe qualquer um deles é sempre rejeitado.
func TestValidatorAcceptsDisjointRejectsOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		var accepted []Interval
		cur := 480
		for len(accepted) < 5 {
			start := cur + rng.Intn(60)
			end := start + 30 + rng.Intn(60)
			require.False(t, HasConflict(start, end-start, accepted))
			accepted = append(accepted, Interval{StartMin: start, EndMin: end})
			cur = end
		}

		// candidato cruzando o meio de um intervalo aceito conflita sempre
		target := accepted[rng.Intn(len(accepted))]
		mid := (target.StartMin + target.EndMin) / 2
		assert.True(t, HasConflict(mid, 30, accepted))
	}
}
