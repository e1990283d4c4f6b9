package schedule

import (
	"strings"
	"time"
)

// ===============================
// Weekday normalization
// ===============================

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (w Weekday) String() string {
	switch w {
	case Sunday:
		return "sunday"
	case Monday:
		return "monday"
	case Tuesday:
		return "tuesday"
	case Wednesday:
		return "wednesday"
	case Thursday:
		return "thursday"
	case Friday:
		return "friday"
	case Saturday:
		return "saturday"
	}
	return "unknown"
}

func WeekdayOf(date time.Time) Weekday {
	return Weekday(int(date.Weekday()))
}

// remove acentos comuns em chaves de dias da semana ("terça", "sábado")
var deaccent = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u",
	"ç", "c",
)

var weekdayAliases = map[string]Weekday{
	"sunday":    Sunday,
	"domingo":   Sunday,
	"monday":    Monday,
	"segunda":   Monday,
	"tuesday":   Tuesday,
	"terca":     Tuesday,
	"wednesday": Wednesday,
	"quarta":    Wednesday,
	"thursday":  Thursday,
	"quinta":    Thursday,
	"friday":    Friday,
	"sexta":     Friday,
	"saturday":  Saturday,
	"sabado":    Saturday,
}

// ParseWeekday aceita as variantes que aparecem nos dados de configuração:
// nome em inglês ("tuesday"), nome completo em português ("terça-feira"),
// forma curta ("terça") e forma sem acento ("terca", "terca-feira").
func ParseWeekday(key string) (Weekday, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = deaccent.Replace(k)
	k = strings.TrimSuffix(k, "-feira")
	k = strings.TrimSuffix(k, " feira")

	w, ok := weekdayAliases[k]
	return w, ok
}
