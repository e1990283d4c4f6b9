package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn é a data local do salão no formato usado nas linhas de
// agendamento.
func TodayIn(tz string) string {
	return NowIn(tz).Format(DateLayout)
}

// ParseDateIn interpreta "YYYY-MM-DD" como data de relógio de parede no
// fuso do salão.
func ParseDateIn(tz string, date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}

// MinutesOfDay converte um instante nos minutos do dia locais, para o
// corte de mesmo dia do gerador de slots.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
