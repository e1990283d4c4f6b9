package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ===============================
// Operating hours (JSONB)
// ===============================

// DayHours é a configuração de um dia da semana como chega da tela de
// configurações. A chave do mapa pode vir em qualquer uma das variantes
// aceitas por ParseWeekday.
type DayHours struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

// OperatingHours é o mapa weekday → DayHours persistido como jsonb.
type OperatingHours map[string]DayHours

func (h OperatingHours) Value() (driver.Value, error) {
	if h == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(h)
}

func (h *OperatingHours) Scan(value interface{}) error {
	if value == nil {
		*h = OperatingHours{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("operating hours: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, h)
}

// Entry resolve a entrada de um dia canônico, normalizando as chaves do
// mapa. Chaves inválidas são ignoradas em vez de propagadas.
func (h OperatingHours) Entry(w Weekday) (DayHours, bool) {
	for key, day := range h {
		if parsed, ok := ParseWeekday(key); ok && parsed == w {
			return day, true
		}
	}
	return DayHours{}, false
}

// ===============================
// Day window resolution
// ===============================

// DayWindow é a janela aberta/fechada de um dia em minutos do dia.
type DayWindow struct {
	Closed   bool `json:"closed"`
	OpenMin  int  `json:"open_min"`
	CloseMin int  `json:"close_min"`
}

// DefaultWindow é a política fail-open: configuração ausente não bloqueia
// agendamento.
func DefaultWindow() DayWindow {
	return DayWindow{Closed: false, OpenMin: 0, CloseMin: 23*60 + 59}
}

// ResolveDayWindow resolve a janela aplicável de um dia: entrada do
// profissional (quando existe e não está fechada) tem precedência sobre a
// do salão; sem nenhuma das duas vale DefaultWindow. Função pura.
func ResolveDayWindow(salonHours, professionalHours OperatingHours, date time.Time) DayWindow {
	w := WeekdayOf(date)

	if day, ok := professionalHours.Entry(w); ok && !day.Closed {
		return windowFromDay(day)
	}

	if day, ok := salonHours.Entry(w); ok {
		return windowFromDay(day)
	}

	return DefaultWindow()
}

func windowFromDay(day DayHours) DayWindow {
	if day.Closed {
		return DayWindow{Closed: true}
	}

	open, err1 := ParseHM(day.Open)
	closeMin, err2 := ParseHM(day.Close)
	if err1 != nil || err2 != nil {
		// horário mal formado → fail-open
		return DefaultWindow()
	}

	return DayWindow{OpenMin: open, CloseMin: closeMin}
}

// ===============================
// HH:MM helpers
// ===============================

// ParseHM converte "HH:MM" em minutos do dia.
func ParseHM(hm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hm), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", hm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", hm)
	}

	return h*60 + m, nil
}

// FormatHM converte minutos do dia em "HH:MM".
func FormatHM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
