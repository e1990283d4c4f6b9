package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tuesday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestResolveDayWindowProfessionalPrecedence(t *testing.T) {
	salon := OperatingHours{"tuesday": {Open: "09:00", Close: "18:00"}}
	pro := OperatingHours{"terça-feira": {Open: "13:00", Close: "20:00"}}

	w := ResolveDayWindow(salon, pro, tuesday)

	require.False(t, w.Closed)
	assert.Equal(t, 13*60, w.OpenMin, "professional window wins over salon window")
	assert.Equal(t, 20*60, w.CloseMin)
}

func TestResolveDayWindowClosedProfessionalFallsBackToSalon(t *testing.T) {
	salon := OperatingHours{"tuesday": {Open: "09:00", Close: "18:00"}}
	pro := OperatingHours{"tuesday": {Closed: true}}

	w := ResolveDayWindow(salon, pro, tuesday)

	require.False(t, w.Closed)
	assert.Equal(t, 9*60, w.OpenMin)
}

func TestResolveDayWindowSalonClosedDay(t *testing.T) {
	salon := OperatingHours{"terca": {Closed: true}}

	w := ResolveDayWindow(salon, nil, tuesday)

	assert.True(t, w.Closed)
}

func TestResolveDayWindowFailOpenDefault(t *testing.T) {
	// Sem configuração nenhuma o dia fica aberto, nunca bloqueado.
	w := ResolveDayWindow(nil, nil, tuesday)

	require.False(t, w.Closed)
	assert.Equal(t, 0, w.OpenMin)
	assert.Equal(t, 23*60+59, w.CloseMin)
}

func TestResolveDayWindowMalformedTimesFailOpen(t *testing.T) {
	salon := OperatingHours{"tuesday": {Open: "nove", Close: "18:00"}}

	w := ResolveDayWindow(salon, nil, tuesday)

	assert.False(t, w.Closed)
	assert.Equal(t, DefaultWindow(), w)
}

func TestParseHM(t *testing.T) {
	min, err := ParseHM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	for _, bad := range []string{"", "9h30", "24:00", "09:60", "09"} {
		_, err := ParseHM(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatHM(t *testing.T) {
	assert.Equal(t, "09:00", FormatHM(540))
	assert.Equal(t, "17:30", FormatHM(1050))
	assert.Equal(t, "00:00", FormatHM(0))
}

func TestOperatingHoursScanValue(t *testing.T) {
	h := OperatingHours{"segunda": {Open: "08:00", Close: "12:00"}}

	raw, err := h.Value()
	require.NoError(t, err)

	var back OperatingHours
	require.NoError(t, back.Scan(raw))
	assert.Equal(t, h, back)

	var empty OperatingHours
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
}
