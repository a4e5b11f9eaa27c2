package procurement

import (
	"time"

	"github.com/mccmmj/cafe-web-sub007/internal/domain"
)

// periodLayout clave canónica de período mensual, ej. "2024-03".
const periodLayout = "2006-01"

// PeriodKey clave "YYYY-MM" del mes al que pertenece un instante (en UTC).
func PeriodKey(t time.Time) string {
	return t.UTC().Format(periodLayout)
}

// PeriodBounds ventana [inicio, fin) del mes en UTC para una clave "YYYY-MM".
// Devuelve domain.ErrInvalidInput si la clave no es canónica.
func PeriodBounds(period string) (start, end time.Time, err error) {
	start, perr := time.Parse(periodLayout, period)
	if perr != nil || PeriodKey(start) != period {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return start, start.AddDate(0, 1, 0), nil
}
