package scheduler

import (
	"strings"
	"time"

	"github.com/guttosm/nsepulse/internal/logger"
	"github.com/scmhub/calendar"
)

// TradingCalendar reports whether an exchange trades on a calendar date.
type TradingCalendar interface {
	IsTradingDay(date time.Time) bool
}

// exchangeCalendar delegates to the scmhub/calendar definition of one MIC.
type exchangeCalendar struct {
	cal *calendar.Calendar
}

func (c exchangeCalendar) IsTradingDay(date time.Time) bool {
	loc := c.cal.Loc
	if loc == nil {
		loc = time.UTC
	}
	// Midday avoids the date shifting when the zone offset is applied.
	y, m, d := date.Date()
	return c.cal.IsBusinessDay(time.Date(y, m, d, 12, 0, 0, 0, loc))
}

// WeekdayCalendar treats Monday through Friday as trading days.
type WeekdayCalendar struct{}

func (WeekdayCalendar) IsTradingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NewTradingCalendar loads the exchange calendar for mic (ISO 10383, e.g. "xnse").
// Unknown codes fall back to WeekdayCalendar.
func NewTradingCalendar(mic string) TradingCalendar {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic != "" {
		if cal := calendar.GetCalendar(mic); cal != nil {
			return exchangeCalendar{cal: cal}
		}
	}
	logger.L().Warn().Str("mic", mic).Msg("exchange calendar not found, using weekday calendar")
	return WeekdayCalendar{}
}
