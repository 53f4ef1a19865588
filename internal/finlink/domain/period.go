package domain

import (
	"fmt"
	"time"
)

// Period is a transactions-page time filter.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	case "":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Start is the first instant covered when looking back from now. "all" is
// three years.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	case PeriodAll:
		return now.AddDate(-3, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// SampleSize is how many simulated transactions the period shows.
func (p Period) SampleSize() int {
	switch p {
	case PeriodWeek:
		return 20
	case PeriodYear:
		return 100
	case PeriodAll:
		return 150
	default:
		return 50
	}
}
