package domain

type Month string

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

// Months is in calendar order.
var Months = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// MonthNames returns the canonical names in calendar order.
func MonthNames() []string {
	out := make([]string, len(Months))
	for i, m := range Months {
		out[i] = string(m)
	}
	return out
}

// ParseMonth matches the canonical English name exactly.
func ParseMonth(s string) (Month, bool) {
	for _, m := range Months {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

func (m Month) String() string { return string(m) }
