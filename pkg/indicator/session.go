package indicator

import "time"

// China A-share continuous trading sessions, in minutes of the day (Beijing time)
const (
	morningOpenCN    = 9*60 + 30
	morningCloseCN   = 11*60 + 30
	afternoonOpenCN  = 13 * 60
	afternoonCloseCN = 15 * 60

	// TradingMinutesCN is the length of a full A-share trading day
	TradingMinutesCN = (morningCloseCN - morningOpenCN) + (afternoonCloseCN - afternoonOpenCN)
)

// CST is the exchange time zone. Asia/Shanghai is used when the tz database
// is available, otherwise a fixed UTC+8 zone (China has no daylight saving).
var CST = loadCST()

func loadCST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Shanghai"); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*3600)
}

// ElapsedTradingMinutesCN returns the number of A-share trading minutes that
// have passed at t (9:30-11:30 and 13:00-15:00 Beijing time). It is 0 before
// the open, 120 throughout the midday break and 240 at or after the close.
func ElapsedTradingMinutesCN(t time.Time) int {
	cst := t.In(CST)
	minuteOfDay := cst.Hour()*60 + cst.Minute()

	switch {
	case minuteOfDay < morningOpenCN:
		return 0
	case minuteOfDay >= afternoonCloseCN:
		return TradingMinutesCN
	case minuteOfDay <= morningCloseCN:
		return minuteOfDay - morningOpenCN
	case minuteOfDay <= afternoonOpenCN:
		return morningCloseCN - morningOpenCN
	default:
		return (morningCloseCN - morningOpenCN) + (minuteOfDay - afternoonOpenCN)
	}
}
