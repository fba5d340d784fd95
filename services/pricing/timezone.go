package pricing

import "time"

// ISTOffset is the display shift applied to stored UTC timestamps.
const ISTOffset = 5*time.Hour + 30*time.Minute

const istLayout = "Jan 02, 2006 03:04 PM"

var istZone = time.FixedZone("IST", int(ISTOffset/time.Second))

// ConvertToIST returns the same instant expressed in Indian Standard Time.
// Only display code should use it; prices are computed on raw timestamps.
func ConvertToIST(t time.Time) time.Time {
	return t.In(istZone)
}

// FormatInIST renders t as e.g. "Mar 05, 2025 02:30 PM IST".
func FormatInIST(t time.Time) string {
	return ConvertToIST(t).Format(istLayout) + " IST"
}
