package export

import (
	"fmt"
	"math"
)

// formatTimecode renders seconds as a subtitle timestamp, e.g. 3725.5 with
// separator "," becomes "01:02:05,500". Components truncate rather than
// round, matching SRT/VTT player expectations.
func formatTimecode(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int((seconds - math.Trunc(seconds)) * 1000)
	h := int(seconds / 3600)
	m := int(math.Mod(seconds, 3600) / 60)
	s := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}

// secondsOrZero unwraps an optional timing value, defaulting to 0.
func secondsOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
