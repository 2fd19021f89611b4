package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTimestamp renders fractional seconds in the SRT timestamp form
// HH:MM:SS,mmm. Hours are not wrapped to days, and the millisecond component
// is truncated rather than rounded. Behavior for negative input is
// unspecified.
func FormatTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := int(math.Mod(seconds, 60))
	millis := int(math.Mod(seconds, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp back to seconds using the exact
// inverse arithmetic of FormatTimestamp. A period is tolerated in place of
// the standard comma millisecond separator.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
