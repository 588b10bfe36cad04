package frame

import "fmt"

// FormatTimestamp renders whole seconds as HH:MM:SS. Hours are not wrapped
// into days, so 90000 seconds is "25:00:00".
func FormatTimestamp(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
