package timer

import "fmt"

// FormatDisplay renders elapsed seconds as HH:MM:SS.
func FormatDisplay(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
