package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// EstimateETA extrapolates the remaining time of a batch from the average
// time per completed expression. It returns 0 until something has completed.
func EstimateETA(done, total int, elapsed time.Duration) time.Duration {
	if done <= 0 || total <= done {
		return 0
	}
	perItem := elapsed / time.Duration(done)
	return perItem * time.Duration(total-done)
}

// FormatBatchProgress renders "<bar> done/total (pct%) ETA x" for a batch.
func FormatBatchProgress(done, total int, elapsed time.Duration, width int) string {
	progress := 0.0
	if total > 0 {
		progress = float64(done) / float64(total)
	}
	eta := EstimateETA(done, total, elapsed)
	return fmt.Sprintf("%s %d/%d (%.1f%%) ETA %s",
		ProgressBar(progress, width), done, total, progress*100, FormatETA(eta))
}
