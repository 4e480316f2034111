package entity

import "fmt"

// HumanSize formats a byte count with unit step-up (B, KB, MB, GB).
// Note: the legacy document mapping intentionally does NOT use this; it
// always renders kilobytes with one decimal, matching what the old
// articles-based deployments produced.
func HumanSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
	}
}
