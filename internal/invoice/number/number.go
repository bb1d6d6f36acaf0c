// Package number builds sequential invoice numbers of the form
// MM-YYYY-CATEGORY-NNN, where the sequence resets per month, year and
// project category bucket.
package number

import (
	"fmt"
	"strings"
	"time"
)

// Bucket returns the counter key for a given invoice date and category.
func Bucket(date time.Time, category string) string {
	return fmt.Sprintf("%02d-%04d-%s", date.Month(), date.Year(), strings.ToUpper(category))
}

// Format renders the final invoice number from a bucket key and sequence.
// The sequence is zero padded to three digits but grows past 999 unharmed.
func Format(bucket string, seq int64) string {
	return fmt.Sprintf("%s-%03d", bucket, seq)
}
