package number

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucket(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "03-2024-DEVELOPMENT", Bucket(date, "development"))
	assert.Equal(t, "12-2025-CONSULTING", Bucket(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), "consulting"))
}

func TestFormat(t *testing.T) {
	bucket := Bucket(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "development")

	pattern := regexp.MustCompile(`^03-2024-DEVELOPMENT-\d{3}$`)
	assert.Regexp(t, pattern, Format(bucket, 1))
	assert.Equal(t, "03-2024-DEVELOPMENT-001", Format(bucket, 1))
	assert.Equal(t, "03-2024-DEVELOPMENT-042", Format(bucket, 42))

	// Sequences past three digits keep growing instead of wrapping.
	assert.Equal(t, "03-2024-DEVELOPMENT-1000", Format(bucket, 1000))
}
