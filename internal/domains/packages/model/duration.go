package model

import (
	"regexp"
	"strconv"
	"strings"
)

// DurationBucket is one coarse trip-length range used by the catalog filter.
type DurationBucket struct {
	Label   string
	MinDays int
	MaxDays int // 0 means open-ended
}

// Buckets the catalog accepts, keyed by the label the query carries.
var DurationBuckets = []DurationBucket{
	{Label: "1-3", MinDays: 1, MaxDays: 3},
	{Label: "4-7", MinDays: 4, MaxDays: 7},
	{Label: "8-14", MinDays: 8, MaxDays: 14},
	{Label: "15-21", MinDays: 15, MaxDays: 21},
	{Label: "22-30", MinDays: 22, MaxDays: 30},
	{Label: "30+", MinDays: 31},
}

func BucketByLabel(label string) (DurationBucket, bool) {
	for _, bucket := range DurationBuckets {
		if bucket.Label == label {
			return bucket, true
		}
	}

	return DurationBucket{}, false
}

var (
	dayCountPattern = regexp.MustCompile(`(\d+)\s*d`)
	anyNumber       = regexp.MustCompile(`\d+`)
)

// ParseDurationDays extracts a day count from a free-text duration label:
// "5 Days" and "5N/6D" both parse ("5" and "6"), preferring the number
// attached to a day marker over the first number found. Labels with no
// digits return nil; such packages fall outside every bucket filter but
// are still listed when no duration filter is set.
func ParseDurationDays(label string) *int {
	lower := strings.ToLower(label)

	match := dayCountPattern.FindStringSubmatch(lower)

	var raw string

	if match != nil {
		raw = match[1]
	} else {
		raw = anyNumber.FindString(lower)
	}

	if raw == "" {
		return nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return nil
	}

	return &days
}
