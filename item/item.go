// Package item defines the Item resource, its notification events, and the
// validation rules applied to create and update payloads.
package item

import (
	"time"
)

// TimeLayout is the ISO 8601 layout used for createdAt, updatedAt and event
// timestamps. Millisecond precision, always UTC.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Item is the sole persisted entity, keyed by ID.
type Item struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Name        string  `json:"name" dynamodbav:"name"`
	Description string  `json:"description" dynamodbav:"description"`
	Price       float64 `json:"price" dynamodbav:"price"`
	CreatedAt   string  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   string  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Patch holds the fields of an update request. Nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name" validate:"omitnil,notblank"`
	Description *string  `json:"description" validate:"omitnil"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
}

// Empty reports whether the patch carries no recognized field.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// NextTimestamp returns the updatedAt value for a modification happening at
// now. The result is always strictly later than prev, even when the clock
// has not advanced past it.
func NextTimestamp(prev string, now time.Time) string {
	now = now.UTC().Truncate(time.Millisecond)
	if prev == "" {
		return FormatTime(now)
	}
	last, err := time.Parse(time.RFC3339Nano, prev)
	if err != nil {
		return FormatTime(now)
	}
	if !now.After(last) {
		now = last.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return FormatTime(now)
}
