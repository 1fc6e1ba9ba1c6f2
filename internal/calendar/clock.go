package calendar

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (clock FixedClock) Now() time.Time {
	return clock.Instant
}

// Normalizer maps instants to Days in one reference timezone. It is the only
// place that reads the clock.
type Normalizer struct {
	location *time.Location
	clock    Clock
}

func NewNormalizer(location *time.Location, clock Clock) Normalizer {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return Normalizer{location: location, clock: clock}
}

func (normalizer Normalizer) Location() *time.Location {
	if normalizer.location == nil {
		return time.UTC
	}
	return normalizer.location
}

func (normalizer Normalizer) Now() time.Time {
	if normalizer.clock == nil {
		return time.Now().In(normalizer.Location())
	}
	return normalizer.clock.Now().In(normalizer.Location())
}

func (normalizer Normalizer) Day(value time.Time) Day {
	return FromTime(value, normalizer.Location())
}

func (normalizer Normalizer) Today() Day {
	return normalizer.Day(normalizer.Now())
}
