package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrackingNumberPrefix starts every tracking number.
const TrackingNumberPrefix = "PAN"

// TrackingNumberGenerator builds PAN-<TS36>-<RAND8> candidates.
type TrackingNumberGenerator struct {
	now    func() time.Time
	random func() string
}

// GeneratorOption customizes a TrackingNumberGenerator.
type GeneratorOption func(*TrackingNumberGenerator)

// WithGeneratorClock overrides the time source.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *TrackingNumberGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRandomToken overrides the random suffix source.
func WithRandomToken(random func() string) GeneratorOption {
	return func(g *TrackingNumberGenerator) {
		if random != nil {
			g.random = random
		}
	}
}

// NewTrackingNumberGenerator returns a generator backed by the wall clock and
// random UUIDs.
func NewTrackingNumberGenerator(opts ...GeneratorOption) *TrackingNumberGenerator {
	g := &TrackingNumberGenerator{now: time.Now, random: randomToken}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a new candidate. Uniqueness is enforced by storage.
func (g *TrackingNumberGenerator) Next() string {
	ts := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))
	return TrackingNumberPrefix + "-" + ts + "-" + strings.ToUpper(g.random())
}

func randomToken() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// NormalizeTrackingNumber canonicalizes user input for lookups.
func NormalizeTrackingNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
