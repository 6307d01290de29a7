package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"swiftdrop/internal/pkg/errs"
)

const (
	// TrackingNumberPrefix starts every tracking number issued by the service.
	TrackingNumberPrefix = "BB"

	trackingTimestampDigits = 8
	trackingRandomChars     = 4
	trackingAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not created
// through NewTrackingNumber or TrackingNumberFromString.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking number must be created via NewTrackingNumber or TrackingNumberFromString")

var trackingNumberPattern = regexp.MustCompile(`^BB\d{8}[A-Z0-9]{4}$`)

// TrackingNumber is the customer-facing identifier of an order.
// The format is "BB" followed by the last eight digits of the creation unix
// timestamp and four random uppercase alphanumeric characters, e.g. "BB56891234K7QX".
//
// The format is informational, not cryptographically unique: global uniqueness is
// enforced by the unique index on the orders table, and order creation retries
// generation on a collision.
//
// The zero value is invalid; use the constructors.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber generates a tracking number for an order created at the given time.
func NewTrackingNumber(createdAt time.Time) TrackingNumber {
	ts := fmt.Sprintf("%d", createdAt.Unix())
	if len(ts) > trackingTimestampDigits {
		ts = ts[len(ts)-trackingTimestampDigits:]
	} else {
		ts = fmt.Sprintf("%0*s", trackingTimestampDigits, ts)
	}

	suffix := make([]byte, trackingRandomChars)
	for i := range suffix {
		suffix[i] = trackingAlphabet[rand.IntN(len(trackingAlphabet))] //nolint:gosec // not a security token
	}

	return TrackingNumber{value: TrackingNumberPrefix + ts + string(suffix)}
}

// TrackingNumberFromString parses and validates a tracking number received from
// persistence or from the API.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking number", fmt.Errorf("%q does not match format BB<8 digits><4 alphanumerics>", s))
	}
	return TrackingNumber{value: s}, nil
}

// String returns the tracking number text, e.g. "BB56891234K7QX".
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual compares two tracking numbers for equality.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks that the tracking number was created through a constructor.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
