package order

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
)

const trackingPrefix = "SHP"

// newTrackingNumber returns the shipment tracking token: a fixed prefix plus
// eight uppercase hex characters from a v4 UUID. Collisions are statistically
// negligible and backstopped by the unique constraint on the column.
func newTrackingNumber() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate tracking number: %w", err)
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	return trackingPrefix + strings.ToUpper(hex[:8]), nil
}
