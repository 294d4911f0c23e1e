package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderID mints a human-readable order id like ORD-483920117:
// the last six digits of the unix-millisecond clock plus three random digits.
func GenerateOrderID() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	random := fmt.Sprintf("%03d", rand.Intn(1000))
	return fmt.Sprintf("ORD-%s%s", ts, random)
}

// GenerateQRPayload mints the one-time QR token embedded in an order
func GenerateQRPayload(orderID string) string {
	return fmt.Sprintf("QUICKSPIN_%s_%d", orderID, time.Now().UnixMilli())
}
