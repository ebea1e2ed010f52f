package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION ID ====================

func GenerateSessionID() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingRef creates the reference printed on the ticket and sent to
// the operator.
func GenerateBookingRef() string {
	now := time.Now()

	// Format: DMB-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("DMB-%s-%s-%s", datePart, timePart, randomPart)
}
