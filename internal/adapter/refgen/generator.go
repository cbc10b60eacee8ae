package refgen

import (
	"crypto/rand"
	"time"
)

// Reference format: REF + YYYYMMDD + "-" + 6 uppercase alphanumerics.
// The random tail is a collision hint only; the ledger's unique
// constraint on reference is what actually enforces uniqueness.
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const randomLength = 6

// Generator implements usecase.ReferenceGenerator.
type Generator struct {
	now func() time.Time
}

// New creates a new Generator using the system clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock creates a Generator with an injected clock.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate produces a new transaction reference.
func (g *Generator) Generate() string {
	buf := make([]byte, randomLength)
	_, _ = rand.Read(buf)

	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}

	return "REF" + g.now().UTC().Format("20060102") + "-" + string(buf)
}
