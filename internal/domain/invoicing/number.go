package invoicing

import (
	"crypto/rand"
	"io"
	"regexp"
	"time"
)

const (
	numberPrefix   = "INV-"
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength   = 4
)

var numberPattern = regexp.MustCompile(`^INV-\d{8}-[A-Z0-9]{4}$`)

// NumberGenerator produces candidate invoice numbers of the form INV-YYYYMMDD-XXXX.
type NumberGenerator struct {
	random io.Reader
	now    func() time.Time
}

// NewNumberGenerator returns a generator backed by crypto/rand
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{random: rand.Reader, now: time.Now}
}

// NewNumberGeneratorWithSource is used in tests to make generation deterministic
func NewNumberGeneratorWithSource(random io.Reader, now func() time.Time) *NumberGenerator {
	return &NumberGenerator{random: random, now: now}
}

// Next returns a candidate number for today; uniqueness is checked by the caller
func (g *NumberGenerator) Next() (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	suffix := make([]byte, suffixLength)
	for i, b := range buf {
		suffix[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return numberPrefix + g.now().UTC().Format("20060102") + "-" + string(suffix), nil
}

// IsGeneratedNumber reports whether s has the generated INV-YYYYMMDD-XXXX shape
func IsGeneratedNumber(s string) bool {
	return numberPattern.MatchString(s)
}
