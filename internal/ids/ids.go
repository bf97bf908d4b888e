// Package ids generates the human-readable identifiers handed back to
// people who submit a form. They look like CO-MGX5T1JK-3F9QZ0AB: a prefix,
// the base36 millisecond timestamp and a base36 random suffix.
//
// Uniqueness is probabilistic. Nothing checks the sheet for collisions.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	RegistrationPrefix = "CO"
	ContactPrefix      = "CONTACT"
)

// randomDigits is the length of the random base36 suffix.
const randomDigits = 8

// 36^randomDigits
var randomSpace = func() uint64 {
	n := uint64(1)
	for i := 0; i < randomDigits; i++ {
		n *= 36
	}
	return n
}()

type Generator struct {
	now  func() time.Time
	rand io.Reader
}

func New() *Generator {
	return &Generator{now: time.Now, rand: rand.Reader}
}

// NewWith builds a generator on a fixed clock and random source.
func NewWith(now func() time.Time, r io.Reader) *Generator {
	return &Generator{now: now, rand: r}
}

func (g *Generator) Next(prefix string) (string, error) {
	var b [8]byte
	if _, err := io.ReadFull(g.rand, b[:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	n := binary.BigEndian.Uint64(b[:]) % randomSpace

	ts := strconv.FormatInt(g.now().UnixMilli(), 36)
	suffix := strconv.FormatUint(n, 36)
	if len(suffix) < randomDigits {
		suffix = strings.Repeat("0", randomDigits-len(suffix)) + suffix
	}
	return strings.ToUpper(prefix + "-" + ts + "-" + suffix), nil
}

func (g *Generator) Registration() (string, error) { return g.Next(RegistrationPrefix) }

func (g *Generator) Contact() (string, error) { return g.Next(ContactPrefix) }
