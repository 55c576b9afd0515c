// internal/daily/daily.go
//
// Deterministic "puzzle of the day" selection.
// The target for a date is HMAC-SHA256(salt, YYYY-MM-DD) modulo the
// dictionary size, so every process with the same salt and word list
// agrees on the day's word.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey parses a YYYY-MM-DD key.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: bad date %q: %w", s, err)
	}
	return t, nil
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus source
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Target returns the word for date, or "" for an empty list.
func Target(date time.Time, salt string, words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[WordIndex(date, salt, len(words))]
}
