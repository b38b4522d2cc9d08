package utils

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// GenToken returns a url safe random token built from n random bytes.
func GenToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// ParseDate parses a YYYY-MM-DD form value into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
