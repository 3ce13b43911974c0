package store

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases name, folds accents, turns whitespace runs into '-' and drops anything outside [a-z0-9-].
func Slugify(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
		inSpace = false
	}
	return b.String()
}

func base36Millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// itemID builds slug-<base36 millis>, bumping the timestamp until taken reports false.
func itemID(prefix, name string, now time.Time, taken func(string) bool) string {
	slug := Slugify(name)
	for {
		id := prefix + slug + "-" + base36Millis(now)
		if !taken(id) {
			return id
		}
		now = now.Add(time.Millisecond)
	}
}

func randomSuffix() string {
	u := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	for len(s) < 7 {
		s = "0" + s
	}
	return s[:7]
}

const launchIDPrefix = "launch-"

func newLaunchID(now time.Time) string {
	return launchIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + randomSuffix()
}

func newSubtaskID(now time.Time) string {
	return "subtask-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + randomSuffix()
}
