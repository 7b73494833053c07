package dumpstore

import (
	"encoding/binary"
	"time"
	"unicode"
)

// Key prefix for dump entries.
const dumpPrefix = "pagedump"

// makeDumpKey generates a composite key for one dump entry.
// Format: prefix:keyword:page:timestamp. The timestamp is written in
// BigEndian nanoseconds so lexicographic iteration follows write order and
// concurrent writers for the same (keyword, page) never collide.
func makeDumpKey(keyword string, page int, ts time.Time) []byte {
	prefix := dumpPrefix + ":" + sanitizeKeyword(keyword) + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for page + 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(page))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(ts.UnixNano()))
	return buf
}

// makeKeywordPrefix generates the iteration prefix for one keyword's dumps.
func makeKeywordPrefix(keyword string) []byte {
	return []byte(dumpPrefix + ":" + sanitizeKeyword(keyword) + ":")
}

// sanitizeKeyword keeps letters and digits, replaces everything else with
// an underscore, and caps the result at 30 runes.
func sanitizeKeyword(keyword string) string {
	runes := []rune(keyword)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out[i] = r
		} else {
			out[i] = '_'
		}
	}
	return string(out)
}
