// Copyright 2025 Pressgather Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pressgather/pressgather/core"
)

// CanonicalDateLayout is the target form every parseable date is rendered in.
const CanonicalDateLayout = "2006/01/02"

// Clock supplies the current time. Injectable so relative dates
// ("3 days ago") are testable against a fixed reference point.
type Clock func() time.Time

var relativeDate = regexp.MustCompile(`(\d+)\s*(minute|hour|day|week|month|year)s?\s*ago`)

// explicitLayouts are tried in order; the first successful parse wins.
// The ordering is significant for ambiguous day/month values: US-style
// MM/DD is attempted before DD/MM.
var explicitLayouts = []string{
	"01/02/06 3:04:05 PM",  // 04/24/25 8:08:11 PM
	"2006-01-02T15:04:05",  // 2025-05-07T23:35:35
	"2006-01-02 15:04:05",  // 2025-05-07 23:35:35
	"01/02/2006",           // 04/24/2025
	"2006-01-02",           // 2025-05-07
	"02/01/2006",           // 24/04/2025
	"January 2, 2006",      // May 7, 2025
	"Jan 2, 2006",          // May 7, 2025
	"02-01-2006",           // 07-05-2025
	"2006/01/02",           // already canonical
}

// flexibleLayouts stand in for a locale-flexible generic parser: looser
// shapes that show up in wire formats and feed metadata.
var flexibleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Jan 2 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2006.01.02",
	"Mon, 2 Jan 2006 15:04:05",
}

// Dates converts arbitrary date text into the canonical YYYY/MM/DD form.
//
// The final fallback deliberately returns the original text unchanged rather
// than the Sentinel: a date that exists but cannot be parsed stays visible
// downstream instead of being erased. Sentinel is reserved for input that is
// empty, missing, or already Sentinel.
type Dates struct {
	clock Clock
}

// NewDates creates a date normalizer. A nil clock defaults to time.Now.
func NewDates(clock Clock) *Dates {
	if clock == nil {
		clock = time.Now
	}
	return &Dates{clock: clock}
}

// Normalize converts date text to YYYY/MM/DD, the Sentinel, or — when no
// tier can parse it — the original string. It never fails.
func (d *Dates) Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == core.Sentinel {
		return core.Sentinel
	}

	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "ago") {
		if m := relativeDate.FindStringSubmatch(lower); m != nil {
			return d.resolveRelative(m[1], m[2])
		}
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}

	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}

	return trimmed
}

// resolveRelative subtracts "<N> <unit>" from the injected clock.
// Months approximate to 30 days and years to 365 days.
func (d *Dates) resolveRelative(number, unit string) string {
	n, err := strconv.Atoi(number)
	if err != nil {
		return core.Sentinel
	}

	var delta time.Duration
	switch unit {
	case "minute":
		delta = time.Duration(n) * time.Minute
	case "hour":
		delta = time.Duration(n) * time.Hour
	case "day":
		delta = time.Duration(n) * 24 * time.Hour
	case "week":
		delta = time.Duration(n) * 7 * 24 * time.Hour
	case "month":
		delta = time.Duration(n) * 30 * 24 * time.Hour
	case "year":
		delta = time.Duration(n) * 365 * 24 * time.Hour
	}

	return d.clock().Add(-delta).Format(CanonicalDateLayout)
}
