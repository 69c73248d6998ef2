/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package timeutil parses and formats the lenient ISO-8601 timestamps that
// schedule templates declare. The core solver uses it only to measure a
// declared start/end window in minutes; converting minute offsets to
// wall-clock times happens at the protocol boundary.
package timeutil

import (
	"strings"
	"time"
)

// Layout is the canonical output form for wall-clock times.
const Layout = "2006-01-02T15:04:05"

var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse accepts ISO-8601 date-times with or without seconds, space-separated
// variants, and date-only strings (treated as midnight). A trailing Z or
// numeric timezone offset is stripped before parsing. The second return is
// false when no accepted form matches.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSuffix(s, "Z")
	if pos := strings.LastIndex(s, "+"); pos > 10 {
		s = s[:pos]
	}
	if len(s) > 19 && s[19] == '-' {
		s = s[:19]
	}
	if len(s) > 16 && s[16] == '-' {
		s = s[:16]
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders a wall-clock time in the canonical output form.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// MinutesBetween returns the whole minutes from start to end, truncated
// toward zero.
func MinutesBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Minute)
}
