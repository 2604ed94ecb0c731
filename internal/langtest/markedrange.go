// Package langtest provides the fixture-building DSL tests throughout
// this module share: a marked-range source annotation (grounded on
// original_source's tests/dsl/marked_range.py) and a txtar-backed
// multi-document workspace builder.
package langtest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/liancheng/joule/protocol"
)

var markGroupRe = regexp.MustCompile(`(\^+)(\d+)`)
var markerLineRe = regexp.MustCompile(`^[ \t^0-9]+$`)

// ParseMarkedRanges strips caret marker lines out of source — a line
// consisting solely of whitespace, carets, and digits is read as
// pointing at the line immediately above it, with each run of carets
// followed by a digit forming one named Range — and returns the
// stripped source plus the ranges keyed by that digit. Only single-line
// spans are supported; no test fixture in this module needs a span
// crossing a line break.
func ParseMarkedRanges(source string) (string, map[int]protocol.Range) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	ranges := make(map[int]protocol.Range)

	for _, line := range lines {
		if len(out) > 0 && isMarkerLine(line) {
			annotated := uint32(len(out) - 1)
			for _, m := range markGroupRe.FindAllStringSubmatchIndex(line, -1) {
				caretStart, caretEnd := m[2], m[3]
				idStart, idEnd := m[4], m[5]
				id, err := strconv.Atoi(line[idStart:idEnd])
				if err != nil {
					continue
				}
				ranges[id] = protocol.NewRange(annotated, uint32(caretStart), annotated, uint32(caretEnd))
			}
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), ranges
}

func isMarkerLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return markerLineRe.MatchString(line) && markGroupRe.MatchString(line)
}

// ParseMarkedLocations is ParseMarkedRanges with each Range paired with
// u to form a Location, for fixtures that need a ready-to-compare
// definition or reference target.
func ParseMarkedLocations(source string, u protocol.URI) (string, map[int]protocol.Location) {
	stripped, ranges := ParseMarkedRanges(source)
	locs := make(map[int]protocol.Location, len(ranges))
	for id, r := range ranges {
		locs[id] = protocol.Location{URI: u, Range: r}
	}
	return stripped, locs
}
