package message

import (
	"strings"
	"unicode/utf8"
)

// Length budget, in Unicode code points. The webhook rejects content above
// 4096 and counts some characters differently, so the limits sit well below.
const (
	SoftLimit        = 3000
	HardLimit        = 3500
	HardCut          = 3400
	LineLimit        = 200
	DescriptionLimit = 100

	ellipsis        = "..."
	truncatedNotice = "\n...\n*消息过长已截断*"
)

// Length counts code points, the unit every limit is expressed in.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Fit returns content unchanged when it is within SoftLimit, and the
// Optimize'd content otherwise. The flag reports whether Optimize ran.
func Fit(content string) (string, bool) {
	if Length(content) <= SoftLimit {
		return content, false
	}
	return Optimize(content), true
}

// Optimize shrinks content line by line: game cover images are dropped,
// descriptions are clipped to DescriptionLimit and other lines to LineLimit.
// If the result still exceeds HardLimit it is cut to HardCut and a
// truncation notice is appended.
func Optimize(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "![") && strings.Contains(line, coverAlt):
			continue
		case strings.HasPrefix(line, descriptionPrefix):
			desc := strings.TrimSpace(strings.ReplaceAll(line, descriptionPrefix, ""))
			if Length(desc) > DescriptionLimit {
				line = descriptionPrefix + " " + Clip(desc, DescriptionLimit) + ellipsis
			}
		case Length(line) > LineLimit:
			line = Clip(line, LineLimit) + ellipsis
		}
		out = append(out, line)
	}

	optimized := strings.Join(out, "\n")
	if Length(optimized) > HardLimit {
		optimized = Clip(optimized, HardCut) + truncatedNotice
	}

	return optimized
}

// Clip keeps the first n code points of s.
func Clip(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
