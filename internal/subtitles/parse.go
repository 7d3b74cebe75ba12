package subtitles

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ParseFile reads an SRT file and returns its cues in file order.
func ParseFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(string(data))
}

// Parse extracts cues from SRT content. Blocks are separated by blank lines;
// each block carries an optional ordinal, a timing line, and text lines.
// Blocks without a valid timing line are skipped. A cue whose end precedes
// its start is clamped to a zero-length span.
func Parse(content string) ([]Cue, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		lines := splitBlockLines(block)
		if len(lines) == 0 {
			continue
		}

		// Optional ordinal line before the timing line.
		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 || timingIdx > 1 {
			continue
		}

		start, end, err := parseTimingLine(lines[timingIdx])
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", len(cues)+1, err)
		}
		if end < start {
			end = start
		}

		index := len(cues) + 1
		if timingIdx == 1 {
			if parsed, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil && parsed > 0 {
				index = parsed
			}
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[timingIdx+1:], "\n"),
		})
	}
	return cues, nil
}

func splitBlockLines(block string) []string {
	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " \t")
		if line == "" && len(lines) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseTimingLine(line string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// Trailing position hints (X1: ...) after the end timestamp are ignored.
	endText := strings.TrimSpace(parts[1])
	if fields := strings.Fields(endText); len(fields) > 0 {
		endText = fields[0]
	}
	end, err := parseTimestamp(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma before milliseconds; tolerate a period.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}
