package subs

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var srtMarkup = strings.NewReplacer(
	"<i>", `{\i1}`, "</i>", `{\i0}`,
	"<b>", `{\b1}`, "</b>", `{\b0}`,
	"<u>", `{\u1}`, "</u>", `{\u0}`,
	"<I>", `{\i1}`, "</I>", `{\i0}`,
	"<B>", `{\b1}`, "</B>", `{\b0}`,
	"<U>", `{\u1}`, "</U>", `{\u0}`,
)

var srtOtherTags = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// ParseSRT reads a SubRip document. Every cue uses the Default style.
func ParseSRT(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	doc := &Document{Styles: StyleList{DefaultStyle("Default")}}
	for _, block := range splitBlocks(content) {
		lines := strings.Split(block, "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			continue
		}
		startText, endText, _ := strings.Cut(lines[timing], "-->")
		start, err := parseSRTTimestamp(startText)
		if err != nil {
			return nil, err
		}
		// Trailing position hints (X1:.. Y1:..) follow the end timestamp.
		endFields := strings.Fields(endText)
		if len(endFields) == 0 {
			return nil, fmt.Errorf("invalid timing line %q", lines[timing])
		}
		end, err := parseSRTTimestamp(endFields[0])
		if err != nil {
			return nil, err
		}
		text := strings.Join(lines[timing+1:], `\N`)
		text = srtOtherTags.ReplaceAllString(srtMarkup.Replace(text), "")
		doc.Events = append(doc.Events, &Event{Index: -1, Start: start, End: end, Style: "Default", Text: text})
	}
	doc.Reindex()
	return doc, nil
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n\n")
}

func parseSRTTimestamp(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
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
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}
