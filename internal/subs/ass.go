package subs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var defaultStyleFormat = []string{
	"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour", "OutlineColour", "BackColour",
	"Bold", "Italic", "Underline", "StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle",
	"BorderStyle", "Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV", "Encoding",
}

var defaultEventFormat = []string{
	"Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR", "MarginV", "Effect", "Text",
}

// ParseASS reads an Advanced SubStation document.
func ParseASS(r io.Reader) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	section := ""
	styleFormat := defaultStyleFormat
	eventFormat := defaultEventFormat
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(trimmed)
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimLeft(value, " ")

		switch section {
		case "[script info]":
			doc.Info.Set(key, strings.TrimSpace(value))
		case "[v4+ styles]", "[v4 styles]":
			switch key {
			case "Format":
				styleFormat = splitFormat(value)
			case "Style":
				style, err := parseStyle(styleFormat, value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				doc.Styles = append(doc.Styles, style)
			}
		case "[events]":
			switch key {
			case "Format":
				eventFormat = splitFormat(value)
			case "Dialogue", "Comment":
				ev, err := parseEvent(eventFormat, value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				ev.Comment = key == "Comment"
				doc.Events = append(doc.Events, ev)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ass: %w", err)
	}
	doc.Reindex()
	return doc, nil
}

func splitFormat(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func parseStyle(format []string, value string) (Style, error) {
	fields := strings.SplitN(value, ",", len(format))
	if len(fields) != len(format) {
		return Style{}, fmt.Errorf("style has %d fields, expected %d", len(fields), len(format))
	}
	style := DefaultStyle("")
	for i, name := range format {
		raw := strings.TrimSpace(fields[i])
		switch name {
		case "Name":
			style.Name = raw
		case "Fontname":
			style.FontName = raw
		case "Fontsize":
			style.FontSize = parseFloat(raw)
		case "Bold":
			style.Bold = parseFlag(raw)
		case "Italic":
			style.Italic = parseFlag(raw)
		case "Underline":
			style.Underline = parseFlag(raw)
		case "StrikeOut":
			style.StrikeOut = parseFlag(raw)
		case "ScaleX":
			style.ScaleX = parseFloat(raw)
		case "ScaleY":
			style.ScaleY = parseFloat(raw)
		case "Spacing":
			style.Spacing = parseFloat(raw)
		case "Angle":
			style.Angle = parseFloat(raw)
		case "Outline":
			style.Outline = parseFloat(raw)
		case "Shadow":
			style.Shadow = parseFloat(raw)
		case "Alignment":
			style.Alignment, _ = strconv.Atoi(raw)
		case "MarginL":
			style.MarginL, _ = strconv.Atoi(raw)
		case "MarginR":
			style.MarginR, _ = strconv.Atoi(raw)
		case "MarginV":
			style.MarginV, _ = strconv.Atoi(raw)
		}
	}
	return style, nil
}

func parseEvent(format []string, value string) (*Event, error) {
	fields := strings.SplitN(value, ",", len(format))
	if len(fields) != len(format) {
		return nil, fmt.Errorf("event has %d fields, expected %d", len(fields), len(format))
	}
	ev := &Event{Index: -1}
	for i, name := range format {
		raw := fields[i]
		if name != "Text" {
			raw = strings.TrimSpace(raw)
		}
		var err error
		switch name {
		case "Layer":
			ev.Layer, _ = strconv.Atoi(raw)
		case "Start":
			ev.Start, err = ParseASSTime(raw)
		case "End":
			ev.End, err = ParseASSTime(raw)
		case "Style":
			ev.Style = raw
		case "Name", "Actor":
			ev.Actor = raw
		case "Effect":
			ev.Effect = raw
		case "Text":
			ev.Text = raw
		}
		if err != nil {
			return nil, err
		}
	}
	return ev, nil
}

// ParseASSTime converts H:MM:SS.cc into milliseconds.
func ParseASSTime(value string) (int, error) {
	value = strings.TrimSpace(value)
	hms := strings.Split(value, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.ParseFloat(hms[2], 64)
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return (hours*3600+minutes*60)*1000 + int(seconds*1000+0.5), nil
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFlag(raw string) bool {
	v, err := strconv.Atoi(raw)
	return err == nil && v != 0
}
