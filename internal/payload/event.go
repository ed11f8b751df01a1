package payload

import (
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/linkspark/internal/models"
)

// icalTimeLayout формат даты iCalendar в UTC
const icalTimeLayout = "20060102T150405Z"

// DefaultEventDuration длительность события, если конец не указан
const DefaultEventDuration = time.Hour

// localLayouts форматы ввода без часового пояса
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseEventTime разбирает дату события; значения без зоны
// интерпретируются в зоне форматтера
func (f *Formatter) parseEventTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f *Formatter) formatEvent(in models.EventInput) (string, error) {
	summary := strings.TrimSpace(in.Summary)
	if summary == "" || strings.TrimSpace(in.Start) == "" {
		return "", errIncomplete
	}

	start, ok := f.parseEventTime(in.Start)
	if !ok {
		return "", invalid(models.FieldEventStart, "invalid start date %q", in.Start)
	}

	end := start.Add(DefaultEventDuration)
	if strings.TrimSpace(in.End) != "" {
		end, ok = f.parseEventTime(in.End)
		if !ok {
			return "", invalid(models.FieldEventEnd, "invalid end date %q", in.End)
		}
		if !end.After(start) {
			return "", invalid(models.FieldEventEnd, "end date must be after start date")
		}
	}

	lines := []string{
		"BEGIN:VEVENT",
		"SUMMARY:" + summary,
		"DTSTART:" + start.UTC().Format(icalTimeLayout),
		"DTEND:" + end.UTC().Format(icalTimeLayout),
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		lines = append(lines, "LOCATION:"+loc)
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeNewlines(desc))
	}
	lines = append(lines,
		"UID:"+strconv.FormatInt(f.now().UnixMilli(), 10)+"@linkspark",
		"END:VEVENT",
	)

	return strings.Join(lines, "\n"), nil
}

func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}
