package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"

	"Sehat-Backend/domain"
)

const fallbackEnglishLimit = 500

var (
	fencedJSONPattern = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")
	bareJSONPattern   = regexp.MustCompile(`(\{[\s\S]*\})`)
)

// ExtractSummaryPair turns raw model text into a summary pair. It never fails:
// unparseable text becomes the English summary (truncated) and missing fields
// get placeholders.
func ExtractSummaryPair(raw string) domain.SummaryPair {
	var parsed any
	if err := json.Unmarshal([]byte(selectJSONCandidate(raw)), &parsed); err != nil {
		english := truncateRunes(raw, fallbackEnglishLimit)
		if english == "" {
			english = domain.MessageSummaryUnavailable
		}
		return domain.SummaryPair{
			English:   english,
			RomanUrdu: domain.MessageUrduSeeEnglish,
		}
	}

	// Valid JSON that is not an object carries no fields.
	fields, _ := parsed.(map[string]any)

	pair := domain.SummaryPair{
		English:   fieldText(fields, "english"),
		RomanUrdu: fieldText(fields, "romanUrdu"),
	}
	if pair.English == "" {
		pair.English = domain.MessageSummaryUnavailable
	}
	if pair.RomanUrdu == "" {
		pair.RomanUrdu = domain.MessageUrduUnavailable
	}
	return pair
}

// selectJSONCandidate prefers a fenced ```json block, then the widest {...}
// span, then the text itself.
func selectJSONCandidate(raw string) string {
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := bareJSONPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// fieldText returns "" for absent, null, false, zero and empty values.
func fieldText(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 {
			return ""
		}
		return fmt.Sprint(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
