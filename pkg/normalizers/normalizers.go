// Package normalizers converts free-text profile fields into canonical
// comparable forms for the factor scorers.
package normalizers

import (
	"regexp"
	"strconv"
	"strings"
)

// StageOrder is the canonical funding-stage progression. Adjacency checks in
// the stage scorer index into this slice.
var StageOrder = []string{"pre-seed", "seed", "series-a", "series-b", "series-c", "growth"}

// stageAliases maps alias substrings onto canonical stage keys. Longer,
// more specific aliases are listed first within each group.
var stageAliases = []struct {
	alias string
	stage string
}{
	{"pre-seed", "pre-seed"},
	{"preseed", "pre-seed"},
	{"pre seed", "pre-seed"},
	{"angel", "pre-seed"},
	{"idea", "pre-seed"},
	{"series a", "series-a"},
	{"series-a", "series-a"},
	{"series b", "series-b"},
	{"series-b", "series-b"},
	{"series c", "series-c"},
	{"series-c", "series-c"},
	{"series d", "growth"},
	{"late stage", "growth"},
	{"late-stage", "growth"},
	{"growth", "growth"},
	{"expansion", "growth"},
	{"pre-ipo", "growth"},
	{"seed", "seed"},
	{"early stage", "seed"},
	{"early-stage", "seed"},
}

// NormalizeStage maps a free-text funding-stage label onto the canonical
// vocabulary. Unrecognized input returns the lower-cased original, which
// callers must treat as unknown for ordering purposes.
func NormalizeStage(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return ""
	}
	for _, entry := range stageAliases {
		if strings.Contains(lowered, entry.alias) {
			return entry.stage
		}
	}
	return lowered
}

// StageIndex returns the position of a canonical stage key in StageOrder,
// or -1 for unknown stages.
func StageIndex(stage string) int {
	for i, s := range StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// locationAliases expands city-level tokens to the regions and countries
// that contain them, so city-level and country-level specificity still match.
var locationAliases = map[string][]string{
	"san francisco": {"bay area", "silicon valley", "california", "usa", "united states"},
	"sf":            {"san francisco", "bay area", "silicon valley", "california", "usa"},
	"bay area":      {"san francisco", "silicon valley", "california", "usa"},
	"palo alto":     {"bay area", "silicon valley", "california", "usa"},
	"silicon valley": {"bay area", "california", "usa"},
	"los angeles":   {"la", "california", "usa", "united states"},
	"la":            {"los angeles", "california", "usa"},
	"new york":      {"nyc", "ny", "usa", "united states", "east coast"},
	"nyc":           {"new york", "ny", "usa", "east coast"},
	"brooklyn":      {"new york", "nyc", "usa"},
	"boston":        {"massachusetts", "usa", "united states", "east coast"},
	"austin":        {"texas", "usa", "united states"},
	"seattle":       {"washington", "usa", "united states"},
	"chicago":       {"illinois", "usa", "united states"},
	"miami":         {"florida", "usa", "united states"},
	"denver":        {"colorado", "usa", "united states"},
	"london":        {"uk", "united kingdom", "england", "europe"},
	"berlin":        {"germany", "europe"},
	"munich":        {"germany", "europe"},
	"paris":         {"france", "europe"},
	"amsterdam":     {"netherlands", "europe"},
	"stockholm":     {"sweden", "europe", "nordics"},
	"copenhagen":    {"denmark", "europe", "nordics"},
	"dublin":        {"ireland", "europe"},
	"zurich":        {"switzerland", "europe"},
	"tel aviv":      {"israel", "middle east"},
	"dubai":         {"uae", "middle east"},
	"singapore":     {"southeast asia", "asia", "apac"},
	"hong kong":     {"china", "asia", "apac"},
	"tokyo":         {"japan", "asia", "apac"},
	"bangalore":     {"india", "asia", "apac"},
	"bengaluru":     {"bangalore", "india", "asia"},
	"mumbai":        {"india", "asia", "apac"},
	"sydney":        {"australia", "apac"},
	"toronto":       {"canada", "ontario", "north america"},
	"vancouver":     {"canada", "north america"},
	"sao paulo":     {"brazil", "latam", "south america"},
	"mexico city":   {"mexico", "latam"},
	"usa":           {"united states", "north america"},
	"united states": {"usa", "north america"},
	"uk":            {"united kingdom", "europe"},
}

var locationSplitter = regexp.MustCompile(`[,;/]`)

// NormalizeLocation splits a free-text location on comma/semicolon/slash,
// lower-cases the tokens, and expands each through the city alias table.
// Returns the deduplicated union of originals and expansions.
func NormalizeLocation(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]bool)
	tokens := make([]string, 0)
	add := func(token string) {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	for _, raw := range locationSplitter.Split(text, -1) {
		token := strings.TrimSpace(strings.ToLower(raw))
		if token == "" {
			continue
		}
		add(token)
		for _, expansion := range locationAliases[token] {
			add(expansion)
		}
	}
	return tokens
}

var industrySplitter = regexp.MustCompile(`[,;&/]`)

// NormalizeIndustry flattens one or more free-text industry values into
// lower-cased tag tokens split on comma/semicolon/ampersand/slash.
func NormalizeIndustry(values ...string) []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0)
	for _, value := range values {
		for _, raw := range industrySplitter.Split(value, -1) {
			token := strings.TrimSpace(strings.ToLower(raw))
			if token == "" || seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// CheckSizeRange is a parsed investment range in absolute dollars
type CheckSizeRange struct {
	Min float64
	Max float64
}

var checkSizeNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k|m)?`)

// ParseCheckSizeRange extracts up to two numbers with optional k/m suffix
// multipliers from free text like "$500k - $2m" or "typically 1m". The
// suffix is detected per number. A single number yields max = 10x min.
// Returns nil when no number is present.
func ParseCheckSizeRange(text string) *CheckSizeRange {
	lowered := strings.ToLower(text)
	matches := checkSizeNumber.FindAllStringSubmatch(lowered, 2)
	if len(matches) == 0 {
		return nil
	}

	parse := func(match []string) float64 {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0
		}
		switch match[2] {
		case "k":
			value *= 1_000
		case "m":
			value *= 1_000_000
		}
		return value
	}

	min := parse(matches[0])
	max := min * 10
	if len(matches) > 1 {
		max = parse(matches[1])
	}
	if max < min {
		min, max = max, min
	}
	return &CheckSizeRange{Min: min, Max: max}
}
