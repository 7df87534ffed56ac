// Package matching implements startup-investor compatibility scoring:
// five factor scorers combined through a weight vector, a match generator
// over the candidate set, and feedback-driven weight adaptation.
package matching

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/clover/pkg/normalizers"
)

// FactorScore is the outcome of a single factor comparison. Score is in
// [0,1]. Matched factors contribute their Detail to the match reasons.
type FactorScore struct {
	Score   float64
	Matched bool
	Detail  string
}

// neutral is returned whenever either side is missing data for a factor.
// Absence of data is evidence of nothing, not evidence of mismatch.
func neutral() FactorScore {
	return FactorScore{Score: 0.5}
}

var globalLocationTerms = []string{"global", "worldwide", "international"}

// ScoreLocation compares a startup location against the union of investor
// and firm locations. A blanket term like "global" on the investor side is a
// full match regardless of the startup's location.
func ScoreLocation(startupLocation string, investorLocations []string) FactorScore {
	investorText := strings.ToLower(strings.Join(investorLocations, ", "))
	if strings.TrimSpace(startupLocation) == "" || strings.TrimSpace(investorText) == "" {
		return neutral()
	}

	for _, term := range globalLocationTerms {
		if strings.Contains(investorText, term) {
			return FactorScore{Score: 1.0, Matched: true, Detail: "Invests globally"}
		}
	}

	startupTokens := normalizers.NormalizeLocation(startupLocation)
	investorTokens := make(map[string]bool)
	for _, location := range investorLocations {
		for _, token := range normalizers.NormalizeLocation(location) {
			investorTokens[token] = true
		}
	}

	shared := make([]string, 0)
	for _, token := range startupTokens {
		if investorTokens[token] {
			shared = append(shared, token)
		}
	}

	if len(shared) == 0 {
		return FactorScore{Score: 0.2}
	}

	score := 0.6 + 0.1*float64(len(shared))
	if score > 1.0 {
		score = 1.0
	}
	detail := shared
	if len(detail) > 3 {
		detail = detail[:3]
	}
	return FactorScore{
		Score:   score,
		Matched: true,
		Detail:  fmt.Sprintf("Location match: %s", strings.Join(detail, ", ")),
	}
}

var agnosticTerms = []string{"agnostic", "generalist"}

// ScoreIndustry compares startup industry tags against investor sector
// interests, both directly and through the canonical industry groups.
func ScoreIndustry(startupIndustries []string, investorSectors []string) FactorScore {
	startupTokens := normalizers.NormalizeIndustry(startupIndustries...)
	investorTokens := normalizers.NormalizeIndustry(investorSectors...)
	if len(startupTokens) == 0 || len(investorTokens) == 0 {
		return neutral()
	}

	for _, token := range investorTokens {
		for _, term := range agnosticTerms {
			if strings.Contains(token, term) {
				return FactorScore{Score: 0.85, Matched: true, Detail: "Sector-agnostic investor"}
			}
		}
	}

	matched := matchIndustryGroups(startupTokens, investorTokens)
	if len(matched) == 0 {
		return FactorScore{Score: 0.1}
	}

	score := 0.6 + 0.15*float64(len(matched))
	if score > 1.0 {
		score = 1.0
	}
	detail := matched
	if len(detail) > 3 {
		detail = detail[:3]
	}
	return FactorScore{
		Score:   score,
		Matched: true,
		Detail:  fmt.Sprintf("Sector match: %s", strings.Join(detail, ", ")),
	}
}

// matchIndustryGroups returns the distinct canonical groups under which both
// sides share a variant, plus any identical tags outside the group table.
func matchIndustryGroups(startupTokens, investorTokens []string) []string {
	startupGroups := resolveGroups(startupTokens)
	investorGroups := resolveGroups(investorTokens)

	matched := make([]string, 0)
	seen := make(map[string]bool)
	for _, group := range industryGroupOrder {
		if startupGroups[group] && investorGroups[group] {
			matched = append(matched, group)
			seen[group] = true
		}
	}

	// Identical tags not covered by any group still count as a match.
	investorSet := make(map[string]bool, len(investorTokens))
	for _, token := range investorTokens {
		investorSet[token] = true
	}
	for _, token := range startupTokens {
		if investorSet[token] && len(groupsForToken(token)) == 0 && !seen[token] {
			matched = append(matched, token)
			seen[token] = true
		}
	}
	return matched
}

func resolveGroups(tokens []string) map[string]bool {
	groups := make(map[string]bool)
	for _, token := range tokens {
		for _, group := range groupsForToken(token) {
			groups[group] = true
		}
	}
	return groups
}

func groupsForToken(token string) []string {
	return industryGroupsByVariant[token]
}

// ScoreStage compares the startup's funding stage against the investor's
// preferred stages. Adjacent stages score as a stretch match.
func ScoreStage(startupStage string, investorStages []string) FactorScore {
	startupKey := normalizers.NormalizeStage(startupStage)
	if startupKey == "" {
		return neutral()
	}

	investorKeys := make([]string, 0, len(investorStages))
	for _, stage := range investorStages {
		if key := normalizers.NormalizeStage(stage); key != "" {
			investorKeys = append(investorKeys, key)
		}
	}
	if len(investorKeys) == 0 {
		return neutral()
	}

	for _, key := range investorKeys {
		if key == startupKey {
			return FactorScore{
				Score:   1.0,
				Matched: true,
				Detail:  fmt.Sprintf("Stage match: %s", startupKey),
			}
		}
	}

	startupIndex := normalizers.StageIndex(startupKey)
	if startupIndex >= 0 {
		for _, key := range investorKeys {
			investorIndex := normalizers.StageIndex(key)
			if investorIndex < 0 {
				continue
			}
			distance := startupIndex - investorIndex
			if distance == 1 || distance == -1 {
				return FactorScore{
					Score:   0.6,
					Matched: true,
					Detail:  fmt.Sprintf("Adjacent stage: %s vs %s", startupKey, key),
				}
			}
		}
	}

	return FactorScore{Score: 0.1}
}

// ScoreCheckSize compares the startup's target raise against the investor's
// check size. Explicit numeric bounds beat heuristically parsed free text.
func ScoreCheckSize(targetAmount *float64, checkMin, checkMax *float64, typicalText string) FactorScore {
	if targetAmount == nil {
		return neutral()
	}
	target := *targetAmount

	if checkMin != nil && checkMax != nil {
		if target >= *checkMin && target <= *checkMax*2 {
			return FactorScore{Score: 1.0, Matched: true, Detail: "Check size fits target raise"}
		}
		if target >= *checkMin*0.5 && target <= *checkMax*3 {
			return FactorScore{Score: 0.6, Matched: true, Detail: "Check size close to target raise"}
		}
		return FactorScore{Score: 0.2}
	}

	if parsed := normalizers.ParseCheckSizeRange(typicalText); parsed != nil {
		if target >= parsed.Min && target <= parsed.Max*2 {
			return FactorScore{Score: 0.9, Matched: true, Detail: "Typical check size fits target raise"}
		}
	}
	return neutral()
}

// investorTypeAffinity maps investor-type substrings to the stages that type
// typically backs. Any entry whose key appears in the investor's type and
// whose stage list contains the startup's stage is a hit.
var investorTypeAffinity = []struct {
	key    string
	stages []string
}{
	{"angel", []string{"pre-seed", "seed"}},
	{"accelerator", []string{"pre-seed", "seed"}},
	{"incubator", []string{"pre-seed", "seed"}},
	{"corporate vc", []string{"series-a", "series-b", "series-c", "growth"}},
	{"cvc", []string{"series-a", "series-b", "series-c", "growth"}},
	{"venture capital", []string{"seed", "series-a", "series-b", "series-c"}},
	{"vc", []string{"seed", "series-a", "series-b", "series-c"}},
	{"private equity", []string{"series-c", "growth"}},
	{"pe", []string{"series-c", "growth"}},
	{"family office", []string{"seed", "series-a", "series-b", "series-c"}},
}

// ScoreInvestorType checks whether the investor's type typically backs the
// startup's stage. A weak signal: misses stay neutral rather than penalized.
func ScoreInvestorType(investorType string, startupStage string) FactorScore {
	loweredType := strings.ToLower(strings.TrimSpace(investorType))
	startupKey := normalizers.NormalizeStage(startupStage)
	if loweredType == "" || startupKey == "" {
		return neutral()
	}

	for _, entry := range investorTypeAffinity {
		if !strings.Contains(loweredType, entry.key) {
			continue
		}
		for _, stage := range entry.stages {
			if stage == startupKey {
				return FactorScore{
					Score:   1.0,
					Matched: true,
					Detail:  fmt.Sprintf("Investor type suits %s startups", startupKey),
				}
			}
		}
	}
	return neutral()
}
