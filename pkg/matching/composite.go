package matching

import (
	"math"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Weights are the linear coefficients applied to the five factor scores.
// They should sum to 1.0 but are used as-is either way.
type Weights struct {
	Location     float64 `json:"location"`
	Industry     float64 `json:"industry"`
	Stage        float64 `json:"stage"`
	InvestorType float64 `json:"investor_type"`
	CheckSize    float64 `json:"check_size"`
}

// DefaultWeights is the hardcoded baseline vector. Sector and stage fit
// dominate; investor type is a weak signal.
func DefaultWeights() Weights {
	return Weights{
		Location:     0.15,
		Industry:     0.40,
		Stage:        0.30,
		CheckSize:    0.10,
		InvestorType: 0.05,
	}
}

// Sum returns the total of the five weight fields
func (w Weights) Sum() float64 {
	return w.Location + w.Industry + w.Stage + w.InvestorType + w.CheckSize
}

// Candidate is one investor/firm pair to score. Firm is optional; when
// present its signals are unioned with the investor's before scoring.
type Candidate struct {
	Investor *models.Investor
	Firm     *models.InvestmentFirm
}

// ScoreCandidate computes the composite 0-100 score for a startup against
// an investor/firm pair. startupIndustries is the startup's tag list after
// document-keyword enrichment.
func ScoreCandidate(startup *models.Startup, startupIndustries []string, candidate Candidate, weights Weights) models.MatchResult {
	locations := make([]string, 0, 2)
	sectors := make([]string, 0)
	stages := make([]string, 0)
	var checkMin, checkMax *float64
	typicalText := ""
	investorType := ""

	if candidate.Investor != nil {
		if candidate.Investor.Location != nil {
			locations = append(locations, *candidate.Investor.Location)
		}
		sectors = append(sectors, candidate.Investor.Sectors...)
		stages = append(stages, candidate.Investor.Stages...)
		if candidate.Investor.FundingStage != nil {
			stages = append(stages, *candidate.Investor.FundingStage)
		}
		checkMin = candidate.Investor.CheckSizeMin
		checkMax = candidate.Investor.CheckSizeMax
		if candidate.Investor.TypicalInvestment != nil {
			typicalText = *candidate.Investor.TypicalInvestment
		}
		if candidate.Investor.InvestorType != nil {
			investorType = *candidate.Investor.InvestorType
		}
	}
	if candidate.Firm != nil {
		if candidate.Firm.Location != nil {
			locations = append(locations, *candidate.Firm.Location)
		}
		sectors = append(sectors, candidate.Firm.Sectors...)
		stages = append(stages, candidate.Firm.Stages...)
		if checkMin == nil && checkMax == nil {
			checkMin = candidate.Firm.CheckSizeMin
			checkMax = candidate.Firm.CheckSizeMax
		}
		if typicalText == "" && candidate.Firm.TypicalCheckSize != nil {
			typicalText = *candidate.Firm.TypicalCheckSize
		}
		if investorType == "" && candidate.Firm.FirmType != nil {
			investorType = *candidate.Firm.FirmType
		}
	}

	startupLocation := ""
	if startup.Location != nil {
		startupLocation = *startup.Location
	}
	startupStage := ""
	if startup.Stage != nil {
		startupStage = *startup.Stage
	}

	location := ScoreLocation(startupLocation, locations)
	industry := ScoreIndustry(startupIndustries, sectors)
	stage := ScoreStage(startupStage, stages)
	checkSize := ScoreCheckSize(startup.TargetAmount, checkMin, checkMax, typicalText)
	investorTypeScore := ScoreInvestorType(investorType, startupStage)

	total := location.Score*weights.Location +
		industry.Score*weights.Industry +
		stage.Score*weights.Stage +
		checkSize.Score*weights.CheckSize +
		investorTypeScore.Score*weights.InvestorType

	score := int(math.Round(total * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	// Reason ordering is fixed for deterministic output: industry, stage,
	// location, check size, investor type.
	reasons := make([]string, 0, 5)
	for _, factor := range []FactorScore{industry, stage, location, checkSize, investorTypeScore} {
		if factor.Matched && factor.Detail != "" {
			reasons = append(reasons, factor.Detail)
		}
	}

	result := models.MatchResult{
		Score:   score,
		Reasons: reasons,
		Breakdown: models.FactorBreakdown{
			Location:     int(math.Round(location.Score * 100)),
			Industry:     int(math.Round(industry.Score * 100)),
			Stage:        int(math.Round(stage.Score * 100)),
			InvestorType: int(math.Round(investorTypeScore.Score * 100)),
			CheckSize:    int(math.Round(checkSize.Score * 100)),
		},
	}
	if candidate.Investor != nil {
		result.InvestorID = &candidate.Investor.ID
		result.FirmID = candidate.Investor.FirmID
	}
	if candidate.Firm != nil {
		firmID := candidate.Firm.ID
		result.FirmID = &firmID
	}
	return result
}
