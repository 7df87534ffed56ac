package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLocation(t *testing.T) {
	tests := []struct {
		name            string
		startupLocation string
		investorLocs    []string
		expectedScore   float64
		expectedMatched bool
	}{
		{
			name:            "missing startup location is neutral",
			startupLocation: "",
			investorLocs:    []string{"New York"},
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "missing investor location is neutral",
			startupLocation: "Berlin",
			investorLocs:    nil,
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "global investor always full match",
			startupLocation: "Lagos",
			investorLocs:    []string{"Global"},
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "worldwide investor always full match",
			startupLocation: "Tokyo",
			investorLocs:    []string{"Invests worldwide"},
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "city to region alias overlap saturates",
			startupLocation: "San Francisco",
			investorLocs:    []string{"Bay Area"},
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "single token overlap",
			startupLocation: "Reykjavik, Iceland",
			investorLocs:    []string{"Iceland"},
			expectedScore:   0.7,
			expectedMatched: true,
		},
		{
			name:            "no overlap is soft mismatch",
			startupLocation: "Singapore",
			investorLocs:    []string{"Boston"},
			expectedScore:   0.2,
			expectedMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreLocation(tt.startupLocation, tt.investorLocs)
			assert.InDelta(t, tt.expectedScore, result.Score, 0.001)
			assert.Equal(t, tt.expectedMatched, result.Matched)
		})
	}
}

func TestScoreIndustry(t *testing.T) {
	tests := []struct {
		name            string
		startup         []string
		investor        []string
		expectedScore   float64
		expectedMatched bool
	}{
		{
			name:            "missing startup industries is neutral",
			startup:         nil,
			investor:        []string{"fintech"},
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "missing investor sectors is neutral",
			startup:         []string{"fintech"},
			investor:        nil,
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "agnostic investor",
			startup:         []string{"underwater basket weaving"},
			investor:        []string{"Sector Agnostic"},
			expectedScore:   0.85,
			expectedMatched: true,
		},
		{
			name:            "generalist investor",
			startup:         []string{"fintech"},
			investor:        []string{"generalist"},
			expectedScore:   0.85,
			expectedMatched: true,
		},
		{
			name:            "core sector tag saturates through shared groups",
			startup:         []string{"fintech"},
			investor:        []string{"fintech"},
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "related tags share one group",
			startup:         []string{"streaming"},
			investor:        []string{"film"},
			expectedScore:   0.75,
			expectedMatched: true,
		},
		{
			name:            "identical tag outside group table still matches",
			startup:         []string{"vertical farming"},
			investor:        []string{"vertical farming"},
			expectedScore:   0.75,
			expectedMatched: true,
		},
		{
			name:            "no shared group",
			startup:         []string{"fintech"},
			investor:        []string{"biotech"},
			expectedScore:   0.1,
			expectedMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreIndustry(tt.startup, tt.investor)
			assert.InDelta(t, tt.expectedScore, result.Score, 0.001)
			assert.Equal(t, tt.expectedMatched, result.Matched)
		})
	}
}

func TestScoreStage(t *testing.T) {
	tests := []struct {
		name            string
		startupStage    string
		investorStages  []string
		expectedScore   float64
		expectedMatched bool
	}{
		{
			name:            "missing startup stage is neutral",
			startupStage:    "",
			investorStages:  []string{"Seed"},
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "missing investor stages is neutral",
			startupStage:    "Seed",
			investorStages:  nil,
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "exact match through aliases",
			startupStage:    "Seed",
			investorStages:  []string{"Early Stage"},
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "adjacent stage",
			startupStage:    "Seed",
			investorStages:  []string{"Series A"},
			expectedScore:   0.6,
			expectedMatched: true,
		},
		{
			name:            "adjacent below",
			startupStage:    "Seed",
			investorStages:  []string{"Pre-Seed"},
			expectedScore:   0.6,
			expectedMatched: true,
		},
		{
			name:            "two positions apart",
			startupStage:    "Seed",
			investorStages:  []string{"Series B"},
			expectedScore:   0.1,
			expectedMatched: false,
		},
		{
			name:            "far apart",
			startupStage:    "Pre-Seed",
			investorStages:  []string{"Growth"},
			expectedScore:   0.1,
			expectedMatched: false,
		},
		{
			name:            "unknown stage no adjacency",
			startupStage:    "Mezzanine",
			investorStages:  []string{"Seed"},
			expectedScore:   0.1,
			expectedMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreStage(tt.startupStage, tt.investorStages)
			assert.InDelta(t, tt.expectedScore, result.Score, 0.001)
			assert.Equal(t, tt.expectedMatched, result.Matched)
		})
	}
}

func TestScoreCheckSize(t *testing.T) {
	target := func(v float64) *float64 { return &v }

	tests := []struct {
		name            string
		target          *float64
		min             *float64
		max             *float64
		typical         string
		expectedScore   float64
		expectedMatched bool
	}{
		{
			name:            "missing target is neutral",
			target:          nil,
			min:             target(100_000),
			max:             target(500_000),
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "target within explicit range",
			target:          target(1_000_000),
			min:             target(500_000),
			max:             target(2_000_000),
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "target up to double max still fits",
			target:          target(4_000_000),
			min:             target(500_000),
			max:             target(2_000_000),
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "target in stretch band",
			target:          target(5_000_000),
			min:             target(500_000),
			max:             target(2_000_000),
			expectedScore:   0.6,
			expectedMatched: true,
		},
		{
			name:            "target far outside range",
			target:          target(50_000_000),
			min:             target(100_000),
			max:             target(500_000),
			expectedScore:   0.2,
			expectedMatched: false,
		},
		{
			name:            "parsed free text fits",
			target:          target(1_000_000),
			typical:         "$500k - $2m",
			expectedScore:   0.9,
			expectedMatched: true,
		},
		{
			name:            "parsed free text does not fit",
			target:          target(100_000_000),
			typical:         "$500k - $2m",
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "no check size data",
			target:          target(1_000_000),
			typical:         "flexible",
			expectedScore:   0.5,
			expectedMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreCheckSize(tt.target, tt.min, tt.max, tt.typical)
			assert.InDelta(t, tt.expectedScore, result.Score, 0.001)
			assert.Equal(t, tt.expectedMatched, result.Matched)
		})
	}
}

func TestScoreInvestorType(t *testing.T) {
	tests := []struct {
		name            string
		investorType    string
		startupStage    string
		expectedScore   float64
		expectedMatched bool
	}{
		{
			name:            "missing type is neutral",
			investorType:    "",
			startupStage:    "Seed",
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "missing stage is neutral",
			investorType:    "Angel",
			startupStage:    "",
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "angel backs pre-seed",
			investorType:    "Angel Investor",
			startupStage:    "Pre-Seed",
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "vc backs seed",
			investorType:    "Venture Capital",
			startupStage:    "Seed",
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "private equity backs growth",
			investorType:    "Private Equity",
			startupStage:    "Growth",
			expectedScore:   1.0,
			expectedMatched: true,
		},
		{
			name:            "angel does not back growth",
			investorType:    "Angel",
			startupStage:    "Growth",
			expectedScore:   0.5,
			expectedMatched: false,
		},
		{
			name:            "unknown type is neutral",
			investorType:    "Sovereign Wealth Fund",
			startupStage:    "Seed",
			expectedScore:   0.5,
			expectedMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreInvestorType(tt.investorType, tt.startupStage)
			assert.InDelta(t, tt.expectedScore, result.Score, 0.001)
			assert.Equal(t, tt.expectedMatched, result.Matched)
		})
	}
}
