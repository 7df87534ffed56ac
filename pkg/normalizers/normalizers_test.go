package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical seed", input: "seed", expected: "seed"},
		{name: "capitalized", input: "Seed", expected: "seed"},
		{name: "pre-seed hyphenated", input: "Pre-Seed", expected: "pre-seed"},
		{name: "pre seed spaced", input: "pre seed round", expected: "pre-seed"},
		{name: "angel maps to pre-seed", input: "Angel", expected: "pre-seed"},
		{name: "series a spaced", input: "Series A", expected: "series-a"},
		{name: "series b", input: "series-b", expected: "series-b"},
		{name: "series c", input: "Series C", expected: "series-c"},
		{name: "series d maps to growth", input: "Series D", expected: "growth"},
		{name: "late stage maps to growth", input: "Late Stage", expected: "growth"},
		{name: "early stage maps to seed", input: "Early Stage", expected: "seed"},
		{name: "unknown returns lowered original", input: "Mezzanine", expected: "mezzanine"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStage(tt.input))
		})
	}
}

func TestStageIndex(t *testing.T) {
	assert.Equal(t, 0, StageIndex("pre-seed"))
	assert.Equal(t, 1, StageIndex("seed"))
	assert.Equal(t, 5, StageIndex("growth"))
	assert.Equal(t, -1, StageIndex("mezzanine"))
	assert.Equal(t, -1, StageIndex(""))
}

func TestNormalizeLocation(t *testing.T) {
	t.Run("expands city through alias table", func(t *testing.T) {
		tokens := NormalizeLocation("San Francisco")
		assert.Contains(t, tokens, "san francisco")
		assert.Contains(t, tokens, "bay area")
		assert.Contains(t, tokens, "silicon valley")
		assert.Contains(t, tokens, "usa")
	})

	t.Run("splits on separators", func(t *testing.T) {
		tokens := NormalizeLocation("London; Berlin / Paris")
		assert.Contains(t, tokens, "london")
		assert.Contains(t, tokens, "berlin")
		assert.Contains(t, tokens, "paris")
		assert.Contains(t, tokens, "europe")
	})

	t.Run("deduplicates union", func(t *testing.T) {
		tokens := NormalizeLocation("San Francisco, Bay Area")
		counts := map[string]int{}
		for _, token := range tokens {
			counts[token]++
		}
		for token, count := range counts {
			assert.Equal(t, 1, count, "token %q repeated", token)
		}
	})

	t.Run("unknown token passes through", func(t *testing.T) {
		assert.Equal(t, []string{"smallville"}, NormalizeLocation("Smallville"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, NormalizeLocation("  "))
	})
}

func TestNormalizeIndustry(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single value",
			input:    []string{"Fintech"},
			expected: []string{"fintech"},
		},
		{
			name:     "splits on ampersand and comma",
			input:    []string{"Media & Entertainment, Gaming"},
			expected: []string{"media", "entertainment", "gaming"},
		},
		{
			name:     "multiple values flattened",
			input:    []string{"SaaS", "AI/ML"},
			expected: []string{"saas", "ai", "ml"},
		},
		{
			name:     "deduplicates",
			input:    []string{"fintech", "Fintech"},
			expected: []string{"fintech"},
		},
		{
			name:     "empty",
			input:    []string{""},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIndustry(tt.input...))
		})
	}
}

func TestParseCheckSizeRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *CheckSizeRange
	}{
		{
			name:     "explicit range with k and m",
			input:    "$500k - $2m",
			expected: &CheckSizeRange{Min: 500_000, Max: 2_000_000},
		},
		{
			name:     "per-number suffix detection",
			input:    "500-2m",
			expected: &CheckSizeRange{Min: 500, Max: 2_000_000},
		},
		{
			name:     "single number defaults max to 10x",
			input:    "typically $250k",
			expected: &CheckSizeRange{Min: 250_000, Max: 2_500_000},
		},
		{
			name:     "million word",
			input:    "1 million to 5 million",
			expected: &CheckSizeRange{Min: 1_000_000, Max: 5_000_000},
		},
		{
			name:     "decimal values",
			input:    "$1.5m - $3m",
			expected: &CheckSizeRange{Min: 1_500_000, Max: 3_000_000},
		},
		{
			name:     "swapped bounds reordered",
			input:    "up to $2m from $500k",
			expected: &CheckSizeRange{Min: 500_000, Max: 2_000_000},
		},
		{
			name:     "no numbers",
			input:    "varies by opportunity",
			expected: nil,
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCheckSizeRange(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, tt.expected.Min, result.Min, 0.001)
			assert.InDelta(t, tt.expected.Max, result.Max, 0.001)
		})
	}
}
