package matching

import (
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

// industryKeywords is the vocabulary mined from uploaded documents to enrich
// a startup's industry signal beyond its structured tags.
var industryKeywords = []string{
	"fintech", "payments", "banking", "neobank", "insurtech", "lending",
	"crypto", "blockchain", "defi", "wealth management", "trading",
	"financial services", "insurance",
	"healthcare", "medtech", "digital health", "telemedicine", "telehealth",
	"wellness", "mental health", "medical devices",
	"biotech", "life sciences", "pharma", "genomics", "drug discovery",
	"diagnostics",
	"saas", "enterprise software", "b2b software", "productivity",
	"collaboration", "workflow", "crm", "erp", "developer tools", "cloud",
	"infrastructure",
	"artificial intelligence", "machine learning", "deep learning", "nlp",
	"computer vision", "generative ai", "data science", "analytics",
	"consumer goods", "cpg", "marketplace", "subscription", "social",
	"mobile apps",
	"ecommerce", "e-commerce", "online retail", "retail",
	"entertainment", "media", "streaming", "music", "gaming", "esports",
	"creator economy", "sports",
	"edtech", "education", "e-learning", "training",
	"proptech", "real estate", "construction", "housing",
	"climate", "cleantech", "sustainability", "renewable energy", "solar",
	"energy", "carbon",
	"mobility", "transportation", "automotive", "electric vehicles",
	"logistics", "delivery", "supply chain", "freight",
	"cybersecurity", "security", "privacy", "identity",
	"foodtech", "agriculture", "agtech", "food delivery",
	"hardware", "iot", "robotics", "semiconductors", "drones", "aerospace",
	"hrtech", "recruiting", "talent",
	"legaltech", "legal", "compliance", "regtech",
	"travel", "hospitality", "tourism",
}

// MineIndustryKeywords scans document name/description/content for known
// industry keywords. Case-insensitive substring search over the concatenated
// fields of each document.
func MineIndustryKeywords(documents []models.Document) []string {
	if len(documents) == 0 {
		return nil
	}

	var corpus strings.Builder
	for _, doc := range documents {
		corpus.WriteString(strings.ToLower(doc.Name))
		corpus.WriteString(" ")
		if doc.Description != nil {
			corpus.WriteString(strings.ToLower(*doc.Description))
			corpus.WriteString(" ")
		}
		if doc.Content != nil {
			corpus.WriteString(strings.ToLower(*doc.Content))
			corpus.WriteString(" ")
		}
	}
	text := corpus.String()

	found := make([]string, 0)
	for _, keyword := range industryKeywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
