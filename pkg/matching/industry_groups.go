package matching

// industryGroups maps canonical industry groups to their free-text variants.
// Variants deliberately overlap across sibling groups (a core sector tag
// like "fintech" lives under several related groups) so that an exact hit
// on a sector's own tag resolves to multiple shared groups and saturates
// the industry score.
var industryGroups = map[string][]string{
	"fintech": {
		"fintech", "financial technology", "payments", "banking", "neobank",
		"insurtech", "lending", "crypto", "blockchain", "defi", "wealth management",
		"financial services", "trading",
	},
	"financial services": {
		"financial services", "fintech", "banking", "insurance", "payments",
		"asset management", "capital markets", "wealth management",
	},
	"payments": {
		"payments", "fintech", "payment processing", "checkout", "billing", "payroll",
	},
	"healthcare": {
		"healthcare", "health", "medtech", "digital health", "telemedicine",
		"telehealth", "wellness", "mental health", "medical devices", "healthtech",
	},
	"biotech": {
		"biotech", "biotechnology", "life sciences", "pharma", "pharmaceuticals",
		"genomics", "drug discovery", "diagnostics",
	},
	"enterprise software": {
		"saas", "enterprise software", "b2b software", "enterprise", "productivity",
		"collaboration", "workflow", "crm", "erp", "devtools", "developer tools",
		"cloud", "infrastructure",
	},
	"artificial intelligence": {
		"ai", "artificial intelligence", "machine learning", "ml", "deep learning",
		"nlp", "computer vision", "generative ai", "llm", "data science", "analytics",
	},
	"consumer": {
		"consumer", "d2c", "dtc", "consumer goods", "cpg", "social", "mobile apps",
		"marketplace", "subscription",
	},
	"ecommerce": {
		"ecommerce", "e-commerce", "online retail", "retail", "marketplace", "d2c",
	},
	"entertainment": {
		"entertainment", "media", "film", "streaming", "music", "gaming", "games",
		"esports", "vfx", "content", "creator economy", "sports",
	},
	"edtech": {
		"edtech", "education", "e-learning", "learning", "training", "upskilling",
	},
	"proptech": {
		"proptech", "real estate", "construction", "contech", "housing",
	},
	"climate": {
		"climate", "cleantech", "climate tech", "sustainability", "renewable energy",
		"solar", "energy", "carbon", "greentech", "battery",
	},
	"mobility": {
		"mobility", "transportation", "automotive", "ev", "electric vehicles",
		"logistics", "delivery", "supply chain", "freight",
	},
	"cybersecurity": {
		"cybersecurity", "security", "infosec", "privacy", "identity",
	},
	"foodtech": {
		"foodtech", "food", "agriculture", "agtech", "restaurants", "food delivery",
		"beverage",
	},
	"hardware": {
		"hardware", "iot", "robotics", "semiconductors", "devices", "drones",
		"space", "aerospace",
	},
	"hrtech": {
		"hrtech", "hr", "recruiting", "talent", "future of work", "staffing",
	},
	"legaltech": {
		"legaltech", "legal", "compliance", "regtech", "govtech",
	},
	"travel": {
		"travel", "hospitality", "tourism", "vacation rentals",
	},
}

// industryGroupOrder fixes iteration order so matched-group details are
// deterministic.
var industryGroupOrder = []string{
	"fintech", "financial services", "payments", "healthcare", "biotech",
	"enterprise software", "artificial intelligence", "consumer", "ecommerce",
	"entertainment", "edtech", "proptech", "climate", "mobility",
	"cybersecurity", "foodtech", "hardware", "hrtech", "legaltech", "travel",
}

// industryGroupsByVariant is the reverse index: variant token -> groups.
var industryGroupsByVariant = buildVariantIndex()

func buildVariantIndex() map[string][]string {
	index := make(map[string][]string)
	for _, group := range industryGroupOrder {
		for _, variant := range industryGroups[group] {
			index[variant] = append(index[variant], group)
		}
	}
	return index
}
