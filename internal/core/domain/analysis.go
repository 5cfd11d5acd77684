package domain

// Category is one of the fixed relevance dimensions papers are rated
// against.
type Category string

// The five relevance dimensions, in report order.
const (
	CategorySales            Category = "sales"
	CategoryDemandGeneration Category = "demand_generation"
	CategoryCustomerSuccess  Category = "customer_success"
	CategoryCustomerSupport  Category = "customer_support"
	CategorySolutionPartners Category = "solution_partners"
)

// Categories returns the relevance dimensions in report order.
func Categories() []Category {
	return []Category{
		CategorySales,
		CategoryDemandGeneration,
		CategoryCustomerSuccess,
		CategoryCustomerSupport,
		CategorySolutionPartners,
	}
}

// Relevance is a categorical rating for one dimension.
type Relevance string

const (
	RelevanceNone   Relevance = "None"
	RelevanceLow    Relevance = "Low"
	RelevanceMedium Relevance = "Medium"
	RelevanceHigh   Relevance = "High"
)

// Analysis is the synthesis produced for one paper, either by the LLM or
// by the keyword fallback.
type Analysis struct {
	// Summary is the full markdown analysis body. For AI output it embeds
	// the per-dimension assessments; for fallback output it echoes the
	// abstract with an unavailability notice.
	Summary string

	// Relevance holds the per-category rating. Populated only by the
	// keyword fallback; the AI path folds its assessment into Summary.
	Relevance map[Category]Relevance

	// AIGenerated reports whether the summary came from the model.
	AIGenerated bool
}
