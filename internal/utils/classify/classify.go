package classify

import (
	"strings"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// Result is one classification outcome.
type Result struct {
	Category   string
	Confidence float64
}

// Classifier assigns a category to a transaction description. The keyword
// implementation below is the default; a statistical classifier can replace
// it behind this interface.
type Classifier interface {
	Classify(description string) Result
}

// Rule matches a category when any of its keywords occurs in the
// case-normalized description. Rules are evaluated in order; the first
// match wins.
type Rule struct {
	Category   string
	Confidence float64
	Keywords   []string
}

// DefaultRules is the built-in rule table. Order matters: earlier rules
// shadow later ones.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "PAYROLL", Confidence: 0.9, Keywords: []string{"salary", "payroll", "wages"}},
		{Category: "TAXES", Confidence: 0.9, Keywords: []string{"gst", "tds", "income tax", "advance tax"}},
		{Category: "RENT", Confidence: 0.85, Keywords: []string{"rent", "lease"}},
		{Category: "UTILITIES", Confidence: 0.8, Keywords: []string{"electricity", "water bill", "broadband", "internet", "telephone"}},
		{Category: "BANK_CHARGES", Confidence: 0.8, Keywords: []string{"bank charge", "service fee", "annual fee", "sms charge", "amc"}},
		{Category: "TRAVEL", Confidence: 0.75, Keywords: []string{"flight", "airline", "hotel", "irctc", "uber", "ola"}},
		{Category: "INTEREST", Confidence: 0.7, Keywords: []string{"interest"}},
		{Category: "VENDOR_PAYMENT", Confidence: 0.6, Keywords: []string{"invoice", "vendor", "purchase order"}},
		{Category: "TRANSFER", Confidence: 0.55, Keywords: []string{"neft", "rtgs", "imps", "upi", "transfer"}},
	}
}

// KeywordClassifier is the ordered keyword-table classifier.
type KeywordClassifier struct {
	rules []Rule
}

// New returns a classifier over the given rule table.
func New(rules []Rule) *KeywordClassifier {
	return &KeywordClassifier{rules: rules}
}

// NewDefault returns a classifier over DefaultRules.
func NewDefault() *KeywordClassifier {
	return New(DefaultRules())
}

var _ Classifier = (*KeywordClassifier)(nil)

// Classify returns the first matching rule's category. Descriptions that
// match nothing stay UNCATEGORIZED with confidence 0.5.
func (c *KeywordClassifier) Classify(description string) Result {
	normalized := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				return Result{Category: rule.Category, Confidence: rule.Confidence}
			}
		}
	}
	return Result{Category: domain.CategoryUncategorized, Confidence: 0.5}
}
