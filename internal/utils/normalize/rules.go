package normalize

import (
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// FieldRules is an ordered list of lookups for one canonical field. Rules
// are tried in order and the first one that yields a non-empty value wins.
// A rule starting with "$." is evaluated as a JSONPath expression against
// the whole record; any other rule is a direct key lookup.
type FieldRules []string

// RuleSet maps every canonical field to its resolution rules. Rule tables
// are data: supporting a new vendor shape means appending rules, not code.
type RuleSet struct {
	ExternalID  FieldRules
	Date        FieldRules
	Description FieldRules
	Amount      FieldRules
	Type        FieldRules
	Balance     FieldRules
	Reference   FieldRules
	DebitFlags  FieldRules // boolean flags meaning "this is a debit"
	DateFormats []string   // layouts tried in order after RFC3339
}

// DefaultRules returns the rule set covering the vendor shapes seen so far.
func DefaultRules() RuleSet {
	return RuleSet{
		ExternalID:  FieldRules{"transactionId", "txnId", "id", "$.transaction.id"},
		Date:        FieldRules{"date", "txnDate", "valueDate", "$.dates.value"},
		Description: FieldRules{"description", "narration", "remarks"},
		Amount:      FieldRules{"amount", "txnAmount", "value"},
		Type:        FieldRules{"type", "txnType", "drCr"},
		Balance:     FieldRules{"balance", "runningBalance", "closingBalance"},
		Reference:   FieldRules{"reference", "refNo", "utr"},
		DebitFlags:  FieldRules{"isDebit", "debitFlag"},
		DateFormats: []string{"2006-01-02", "02/01/2006"},
	}
}

// resolve walks the rules in order against one record and returns the first
// non-nil, non-empty value.
func (rules FieldRules) resolve(record map[string]any) (any, bool) {
	for _, rule := range rules {
		var v any
		if strings.HasPrefix(rule, "$.") {
			got, err := jsonpath.Get(rule, any(record))
			if err != nil {
				continue
			}
			// jsonpath may hand back a list of one answer; keep the first.
			if list, ok := got.([]any); ok {
				if len(list) == 0 {
					continue
				}
				got = list[0]
			}
			v = got
		} else {
			var ok bool
			v, ok = record[rule]
			if !ok {
				continue
			}
		}
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}
