package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalizationError reports one vendor record the normalizer could not
// turn into a canonical transaction. It is per-record and non-fatal: the
// ingestion cycle counts it and moves on.
type NormalizationError struct {
	Field  string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize record: %s (%s)", e.Reason, e.Field)
}

// Normalizer turns heterogeneous vendor records into canonical
// transactions using an ordered rule set.
type Normalizer struct {
	rules RuleSet
}

// New returns a normalizer with the given rules.
func New(rules RuleSet) *Normalizer {
	return &Normalizer{rules: rules}
}

// NewDefault returns a normalizer with DefaultRules.
func NewDefault() *Normalizer {
	return New(DefaultRules())
}

// Normalize resolves the canonical fields of one vendor record. It fails
// only when no usable external id or amount can be resolved; every other
// field degrades to a zero value or default.
func (n *Normalizer) Normalize(record map[string]any) (*domain.NormalizedTransaction, error) {
	externalID, ok := n.resolveString(n.rules.ExternalID, record)
	if !ok {
		return nil, &NormalizationError{Field: "externalId", Reason: "no rule resolved a transaction id"}
	}

	rawAmount, ok := n.rules.Amount.resolve(record)
	if !ok {
		return nil, &NormalizationError{Field: "amount", Reason: "no rule resolved an amount"}
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, &NormalizationError{Field: "amount", Reason: err.Error()}
	}

	txn := &domain.NormalizedTransaction{
		ExternalID: externalID,
		Amount:     amount.Abs(),
		TxnType:    n.resolveType(record, amount),
	}

	if v, ok := n.rules.Date.resolve(record); ok {
		if d, err := n.parseDate(v); err == nil {
			txn.TxnDate = d
		}
	}
	txn.Description, _ = n.resolveString(n.rules.Description, record)
	txn.ReferenceNumber, _ = n.resolveString(n.rules.Reference, record)

	if v, ok := n.rules.Balance.resolve(record); ok {
		if b, err := parseAmount(v); err == nil {
			txn.Balance = &b
		}
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, &NormalizationError{Field: "raw", Reason: "record is not representable as JSON"}
	}
	txn.RawData = raw

	return txn, nil
}

// resolveType picks DEBIT/CREDIT: an explicit vendor type wins, then debit
// flags, then the amount's sign; the default is CREDIT.
func (n *Normalizer) resolveType(record map[string]any, amount decimal.Decimal) domain.TransactionType {
	if v, ok := n.resolveString(n.rules.Type, record); ok {
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "DEBIT", "DR", "D", "WITHDRAWAL":
			return domain.Debit
		case "CREDIT", "CR", "C", "DEPOSIT":
			return domain.Credit
		}
	}
	for _, flag := range n.rules.DebitFlags {
		if v, ok := record[flag]; ok {
			if b, ok := v.(bool); ok && b {
				return domain.Debit
			}
		}
	}
	if amount.IsNegative() {
		return domain.Debit
	}
	return domain.Credit
}

func (n *Normalizer) resolveString(rules FieldRules, record map[string]any) (string, bool) {
	v, ok := rules.resolve(record)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case float64:
		return decimal.NewFromFloat(s).String(), true
	case json.Number:
		return s.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func (n *Normalizer) parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("date value is not a string")
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range n.rules.DateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// parseAmount accepts JSON numbers and numeric strings, preserving the sign
// for type inference; callers take Abs for storage.
func parseAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case float64:
		return decimal.NewFromFloat(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case json.Number:
		return decimal.NewFromString(a.String())
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(a), ",", "")
		if s == "" {
			return decimal.Zero, fmt.Errorf("amount is empty")
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("amount has unsupported type %T", v)
	}
}
