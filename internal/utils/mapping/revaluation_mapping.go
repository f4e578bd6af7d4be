package mapping

import (
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/models"
)

// ToModelRevaluationRun converts a domain RevaluationRun to its model
func ToModelRevaluationRun(d domain.RevaluationRun) models.RevaluationRun {
	return models.RevaluationRun{
		RevaluationID:     d.RevaluationID,
		AsOf:              d.AsOf,
		BaseCurrency:      d.BaseCurrency,
		TotalGainLoss:     d.TotalGainLoss,
		VoucherNo:         d.VoucherNo,
		PositionsRevalued: d.PositionsRevalued,
		PositionsSkipped:  d.PositionsSkipped,
		AuditFields:       auditToModel(d.AuditFields),
	}
}

// ToDomainRevaluationRun converts a model RevaluationRun to its domain type
func ToDomainRevaluationRun(m models.RevaluationRun) domain.RevaluationRun {
	return domain.RevaluationRun{
		RevaluationID:     m.RevaluationID,
		AsOf:              m.AsOf,
		BaseCurrency:      m.BaseCurrency,
		TotalGainLoss:     m.TotalGainLoss,
		VoucherNo:         m.VoucherNo,
		PositionsRevalued: m.PositionsRevalued,
		PositionsSkipped:  m.PositionsSkipped,
		AuditFields:       auditToDomain(m.AuditFields),
	}
}
