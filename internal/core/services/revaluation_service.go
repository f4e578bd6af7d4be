package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// revaluationService prices open foreign-currency positions and books the
// aggregate unrealized gain/loss as one adjusting voucher per run.
type revaluationService struct {
	baseService
	revalRepo     portsrepo.RevaluationRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
	rates         portssvc.RateReaderSvc
}

// NewRevaluationService creates a new revaluation service.
func NewRevaluationService(revalRepo portsrepo.RevaluationRepositoryFacade, reportingRepo portsrepo.ReportingRepository, rates portssvc.RateReaderSvc) portssvc.RevaluationSvcFacade {
	return &revaluationService{
		revalRepo:     revalRepo,
		reportingRepo: reportingRepo,
		rates:         rates,
	}
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

// Revalue prices every open position as of the given instant. Positions
// with no resolvable rate are skipped and reported; a zero aggregate
// records the run without a voucher. Posted rows are never edited.
func (s *revaluationService) Revalue(ctx context.Context, asOf time.Time, requestingUserID string) (*domain.RevaluationResult, error) {
	logger := s.logger(ctx)
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	base := s.rates.BaseCurrency()

	positions, err := s.reportingRepo.AggregateOpenPositions(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open positions: %w", err)
	}

	var (
		revalued  []domain.RevaluedPosition
		skipped   []domain.SkippedPosition
		aggregate decimal.Decimal
	)
	for _, pos := range positions {
		rate, err := s.rates.GetRate(ctx, pos.CurrencyCode, base, asOf)
		if err != nil {
			if errors.Is(err, apperrors.ErrRateUnavailable) {
				logger.Warn("Skipping position with no resolvable rate",
					slog.String("account", pos.Account),
					slog.String("currency", pos.CurrencyCode),
				)
				skipped = append(skipped, domain.SkippedPosition{
					Account:      pos.Account,
					CurrencyCode: pos.CurrencyCode,
					Reason:       err.Error(),
				})
				continue
			}
			return nil, fmt.Errorf("failed to resolve rate for %s: %w", pos.CurrencyCode, err)
		}

		rp := accounting.RevaluePosition(pos, rate)
		revalued = append(revalued, rp)
		aggregate = aggregate.Add(rp.GainLoss)
	}
	aggregate = accounting.RoundBase(aggregate)

	now := time.Now().UTC()
	run := domain.RevaluationRun{
		RevaluationID:     uuid.NewString(),
		AsOf:              asOf,
		BaseCurrency:      base,
		TotalGainLoss:     aggregate,
		VoucherNo:         nil,
		PositionsRevalued: len(revalued),
		PositionsSkipped:  len(skipped),
		AuditFields:       domain.NewAudit(requestingUserID, now),
	}

	var entries []domain.JournalEntry
	if !aggregate.IsZero() {
		voucherNo := uuid.NewString()
		run.VoucherNo = &voucherNo
		entries = buildRevaluationLegs(&run, voucherNo, aggregate, asOf, run.AuditFields)

		if err := accounting.ValidateVoucherBalance(entries); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrVoucherUnbalanced, err)
		}
	}

	if err := s.revalRepo.SaveRun(ctx, run, entries); err != nil {
		s.LogError(ctx, err, "Revaluation run rolled back", slog.String("revaluation_id", run.RevaluationID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIntegrityViolation, err)
	}

	logger.Info("Revaluation run completed",
		slog.String("revaluation_id", run.RevaluationID),
		slog.Time("as_of", asOf),
		slog.String("total_gain_loss", aggregate.String()),
		slog.Int("positions_revalued", run.PositionsRevalued),
		slog.Int("positions_skipped", run.PositionsSkipped),
		slog.Bool("voucher_written", run.VoucherNo != nil),
	)

	return &domain.RevaluationResult{
		Run:       run,
		Positions: revalued,
		Skipped:   skipped,
	}, nil
}

// GetRevaluationByID retrieves one run.
func (s *revaluationService) GetRevaluationByID(ctx context.Context, revaluationID string) (*domain.RevaluationRun, error) {
	run, err := s.revalRepo.FindRunByID(ctx, revaluationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get revaluation run: %w", err)
	}
	return run, nil
}

// ListRevaluations retrieves a paginated run history, most recent first.
func (s *revaluationService) ListRevaluations(ctx context.Context, limit int, nextToken *string) ([]domain.RevaluationRun, *string, error) {
	runs, next, err := s.revalRepo.ListRuns(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list revaluation runs: %w", err)
	}
	return runs, next, nil
}

// buildRevaluationLegs books the aggregate on the FX gain/loss label with
// the revaluation reserve as counterpart. Gains credit the gain account;
// losses debit the loss account.
func buildRevaluationLegs(run *domain.RevaluationRun, voucherNo string, aggregate decimal.Decimal, asOf time.Time, audit domain.AuditFields) []domain.JournalEntry {
	description := fmt.Sprintf("Currency revaluation as of %s", asOf.Format("2006-01-02"))

	fxAccount := domain.AccountForexGain
	fxDebit := decimal.Zero
	fxCredit := aggregate
	reserveDebit := aggregate
	reserveCredit := decimal.Zero
	if aggregate.IsNegative() {
		loss := aggregate.Abs()
		fxAccount = domain.AccountForexLoss
		fxDebit = loss
		fxCredit = decimal.Zero
		reserveDebit = decimal.Zero
		reserveCredit = loss
	}

	return []domain.JournalEntry{
		{
			EntryID:       uuid.NewString(),
			VoucherNo:     voucherNo,
			EntryDate:     asOf,
			Description:   description,
			Account:       fxAccount,
			DebitAmount:   fxDebit,
			CreditAmount:  fxCredit,
			RevaluationID: &run.RevaluationID,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			VoucherNo:     voucherNo,
			EntryDate:     asOf,
			Description:   description,
			Account:       domain.AccountRevaluationReserve,
			DebitAmount:   reserveDebit,
			CreditAmount:  reserveCredit,
			RevaluationID: &run.RevaluationID,
			AuditFields:   audit,
		},
	}
}
