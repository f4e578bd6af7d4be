package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// postingService converts drafts to the base currency and books them as
// immutable transaction rows with balanced journal legs.
type postingService struct {
	baseService
	postingRepo portsrepo.PostingRepositoryFacade
	rates       portssvc.RateReaderSvc
}

// NewPostingService creates a new posting service.
func NewPostingService(postingRepo portsrepo.PostingRepositoryFacade, rates portssvc.RateReaderSvc) portssvc.PostingSvcFacade {
	return &postingService{
		postingRepo: postingRepo,
		rates:       rates,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction converts the draft at the rate effective on its value date
// and writes the transaction row plus two balanced legs atomically. The
// stored base amount and rate are frozen; later rate changes never touch them.
func (s *postingService) PostTransaction(ctx context.Context, draft domain.TransactionDraft, creatorUserID string) (*domain.PostingResult, error) {
	draft.CurrencyCode = strings.ToUpper(strings.TrimSpace(draft.CurrencyCode))

	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	base := s.rates.BaseCurrency()
	rate, err := s.rates.GetRate(ctx, draft.CurrencyCode, base, draft.TxnDate)
	if err != nil {
		s.LogError(ctx, err, "Conversion failed for posting",
			slog.String("currency", draft.CurrencyCode),
			slog.Time("txn_date", draft.TxnDate),
		)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConversionFailed, err)
	}

	baseAmount := accounting.RoundBase(draft.Amount.Mul(rate))

	now := time.Now().UTC()
	audit := domain.NewAudit(creatorUserID, now)

	mct := domain.MultiCurrencyTransaction{
		MctID:           uuid.NewString(),
		TxnDate:         draft.TxnDate,
		Description:     draft.Description,
		Amount:          draft.Amount,
		CurrencyCode:    draft.CurrencyCode,
		BaseAmount:      baseAmount,
		RateUsed:        rate,
		TxnType:         draft.TxnType,
		Account:         draft.Account,
		ReferenceNumber: draft.ReferenceNumber,
		AuditFields:     audit,
	}

	voucherNo := uuid.NewString()
	entries := buildPostingLegs(&mct, voucherNo, audit)

	if err := accounting.ValidateVoucherBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrVoucherUnbalanced, err)
	}

	if err := s.postingRepo.SavePosting(ctx, mct, entries); err != nil {
		s.LogError(ctx, err, "Posting rolled back", slog.String("mct_id", mct.MctID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIntegrityViolation, err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("mct_id", mct.MctID),
		slog.String("voucher_no", voucherNo),
		slog.String("currency", mct.CurrencyCode),
		slog.String("base_amount", baseAmount.String()),
	)

	return &domain.PostingResult{
		TransactionID: mct.MctID,
		VoucherNo:     voucherNo,
		BaseAmount:    baseAmount,
		RateUsed:      rate,
	}, nil
}

// GetPostingByID retrieves a posted transaction together with its legs.
func (s *postingService) GetPostingByID(ctx context.Context, mctID string) (*domain.MultiCurrencyTransaction, []domain.JournalEntry, error) {
	mct, err := s.postingRepo.FindTransactionByID(ctx, mctID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get posting: %w", err)
	}

	entries, err := s.postingRepo.FindEntriesBySourceTransaction(ctx, mctID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get posting legs: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("%w: posted transaction %s has no journal legs", apperrors.ErrIntegrityViolation, mctID)
	}

	return mct, entries, nil
}

// ListPostings retrieves a paginated list of postings.
func (s *postingService) ListPostings(ctx context.Context, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error) {
	to := params.To
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if !params.From.IsZero() && to.Before(params.From) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}

	txns, nextToken, err := s.postingRepo.ListTransactions(ctx, params.From, to, strings.ToUpper(params.CurrencyCode), params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}

	return dto.ToListPostingsResponse(txns, nextToken), nil
}

// buildPostingLegs books the base amount once on each side. DEBIT drafts
// debit the draft account against the clearing account; CREDIT drafts mirror.
func buildPostingLegs(mct *domain.MultiCurrencyTransaction, voucherNo string, audit domain.AuditFields) []domain.JournalEntry {
	debitAccount := mct.Account
	creditAccount := domain.AccountFXClearing
	if mct.TxnType == domain.Credit {
		debitAccount = domain.AccountFXClearing
		creditAccount = mct.Account
	}

	return []domain.JournalEntry{
		{
			EntryID:      uuid.NewString(),
			VoucherNo:    voucherNo,
			EntryDate:    mct.TxnDate,
			Description:  mct.Description,
			Account:      debitAccount,
			DebitAmount:  mct.BaseAmount,
			CreditAmount: decimal.Zero,
			SourceMctID:  &mct.MctID,
			AuditFields:  audit,
		},
		{
			EntryID:      uuid.NewString(),
			VoucherNo:    voucherNo,
			EntryDate:    mct.TxnDate,
			Description:  mct.Description,
			Account:      creditAccount,
			DebitAmount:  decimal.Zero,
			CreditAmount: mct.BaseAmount,
			SourceMctID:  &mct.MctID,
			AuditFields:  audit,
		},
	}
}
