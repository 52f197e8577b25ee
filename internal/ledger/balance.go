package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Derivation functions are pure reads over the Store. They never mutate,
// never error, and treat stale or unknown references as contributing zero
// so corrupted data degrades instead of crashing callers.

// AccountBalance folds the account's transactions over its initial balance:
// income adds, expense subtracts. Order-independent. Unknown accounts
// yield zero.
func (s *Service) AccountBalance(accountID string) decimal.Decimal {
	acct, ok := s.store.Account(accountID)
	if !ok {
		return decimal.Zero
	}
	balance := acct.InitialBalance
	for _, t := range s.store.transactions {
		if t.AccountID != accountID {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			balance = balance.Add(t.Amount)
		case model.TypeExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// EnvelopeSpending sums expense amounts booked against the envelope within
// the period, inclusive of both ends. Use CurrentMonth for the default
// period.
func (s *Service) EnvelopeSpending(envelopeID string, period Period) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.store.transactions {
		if t.EnvelopeID == envelopeID && t.Type == model.TypeExpense && period.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CurrentMonth returns the calendar month containing now.
func (s *Service) CurrentMonth() Period {
	return MonthPeriod(s.now())
}

// EnvelopeBalance is the authoritative money-still-available figure with
// cross-month rollover. Funding is the sum of the effective monthly budget
// over every month the envelope has been active, so a mid-history budget
// change stays historically correct. Income on the envelope adds, expense
// subtracts. The result can be negative and is not clamped.
func (s *Service) EnvelopeBalance(envelopeID string) decimal.Decimal {
	env, ok := s.store.Envelope(envelopeID)
	if !ok {
		return decimal.Zero
	}

	months := activeMonths(env.CreatedAt, s.now())
	if len(months) == 0 {
		return decimal.Zero
	}

	balance := decimal.Zero
	for _, m := range months {
		balance = balance.Add(s.EffectiveMonthlyBudget(envelopeID, m))
	}
	for _, t := range s.store.transactions {
		if t.EnvelopeID != envelopeID {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			balance = balance.Add(t.Amount)
		case model.TypeExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// activeMonths lists the month keys from createdAt's month through now's
// month, inclusive. Empty when createdAt is in the future.
func activeMonths(createdAt, now time.Time) []string {
	n := monthsBetween(createdAt, now) + 1
	if n <= 0 {
		return nil
	}
	start := time.Date(createdAt.Year(), createdAt.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, id.MonthKey(start.AddDate(0, i, 0)))
	}
	return months
}

// MonthlyIncome sums income within the period, excluding account transfer
// legs. Envelope reallocation legs count; the pair cancels out.
func (s *Service) MonthlyIncome(period Period) decimal.Decimal {
	return s.sumByType(model.TypeIncome, period)
}

// MonthlySpending sums expenses within the period, excluding account
// transfer legs.
func (s *Service) MonthlySpending(period Period) decimal.Decimal {
	return s.sumByType(model.TypeExpense, period)
}

// YearToDateIncome sums income from January 1st through now.
func (s *Service) YearToDateIncome() decimal.Decimal {
	return s.sumByType(model.TypeIncome, YearToDatePeriod(s.now()))
}

// YearToDateSpending sums expenses from January 1st through now.
func (s *Service) YearToDateSpending() decimal.Decimal {
	return s.sumByType(model.TypeExpense, YearToDatePeriod(s.now()))
}

func (s *Service) sumByType(typ model.TransactionType, period Period) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.store.transactions {
		if t.Type == typ && !t.IsTransfer && period.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}
