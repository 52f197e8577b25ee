package ledger

import (
	"github.com/shopspring/decimal"
)

// EffectiveMonthlyBudget returns the funding amount for an envelope in a
// month ("YYYY-MM"): the explicit monthly override when one exists,
// otherwise the envelope's default budget. Unknown envelopes yield zero.
func (s *Service) EffectiveMonthlyBudget(envelopeID, month string) decimal.Decimal {
	env, ok := s.store.Envelope(envelopeID)
	if !ok {
		return decimal.Zero
	}
	if amount, ok := s.store.Allocation(envelopeID, month); ok {
		return amount
	}
	return env.Budget
}

// TotalMonthlyBudgeted sums the effective monthly budget across all
// envelopes for the given month.
func (s *Service) TotalMonthlyBudgeted(month string) decimal.Decimal {
	total := decimal.Zero
	for _, env := range s.store.Envelopes() {
		total = total.Add(s.EffectiveMonthlyBudget(env.ID, month))
	}
	return total
}
