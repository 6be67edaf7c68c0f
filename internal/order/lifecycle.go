// Package order implements the order lifecycle state machine as pure
// transition functions. Nothing here touches persistence; callers persist the
// returned records and apply penalties or payments through the ledger.
package order

import (
	"fmt"
	"time"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// RejectResult is the outcome of rejecting a pending order
type RejectResult struct {
	Order             domain.Order
	ReputationPenalty int
}

// CompleteResult is the outcome of completing a workable order
type CompleteResult struct {
	Order               domain.Order
	Quality             int
	Rating              int
	PaymentCents        domain.Money
	TipCents            domain.Money
	InventoryDeductions map[string]int
}

// FailResult is the outcome of failing a workable order
type FailResult struct {
	Order             domain.Order
	ReputationPenalty int
}

// Accept transitions a pending order to accepted and stamps AcceptedAt
func Accept(o domain.Order, now time.Time) (domain.Order, error) {
	if o.Status != domain.OrderPending {
		return o, transitionError(o, domain.OrderAccepted)
	}

	o.Status = domain.OrderAccepted
	o.AcceptedAt = &now
	return o, nil
}

// Reject transitions a pending order to rejected. The reputation penalty
// scales with order value so turning away big customers hurts more.
func Reject(o domain.Order, now time.Time) (RejectResult, error) {
	if o.Status != domain.OrderPending {
		return RejectResult{Order: o}, transitionError(o, domain.OrderRejected)
	}

	o.Status = domain.OrderRejected
	o.CompletedAt = &now

	return RejectResult{
		Order:             o,
		ReputationPenalty: rejectPenalty(o.TotalCents),
	}, nil
}

// Complete transitions a workable order to completed and derives payment,
// tip, rating, and inventory consumption from the quality score and the
// business type's product definitions. Stock is NOT verified here; callers
// check availability before committing the deductions.
func Complete(o domain.Order, quality int, bt *domain.BusinessType, now time.Time) (CompleteResult, error) {
	if !o.Status.IsWorkable() {
		return CompleteResult{Order: o}, transitionError(o, domain.OrderCompleted)
	}

	quality = clampQuality(quality)

	deductions := make(map[string]int)
	for _, item := range o.Items {
		p := bt.ProductByID(item.ProductID)
		if p == nil {
			return CompleteResult{Order: o}, fmt.Errorf("%w: '%s'", domain.ErrUnknownProduct, item.ProductID)
		}
		if p.ConsumesInventory {
			deductions[p.InventoryItem] += item.Quantity * p.UnitsPerSale
		}
	}

	o.Status = domain.OrderCompleted
	o.CompletedAt = &now

	return CompleteResult{
		Order:               o,
		Quality:             quality,
		Rating:              RatingFromQuality(quality),
		PaymentCents:        o.TotalCents,
		TipCents:            tipFor(o.TotalCents, quality),
		InventoryDeductions: deductions,
	}, nil
}

// Fail transitions a workable order to failed with the given reason. No
// payment; the stockout penalty is steeper than a plain rejection.
func Fail(o domain.Order, reason string, now time.Time) (FailResult, error) {
	if !o.Status.IsWorkable() {
		return FailResult{Order: o}, transitionError(o, domain.OrderFailed)
	}

	o.Status = domain.OrderFailed
	o.FailReason = reason
	o.CompletedAt = &now

	penalty := FailPenaltyBase
	if reason == domain.FailReasonStockout {
		penalty = StockoutPenalty
	}

	return FailResult{Order: o, ReputationPenalty: penalty}, nil
}

// RatingFromQuality maps a 0-100 quality score to a 1-5 star rating.
// Scores of 95 and above earn five stars; the remaining 0-94 range is split
// into four equal tiers by ceiling division. Pure and deterministic.
func RatingFromQuality(quality int) int {
	quality = clampQuality(quality)
	if quality >= TopRatingThreshold {
		return MaxRating
	}
	rating := (quality*(MaxRating-1) + TopRatingThreshold - 1) / TopRatingThreshold
	if rating < MinRating {
		rating = MinRating
	}
	return rating
}

// tipFor ramps the tip from zero at the quality threshold up to
// TipMaxPercent of order value at quality 100
func tipFor(total domain.Money, quality int) domain.Money {
	if quality <= TipQualityThreshold {
		return 0
	}
	span := domain.MaxPercentScale - TipQualityThreshold
	return total * domain.Money(quality-TipQualityThreshold) * TipMaxPercent /
		(domain.Money(span) * 100)
}

func rejectPenalty(total domain.Money) int {
	penalty := int(total / RejectPenaltyDivisorCents)
	if penalty < MinRejectPenalty {
		penalty = MinRejectPenalty
	}
	if penalty > MaxRejectPenalty {
		penalty = MaxRejectPenalty
	}
	return penalty
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > domain.MaxPercentScale {
		return domain.MaxPercentScale
	}
	return q
}

func transitionError(o domain.Order, target domain.OrderStatus) error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: order %s is %s", domain.ErrOrderAlreadyFinal, o.ID, o.Status)
	}
	return fmt.Errorf("%w: order %s cannot move %s -> %s",
		domain.ErrInvalidTransition, o.ID, o.Status, target)
}
