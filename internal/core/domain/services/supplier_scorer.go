package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/pkg/errs"
)

// Weights sets how much each sub-score contributes to the final supplier score.
type Weights struct {
	Price    float64
	Shipping float64
	Rating   float64
	Risk     float64
}

// DefaultWeights favours price, then shipping speed, then rating, then return risk.
func DefaultWeights() Weights {
	return Weights{Price: 0.4, Shipping: 0.3, Rating: 0.2, Risk: 0.1}
}

func (w Weights) sum() float64 {
	return w.Price + w.Shipping + w.Rating + w.Risk
}

// normalized scales the weights so they sum to 1.
func (w Weights) normalized() Weights {
	total := w.sum()
	return Weights{
		Price:    w.Price / total,
		Shipping: w.Shipping / total,
		Rating:   w.Rating / total,
		Risk:     w.Risk / total,
	}
}

// ScoreBreakdown holds the four sub-scores of a candidate, each in [0, 1].
type ScoreBreakdown struct {
	PriceScore    float64
	ShippingScore float64
	RatingScore   float64
	RiskScore     float64
}

// SupplierScore is the ranking of one candidate supplier for a product. It is
// computed on demand and never persisted.
type SupplierScore struct {
	SupplierID   kernel.UUID
	SupplierName string
	SupplierSKU  string
	CostCents    int64
	Score        float64
	Breakdown    ScoreBreakdown
	Supplier     *supplier.Supplier
}

// SupplierScorer is a domain service ranking dropship suppliers with a weighted
// multi-factor score.
//
// Sub-scores:
//   - price:    1 / (cost/1000 + 1), strictly decreasing in cost (cost in cents)
//   - shipping: 2 / (avgShippingDays + 1)
//   - rating:   rating / 5
//   - risk:     1 - returnRate/100
//
// Every sub-score is clamped to [0, 1]. The weighted total is rounded to four
// decimals. Candidates are sorted by score descending; equal scores keep the order in
// which the candidates were given.
//
// Example usage:
//
//	scorer := services.NewSupplierScorer()
//	ranked := scorer.Rank(candidates)
//	if len(ranked) == 0 {
//	    // no eligible supplier for the product
//	}
//	best := ranked[0]
type SupplierScorer struct {
	weights Weights
}

// NewSupplierScorer creates a scorer with DefaultWeights.
func NewSupplierScorer() SupplierScorer {
	return SupplierScorer{weights: DefaultWeights()}
}

// NewSupplierScorerWithWeights creates a scorer with custom weights. Weights that do
// not sum to 1 are divided by their sum.
//
// Returns:
//   - SupplierScorer: scorer using the normalised weights
//   - error: ErrValueIsInvalid when a weight is negative or all weights are zero
func NewSupplierScorerWithWeights(w Weights) (SupplierScorer, error) {
	if w.Price < 0 || w.Shipping < 0 || w.Rating < 0 || w.Risk < 0 {
		return SupplierScorer{}, errs.NewValueIsInvalidErrorWithCause("weights", errors.New("weights must not be negative"))
	}
	if w.sum() <= 0 {
		return SupplierScorer{}, errs.NewValueIsInvalidErrorWithCause("weights", fmt.Errorf("weights sum to %v", w.sum()))
	}
	return SupplierScorer{weights: w.normalized()}, nil
}

// Weights returns the normalised weights in use.
func (s SupplierScorer) Weights() Weights {
	return s.weights
}

// Rank scores every eligible candidate and sorts them best first. Candidates whose
// offer is unavailable or whose supplier is inactive are skipped.
func (s SupplierScorer) Rank(candidates []supplier.Candidate) []SupplierScore {
	scores := make([]SupplierScore, 0, len(candidates))
	for _, c := range candidates {
		if c.Supplier.Validate() != nil || !c.Offer.Available || !c.Supplier.IsActive() {
			continue
		}
		scores = append(scores, s.Score(c))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// Score computes the score of a single candidate.
func (s SupplierScorer) Score(c supplier.Candidate) SupplierScore {
	breakdown := ScoreBreakdown{
		PriceScore:    clamp(1 / (float64(c.Offer.CostCents)/1000 + 1)),
		ShippingScore: clamp(2 / (c.Supplier.AvgShippingDays() + 1)),
		RatingScore:   clamp(c.Supplier.Rating() / 5),
		RiskScore:     clamp(1 - c.Supplier.ReturnRate()/100),
	}

	w := s.weights
	total := w.Price*breakdown.PriceScore +
		w.Shipping*breakdown.ShippingScore +
		w.Rating*breakdown.RatingScore +
		w.Risk*breakdown.RiskScore

	return SupplierScore{
		SupplierID:   c.Supplier.ID(),
		SupplierName: c.Supplier.Name(),
		SupplierSKU:  c.Offer.SupplierSKU,
		CostCents:    c.Offer.CostCents,
		Score:        round4(clamp(total)),
		Breakdown:    breakdown,
		Supplier:     c.Supplier,
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
