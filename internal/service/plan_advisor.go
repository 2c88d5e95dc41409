package service

import (
	"context"
	"fmt"

	"ebook-studio-be/internal/config"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"
)

// PlanAdvisor recommends a plan tier from the size of the open cart.
type PlanAdvisor interface {
	// SuggestForOwner returns the suggestion (nil for an empty cart) and the cart size it was based on.
	SuggestForOwner(ctx context.Context, owner entity.OwnerID) (*entity.Plan, int, error)
}

type planAdvisor struct {
	uowFactory unitofwork.RepositoryFactory
	rules      []config.AdvisorRule
}

func NewPlanAdvisor(uowFactory unitofwork.RepositoryFactory, rules []config.AdvisorRule) PlanAdvisor {
	if len(rules) == 0 {
		rules = config.DefaultAdvisorRules
	}
	return &planAdvisor{
		uowFactory: uowFactory,
		rules:      rules,
	}
}

func (a *planAdvisor) SuggestForOwner(ctx context.Context, owner entity.OwnerID) (*entity.Plan, int, error) {
	if owner.IsNil() {
		return nil, 0, ErrInvalidInput
	}
	uow := a.uowFactory.NewUnitOfWork(ctx)

	n, err := uow.CartRepository().Count(ctx, lineScopeSpecs(owner, entity.ScopeTemp)...)
	if err != nil {
		return nil, 0, fmt.Errorf("count cart: %w", err)
	}
	if n == 0 {
		return nil, 0, nil
	}

	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "rate"},
	)
	if err != nil {
		return nil, int(n), fmt.Errorf("load plans: %w", err)
	}
	return Suggest(plans, int(n), a.rules), int(n), nil
}

// Suggest applies the first rule whose MinItems the cart reaches. rules must be
// sorted by MinItems descending. When no plan carries the wanted rank the
// closest lower paid rank wins, then the cheapest paid plan.
func Suggest(plans []*entity.Plan, lineCount int, rules []config.AdvisorRule) *entity.Plan {
	if lineCount <= 0 {
		return nil
	}

	target, matched := 0, false
	for _, r := range rules {
		if lineCount >= r.MinItems {
			target, matched = r.TierRank, true
			break
		}
	}
	if !matched {
		return nil
	}

	paid := make([]*entity.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive && !p.IsTrial {
			paid = append(paid, p)
		}
	}
	if len(paid) == 0 {
		return nil
	}

	if target == -1 {
		return pickBy(paid, func(best, p *entity.Plan) bool {
			return p.TierRank > best.TierRank || (p.TierRank == best.TierRank && p.Rate.GreaterThan(best.Rate))
		})
	}

	var exact, lower *entity.Plan
	for _, p := range paid {
		switch {
		case p.TierRank == target:
			if exact == nil || p.Rate.LessThan(exact.Rate) {
				exact = p
			}
		case p.TierRank < target:
			if lower == nil || p.TierRank > lower.TierRank ||
				(p.TierRank == lower.TierRank && p.Rate.LessThan(lower.Rate)) {
				lower = p
			}
		}
	}
	if exact != nil {
		return exact
	}
	if lower != nil {
		return lower
	}
	return pickBy(paid, func(best, p *entity.Plan) bool {
		return p.Rate.LessThan(best.Rate)
	})
}

func pickBy(plans []*entity.Plan, better func(best, p *entity.Plan) bool) *entity.Plan {
	best := plans[0]
	for _, p := range plans[1:] {
		if better(best, p) {
			best = p
		}
	}
	return best
}
