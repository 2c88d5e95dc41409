package service

import (
	"context"
	"testing"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/pkg/admin/feature"
	"ebook-studio-be/pkg/admin/plan"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogEvents struct {
	features []string
	plans    []string
}

func (e *fakeCatalogEvents) PublishFeatureChanged(_ context.Context, action string, _ *entity.Feature) {
	e.features = append(e.features, action)
}

func (e *fakeCatalogEvents) PublishPlanChanged(_ context.Context, action string, _ *entity.Plan) {
	e.plans = append(e.plans, action)
}

func newTestAdminService(store *fakeStore, events *fakeCatalogEvents) IAdminService {
	return NewAdminService(store, logger.NewNopLogger(), plan.NewManager("USD"), feature.NewManager("USD"), events)
}

func TestAdminFeatureLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	events := &fakeCatalogEvents{}
	svc := newTestAdminService(store, events)

	created, err := svc.CreateFeature(ctx, dto.CreateFeatureRequest{
		Key:      "ai_outline",
		Name:     "AI Outline",
		Price:    decimal.RequireFromString("9.99"),
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", created.Currency)

	_, err = svc.CreateFeature(ctx, dto.CreateFeatureRequest{Key: "ai_outline", Name: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = svc.CreateFeature(ctx, dto.CreateFeatureRequest{Key: "neg", Name: "Neg", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	price := decimal.RequireFromString("14.99")
	updated, err := svc.UpdateFeature(ctx, created.Id, dto.UpdateFeatureRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))

	_, err = svc.UpdateFeature(ctx, uuid.New(), dto.UpdateFeatureRequest{Price: &price})
	assert.ErrorIs(t, err, ErrFeatureNotFound)

	all, err := svc.GetAllFeatures(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{"created", "updated"}, events.features)
}

func TestAdminRateChangeKeepsCartSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestAdminService(store, &fakeCatalogEvents{})
	cart := newTestCartService(store)
	owner := newOwner()

	created, err := svc.CreateFeature(ctx, dto.CreateFeatureRequest{
		Key: "cover", Name: "Cover", Price: decimal.RequireFromString("5.00"), IsActive: true,
	})
	require.NoError(t, err)
	_, err = cart.AddFeature(ctx, owner, created.Id)
	require.NoError(t, err)

	price := decimal.RequireFromString("50.00")
	_, err = svc.UpdateFeature(ctx, created.Id, dto.UpdateFeatureRequest{Price: &price})
	require.NoError(t, err)

	total, err := cart.TotalPrice(ctx, owner, entity.ScopeTemp)
	require.NoError(t, err)
	assert.Equal(t, "5.00", total.StringFixed(2))
}

func TestAdminPlanLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	events := &fakeCatalogEvents{}
	svc := newTestAdminService(store, events)

	created, err := svc.CreatePlan(ctx, dto.CreatePlanRequest{
		Name:         "Pro",
		Slug:         "pro",
		Price:        decimal.RequireFromString("29.99"),
		TaxRate:      decimal.RequireFromString("0.11"),
		DurationDays: 30,
		MaxEbooks:    10,
		TierRank:     2,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, 2, created.TierRank)

	_, err = svc.CreatePlan(ctx, dto.CreatePlanRequest{Name: "Pro 2", Slug: "pro", DurationDays: 30})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	inactive := false
	updated, err := svc.UpdatePlan(ctx, created.Id, dto.UpdatePlanRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdatePlan(ctx, uuid.New(), dto.UpdatePlanRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	all, err := svc.GetAllPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{"created", "updated"}, events.plans)
}
