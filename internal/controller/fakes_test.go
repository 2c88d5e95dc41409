package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	added     bool
	addErr    error
	removeErr error
	clearErr  error
	cleared   bool
	count     int
	catalog   *dto.FeatureCatalogResponse
	preview   *dto.CartPreviewResponse

	lastOwner   entity.OwnerID
	lastFeature uuid.UUID
}

func (f *fakeCart) Catalog(ctx context.Context, owner entity.OwnerID) (*dto.FeatureCatalogResponse, error) {
	f.lastOwner = owner
	return f.catalog, nil
}

func (f *fakeCart) GetLines(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) ([]*entity.AuthorPlanFeature, error) {
	return nil, nil
}

func (f *fakeCart) AddFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) (bool, error) {
	f.lastOwner, f.lastFeature = owner, featureId
	return f.added, f.addErr
}

func (f *fakeCart) RemoveFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) error {
	f.lastOwner, f.lastFeature = owner, featureId
	return f.removeErr
}

func (f *fakeCart) ClearTemp(ctx context.Context, owner entity.OwnerID) error {
	f.lastOwner = owner
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	f.count = 0
	return nil
}

func (f *fakeCart) TotalPrice(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeCart) Count(ctx context.Context, owner entity.OwnerID) (int, error) { return f.count, nil }

func (f *fakeCart) Preview(ctx context.Context, owner entity.OwnerID) (*dto.CartPreviewResponse, error) {
	return f.preview, nil
}

type fakeAdvisor struct {
	plan  *entity.Plan
	count int
	err   error
}

func (f *fakeAdvisor) SuggestForOwner(ctx context.Context, owner entity.OwnerID) (*entity.Plan, int, error) {
	return f.plan, f.count, f.err
}

type fakeEntitlement struct {
	result *service.ConfirmResult
	err    error
	last   service.ConfirmCommand
}

func (f *fakeEntitlement) Confirm(ctx context.Context, cmd service.ConfirmCommand) (*service.ConfirmResult, error) {
	f.last = cmd
	return f.result, f.err
}

type fakeBilling struct {
	summary   *dto.OrderSummaryResponse
	bills     []dto.BillResponse
	notifyErr error
	notified  []*payment.Notification
}

func (f *fakeBilling) Summary(ctx context.Context, owner entity.OwnerID, planId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	if f.summary == nil {
		return nil, service.ErrPlanNotFound
	}
	return f.summary, nil
}

func (f *fakeBilling) ListBills(ctx context.Context, owner entity.OwnerID) ([]dto.BillResponse, error) {
	return f.bills, nil
}

func (f *fakeBilling) HandlePaymentNotification(ctx context.Context, n *payment.Notification) error {
	f.notified = append(f.notified, n)
	return f.notifyErr
}

// asOwner stands in for the JWT middleware.
func asOwner(owner entity.OwnerID, email string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(serverutils.LocalUserID, owner.String())
		ctx.Locals(serverutils.LocalEmail, email)
		return ctx.Next()
	}
}

func anonymous(ctx *fiber.Ctx) error { return ctx.Next() }

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}
