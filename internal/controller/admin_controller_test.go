package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeAdmin struct {
	features []dto.FeatureResponse
	created  *dto.CreateFeatureRequest
	err      error
}

func (f *fakeAdmin) GetAllFeatures(ctx context.Context) ([]dto.FeatureResponse, error) {
	return f.features, f.err
}

func (f *fakeAdmin) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	f.created = &req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.FeatureResponse{Id: uuid.New(), Key: req.Key, Name: req.Name, Price: req.Price}, nil
}

func (f *fakeAdmin) UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	return nil, f.err
}

func (f *fakeAdmin) GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error) { return nil, f.err }

func (f *fakeAdmin) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	return nil, f.err
}

func (f *fakeAdmin) UpdatePlan(ctx context.Context, id uuid.UUID, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	return nil, f.err
}

func signToken(t *testing.T, role entity.UserRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   "someone@example.com",
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func newAdminApp(svc service.IAdminService) *fiber.App {
	app := newApp()
	NewAdminController(svc).RegisterRoutes(app, serverutils.NewJwtMiddleware(testSecret))
	return app
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := newAdminApp(&fakeAdmin{})

	code, _ := doJSON(t, app, http.MethodGet, "/admin/features", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, app, http.MethodGet, "/admin/features", "", map[string]string{"Authorization": signToken(t, entity.UserRoleAuthor)})
	assert.Equal(t, http.StatusForbidden, code)

	code, body := doJSON(t, app, http.MethodGet, "/admin/features", "", map[string]string{"Authorization": signToken(t, entity.UserRoleAdmin)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
}

func TestAdminCreateFeature(t *testing.T) {
	svc := &fakeAdmin{}
	app := newAdminApp(svc)
	auth := map[string]string{"Authorization": signToken(t, entity.UserRoleAdmin)}

	code, body := doJSON(t, app, http.MethodPost, "/admin/features", `{"key":"ai-cover","name":"AI cover","price":"4.50","is_active":true}`, auth)

	assert.Equal(t, http.StatusCreated, code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "ai-cover", svc.created.Key)
	assert.Equal(t, "4.5", svc.created.Price.String())
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ai-cover", data["key"])
}

func TestAdminCreateFeatureErrors(t *testing.T) {
	auth := func(t *testing.T) map[string]string {
		return map[string]string{"Authorization": signToken(t, entity.UserRoleAdmin)}
	}

	app := newAdminApp(&fakeAdmin{})
	code, _ := doJSON(t, app, http.MethodPost, "/admin/features", `{"name":"no key"}`, auth(t))
	assert.Equal(t, http.StatusBadRequest, code)

	app = newAdminApp(&fakeAdmin{err: service.ErrDuplicateKey})
	code, body := doJSON(t, app, http.MethodPost, "/admin/features", `{"key":"dup","name":"Dup"}`, auth(t))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["success"])
}

func TestAdminUpdateRejectsBadId(t *testing.T) {
	app := newAdminApp(&fakeAdmin{})

	code, _ := doJSON(t, app, http.MethodPut, "/admin/plans/not-a-uuid", `{}`, map[string]string{"Authorization": signToken(t, entity.UserRoleAdmin)})

	assert.Equal(t, http.StatusBadRequest, code)
}
