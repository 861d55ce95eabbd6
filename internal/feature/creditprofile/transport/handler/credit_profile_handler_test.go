package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	jwtmw "credit_backend/internal/platform/jwt"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockProfileUsecase struct {
	GetOrCreateFunc func(ctx context.Context, userID string) (*entity.CreditProfile, error)
	RefreshFunc     func(ctx context.Context, userID string) (*entity.CreditProfile, error)
	ListAllFunc     func(ctx context.Context) ([]*entity.CreditProfile, error)
}

func (m *mockProfileUsecase) GetOrCreate(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	return m.GetOrCreateFunc(ctx, userID)
}

func (m *mockProfileUsecase) Refresh(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	return m.RefreshFunc(ctx, userID)
}

func (m *mockProfileUsecase) ListAll(ctx context.Context) ([]*entity.CreditProfile, error) {
	return m.ListAllFunc(ctx)
}

func profileFor(userID string, score int) *entity.CreditProfile {
	return &entity.CreditProfile{
		ID:               "p-" + userID,
		UserID:           userID,
		CreditScore:      score,
		CreditScoreRange: entity.ScoreRange,
		ReportDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func asCaller(id string, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Set(jwtmw.ContextRole, role)
		c.Next()
	}
}

func newRouter(uc CreditProfileUsecase, callerID string, role identity.Role) *gin.Engine {
	h := NewCreditProfileHandler(uc, zap.NewNop())
	r := gin.New()
	g := r.Group("/credit-profile", asCaller(callerID, role))
	g.GET("/me", h.Me)
	g.POST("/refresh", h.Refresh)
	g.GET("/admin/all", h.ListAll)
	g.GET("/:userId", h.ByUser)
	return r
}

type envelope struct {
	Message       string         `json:"message"`
	CreditProfile map[string]any `json:"creditProfile"`
}

func TestCreditProfileHandler_Me(t *testing.T) {
	uc := &mockProfileUsecase{
		GetOrCreateFunc: func(ctx context.Context, userID string) (*entity.CreditProfile, error) {
			assert.Equal(t, "u-1", userID)
			return profileFor(userID, 745), nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(uc, "u-1", identity.RoleUser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/me", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Credit profile retrieved successfully", body.Message)
	assert.Equal(t, "Very Good", body.CreditProfile["scoreRange"])
	assert.Equal(t, "300-850", body.CreditProfile["creditScoreRange"])
	assert.Equal(t, []any{}, body.CreditProfile["accounts"])
}

func TestCreditProfileHandler_Me_UnknownUser(t *testing.T) {
	uc := &mockProfileUsecase{
		GetOrCreateFunc: func(ctx context.Context, userID string) (*entity.CreditProfile, error) {
			return nil, apperror.NotFound("user")
		},
	}

	w := httptest.NewRecorder()
	newRouter(uc, "ghost", identity.RoleUser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/me", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestCreditProfileHandler_Refresh(t *testing.T) {
	uc := &mockProfileUsecase{
		RefreshFunc: func(ctx context.Context, userID string) (*entity.CreditProfile, error) {
			return profileFor(userID, 560), nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(uc, "u-1", identity.RoleUser).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/credit-profile/refresh", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Credit profile refreshed successfully", body.Message)
	assert.Equal(t, "Poor", body.CreditProfile["scoreRange"])
}

func TestCreditProfileHandler_ListAll(t *testing.T) {
	p := profileFor("u-2", 810)
	p.Owner = &identity.Identity{ID: "u-2", Email: "jane@example.com", FirstName: "Jane", LastName: "Smith"}
	uc := &mockProfileUsecase{
		ListAllFunc: func(ctx context.Context) ([]*entity.CreditProfile, error) {
			return []*entity.CreditProfile{p}, nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(uc, "admin", identity.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/admin/all", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Message        string           `json:"message"`
		CreditProfiles []map[string]any `json:"creditProfiles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "All credit profiles retrieved successfully", body.Message)
	require.Len(t, body.CreditProfiles, 1)
	assert.Equal(t, "Exceptional", body.CreditProfiles[0]["scoreRange"])
	user, ok := body.CreditProfiles[0]["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
}

func TestCreditProfileHandler_ByUser(t *testing.T) {
	const id = "5d2c1c7e-3b1f-4f6a-8e2d-9c0b7a6f5e41"

	t.Run("success", func(t *testing.T) {
		uc := &mockProfileUsecase{
			GetOrCreateFunc: func(ctx context.Context, userID string) (*entity.CreditProfile, error) {
				assert.Equal(t, id, userID)
				return profileFor(userID, 700), nil
			},
		}
		w := httptest.NewRecorder()
		newRouter(uc, "admin", identity.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := &mockProfileUsecase{}
		w := httptest.NewRecorder()
		newRouter(uc, "admin", identity.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		uc := &mockProfileUsecase{
			GetOrCreateFunc: func(ctx context.Context, userID string) (*entity.CreditProfile, error) {
				return nil, errors.New("db down")
			},
		}
		w := httptest.NewRecorder()
		newRouter(uc, "admin", identity.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-profile/"+id, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
