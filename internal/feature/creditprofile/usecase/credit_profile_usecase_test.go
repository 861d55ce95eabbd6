package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

// memoryProfiles is a map-backed ProfileRepository keyed by user id.
type memoryProfiles struct {
	mu      sync.Mutex
	byUser  map[string]*entity.CreditProfile
	findErr error
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{byUser: map[string]*entity.CreditProfile{}}
}

func (m *memoryProfiles) FindByUserID(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.byUser[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (m *memoryProfiles) Create(ctx context.Context, p *entity.CreditProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUser[p.UserID]; ok {
		return ErrProfileExists
	}
	m.byUser[p.UserID] = p
	return nil
}

func (m *memoryProfiles) DeleteByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUser, userID)
	return nil
}

func (m *memoryProfiles) ListAll(ctx context.Context) ([]*entity.CreditProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.CreditProfile, 0, len(m.byUser))
	for _, p := range m.byUser {
		out = append(out, p)
	}
	return out, nil
}

// lateWriter stores rival just before every Create, the way a concurrent
// first request would.
type lateWriter struct {
	*memoryProfiles
	rival *entity.CreditProfile
}

func (l *lateWriter) Create(ctx context.Context, p *entity.CreditProfile) error {
	l.mu.Lock()
	l.byUser[l.rival.UserID] = l.rival
	l.mu.Unlock()
	return l.memoryProfiles.Create(ctx, p)
}

// mockResolver knows a fixed set of users.
type mockResolver struct {
	known map[string]identity.Role
	err   error
}

func (m *mockResolver) ResolveIdentity(ctx context.Context, userID string) (identity.Identity, error) {
	if m.err != nil {
		return identity.Identity{}, m.err
	}
	role, ok := m.known[userID]
	if !ok {
		return identity.Identity{}, identity.ErrUnknownUser
	}
	return identity.Identity{ID: userID, Role: role}, nil
}

func newUsecase(repo ProfileRepository) *creditProfileUsecase {
	users := &mockResolver{known: map[string]identity.Role{"u-1": identity.RoleUser, "admin": identity.RoleAdmin}}
	return NewCreditProfileUsecase(repo, users, fixedRandom{20}, zap.NewNop())
}

func TestCreditProfileUsecase_GetOrCreate(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	uc := newUsecase(repo)

	first, err := uc.GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", first.UserID)
	assert.Len(t, repo.byUser, 1)

	second, err := uc.GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "existing profile is returned, not regenerated")
}

func TestCreditProfileUsecase_GetOrCreate_UnknownUser(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	uc := newUsecase(repo)

	_, err := uc.GetOrCreate(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, repo.byUser)
}

func TestCreditProfileUsecase_GetOrCreate_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	repo.findErr = errors.New("db down")
	uc := newUsecase(repo)

	_, err := uc.GetOrCreate(context.Background(), "u-1")

	assert.ErrorIs(t, err, repo.findErr)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreditProfileUsecase_Refresh(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	uc := newUsecase(repo)

	original, err := uc.GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), "u-1")
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, refreshed.ID)
	assert.Len(t, repo.byUser, 1)
	assert.Equal(t, refreshed.ID, repo.byUser["u-1"].ID)

	_, err = uc.Refresh(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreditProfileUsecase_ResolverFailure(t *testing.T) {
	t.Parallel()

	resolverErr := errors.New("timeout")
	uc := NewCreditProfileUsecase(newMemoryProfiles(), &mockResolver{err: resolverErr}, fixedRandom{0}, zap.NewNop())

	_, err := uc.GetOrCreate(context.Background(), "u-1")
	assert.ErrorIs(t, err, resolverErr)
}

func TestCreditProfileUsecase_ListAll(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	uc := newUsecase(repo)
	_, _ = uc.GetOrCreate(context.Background(), "u-1")
	_, _ = uc.GetOrCreate(context.Background(), "admin")

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNewCreditProfileUsecase_DefaultRandom(t *testing.T) {
	t.Parallel()

	uc := NewCreditProfileUsecase(newMemoryProfiles(), &mockResolver{}, nil, zap.NewNop())
	assert.NotNil(t, uc.rnd)
}

func TestCreditProfileUsecase_GetOrCreate_LosesInsertRace(t *testing.T) {
	t.Parallel()

	rival := &entity.CreditProfile{ID: "p-rival", UserID: "u-1", CreditScore: 640}
	repo := &lateWriter{memoryProfiles: newMemoryProfiles(), rival: rival}
	uc := newUsecase(repo)

	got, err := uc.GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Same(t, rival, got, "the stored profile wins over the one just synthesized")
	assert.Len(t, repo.byUser, 1)
}

func TestCreditProfileUsecase_GetOrCreate_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	repo := newMemoryProfiles()
	uc := newUsecase(repo)

	const workers = 8
	results := make([]*entity.CreditProfile, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = uc.GetOrCreate(context.Background(), "u-1")
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, repo.byUser["u-1"].ID, results[i].ID)
	}
}

func TestCreditProfileUsecase_ConcurrentRefreshDefaultSource(t *testing.T) {
	t.Parallel()

	const workers = 8
	users := &mockResolver{known: map[string]identity.Role{}}
	for w := range workers {
		users.known[fmt.Sprintf("u-%d", w)] = identity.RoleUser
	}
	uc := NewCreditProfileUsecase(newMemoryProfiles(), users, nil, zap.NewNop())

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("u-%d", w)
			for range 200 {
				p, err := uc.Refresh(context.Background(), userID)
				if !assert.NoError(t, err) {
					return
				}
				assert.GreaterOrEqual(t, p.CreditScore, 300)
				assert.LessOrEqual(t, p.CreditScore, 850)
			}
		}()
	}
	wg.Wait()
}
