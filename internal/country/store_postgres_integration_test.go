//go:build integration

package country

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwise/internal/platform/postgres"
	platformredis "regwise/internal/platform/redis"
	"regwise/internal/workflow"
	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := containers.NewPostgresContainer(t)
	require.NoError(t, postgres.Migrate(ctx, pc.Pool))

	store := NewPostgresStore(pc.Pool)

	us := Country{
		Code: "US", Name: "United States", Region: "North America",
		Currency:   "USD",
		Regulators: []string{"FinCEN"},
		Laws:       []string{"Bank Secrecy Act"},
		Workflow:   &workflow.Spec{KYCSteps: []string{"Verify identity"}},
	}
	require.NoError(t, store.Upsert(ctx, us))
	require.NoError(t, store.Upsert(ctx, Country{Code: "DE", Name: "Germany", Region: "Europe"}))

	t.Run("list sorted by code", func(t *testing.T) {
		countries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, countries, 2)
		assert.Equal(t, "DE", countries[0].Code)
		assert.Equal(t, "US", countries[1].Code)
	})

	t.Run("find by code or name", func(t *testing.T) {
		byCode, err := store.FindByCodeOrName(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "United States", byCode.Name)
		assert.Equal(t, []string{"Verify identity"}, byCode.Workflow.KYCSteps)

		byName, err := store.FindByCodeOrName(ctx, "Germany")
		require.NoError(t, err)
		assert.Equal(t, "DE", byName.Code)

		_, err = store.FindByCodeOrName(ctx, "FR")
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("replace onboarding", func(t *testing.T) {
		steps := []workflow.Step{{ID: "US-kyc-1", StepNumber: 1, Title: "Verify", Required: true}}
		c, err := store.ReplaceOnboarding(ctx, "US", steps)
		require.NoError(t, err)
		require.Len(t, c.Onboarding, 1)

		reread, err := store.FindByCodeOrName(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "US-kyc-1", reread.Onboarding[0].ID)

		_, err = store.ReplaceOnboarding(ctx, "FR", steps)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("upsert overwrites by code", func(t *testing.T) {
		us.Region = "Americas"
		require.NoError(t, store.Upsert(ctx, us))

		c, err := store.FindByCodeOrName(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "Americas", c.Region)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestCachedStoreWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	client, err := platformredis.New(ctx, rc.URL)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backing := NewMemoryStore()
	cached := NewCachedStore(backing, client, time.Minute, logger)

	require.NoError(t, cached.Upsert(ctx, Country{Code: "SG", Name: "Singapore"}))

	first, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// The cached list hides direct writes to the backing store until a
	// cache-invalidating write happens.
	require.NoError(t, backing.Upsert(ctx, Country{Code: "US", Name: "United States"}))
	stale, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	require.NoError(t, cached.Upsert(ctx, Country{Code: "DE", Name: "Germany"}))
	fresh, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}
