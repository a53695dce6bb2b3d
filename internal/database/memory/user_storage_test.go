package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_AssignsIncreasingIDs(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	a, err := s.Save(ctx, &domain.User{Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)
	b, err := s.Save(ctx, &domain.User{Name: "Bob", Email: "b@x.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	a, _ := s.Save(ctx, &domain.User{Email: "a@x.com"})
	require.NoError(t, s.DeleteByID(ctx, a.ID))

	b, err := s.Save(ctx, &domain.User{Email: "b@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSave_UpsertKeepsID(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	a, _ := s.Save(ctx, &domain.User{Name: "Alice", Email: "a@x.com"})
	a.Name = "Alicia"
	_, err := s.Save(ctx, a)
	require.NoError(t, err)

	got, err := s.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)

	all, _ := s.FindAll(ctx)
	assert.Len(t, all, 1)
}

func TestSave_DoesNotAliasCallerValue(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	in := &domain.User{Name: "Alice", Email: "a@x.com"}
	saved, _ := s.Save(ctx, in)
	saved.Name = "mutated"

	got, _ := s.FindByID(ctx, saved.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Zero(t, in.ID)
}

func TestLookupsOnMissingRows(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	u, err := s.FindByID(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.FindByEmail(ctx, "none@x.com")
	assert.NoError(t, err)
	assert.Nil(t, u)

	ok, err := s.ExistsByEmail(ctx, "none@x.com")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.DeleteByID(ctx, 99))

	all, err := s.FindAll(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestFindAll_OrderedByID(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	for _, e := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		_, err := s.Save(ctx, &domain.User{Email: e})
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, u := range all {
		assert.Equal(t, int64(i+1), u.ID)
	}
}

func TestConcurrentSaves(t *testing.T) {
	s := NewUserStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Save(ctx, &domain.User{Name: "u"})
		}()
	}
	wg.Wait()

	all, _ := s.FindAll(ctx)
	assert.Len(t, all, 50)
}
