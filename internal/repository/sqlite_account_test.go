package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/agrismart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAccountRepo(db)
	ctx := context.Background()

	acct := testutil.NewTestAccount("Sita Patil", testutil.WithEmail("sita@example.com"))
	require.NoError(t, repo.Create(ctx, acct))

	got, err := repo.GetByMobile(ctx, acct.Mobile)
	require.NoError(t, err)
	assert.Equal(t, acct.UserProfile, got.UserProfile)
	assert.Equal(t, acct.PasswordHash, got.PasswordHash)
	assert.WithinDuration(t, acct.CreatedAt, got.CreatedAt, 0)
}

func TestAccountRepo_GetByMobile_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAccountRepo(db)

	_, err := repo.GetByMobile(context.Background(), "0000000000")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepo_Create_DuplicateMobile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAccountRepo(db)
	ctx := context.Background()

	first := testutil.NewTestAccount("First", testutil.WithMobile("9123456789"))
	second := testutil.NewTestAccount("Second", testutil.WithMobile("9123456789"))
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, second)

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAccountRepo_Create_DuplicateEmailOnlyWhenSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAccountRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("B")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("C", testutil.WithEmail("c@example.com"))))

	err := repo.Create(ctx, testutil.NewTestAccount("D", testutil.WithEmail("c@example.com")))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAccountRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAccountRepo(db)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a := testutil.NewTestAccount("A")
	b := testutil.NewTestAccount("B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	mobiles := []string{all[0].Mobile, all[1].Mobile}
	assert.ElementsMatch(t, []string{a.Mobile, b.Mobile}, mobiles)
}
