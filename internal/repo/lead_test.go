package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripveda/tripveda-api/internal/domain"
	"github.com/tripveda/tripveda-api/internal/repo"
	"github.com/tripveda/tripveda-api/testutil"
)

// newTestLeadRepo opens a transaction against the test database and returns a
// LeadRepo backed by that transaction. The transaction is automatically rolled
// back when the test finishes, giving free per-test isolation.
func newTestLeadRepo(t *testing.T) repo.LeadRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewLeadRepo(tx)
}

// leadFixture returns a domain.Lead with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func leadFixture() domain.Lead {
	return domain.Lead{
		Name:         "Asha Verma",
		Email:        "asha@example.com",
		Phone:        "+91 98765 43210",
		Message:      "Interested in a 7 day trip for two in October.",
		PackageSlug:  "everest-base-camp",
		PackageTitle: "Everest Base Camp",
	}
}

func TestLeadRepo_Create(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	input := leadFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.Phone, got.Phone)
	assert.Equal(t, input.Message, got.Message)
	assert.Equal(t, input.PackageSlug, got.PackageSlug)
	assert.Equal(t, input.PackageTitle, got.PackageTitle)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestLeadRepo_Create_NoPackage(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	// A lead from the general popup carries no package reference.
	input := leadFixture()
	input.PackageSlug = ""
	input.PackageTitle = ""

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Empty(t, got.PackageSlug)
	assert.Empty(t, got.PackageTitle)
}

func TestLeadRepo_GetByID(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, leadFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Email, got.Email)
}

func TestLeadRepo_GetByID_NotFound(t *testing.T) {
	r := newTestLeadRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepo_List(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	first := leadFixture()
	first.Email = "first@example.com"
	second := leadFixture()
	second.Email = "second@example.com"

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	got, total, err := r.List(ctx, "", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.EqualValues(t, 2, total)
	// Both rows share the same created_at inside this transaction (now() is
	// frozen per transaction), so assert membership rather than order.
	emails := []string{got[0].Email, got[1].Email}
	assert.Contains(t, emails, "first@example.com")
	assert.Contains(t, emails, "second@example.com")
}

func TestLeadRepo_List_NameSearch(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	asha := leadFixture()
	ravi := leadFixture()
	ravi.Name = "Ravi Kumar"

	_, err := r.Create(ctx, asha)
	require.NoError(t, err)
	_, err = r.Create(ctx, ravi)
	require.NoError(t, err)

	// Case-insensitive substring match on name.
	got, total, err := r.List(ctx, "VERMA", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha Verma", got[0].Name)
	assert.EqualValues(t, 1, total)

	got, total, err = r.List(ctx, "nobody", domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.EqualValues(t, 0, total)
}

// TestLeadRepo_List_Paged verifies limit/offset paging: the total counts all
// matching rows even when the page holds fewer.
func TestLeadRepo_List_Paged(t *testing.T) {
	r := newTestLeadRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, leadFixture())
		require.NoError(t, err)
	}

	page1, total, err := r.List(ctx, "", domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.EqualValues(t, 3, total)

	page2, total, err := r.List(ctx, "", domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.EqualValues(t, 3, total)

	// Pages are disjoint: the tie-broken ordering keeps rows from repeating
	// across page boundaries.
	seen := map[string]bool{}
	for _, l := range append(page1, page2...) {
		assert.False(t, seen[l.ID.String()], "lead %s appeared twice", l.ID)
		seen[l.ID.String()] = true
	}
}
