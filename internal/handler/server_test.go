package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripveda/tripveda-api/internal/domain"
	"github.com/tripveda/tripveda-api/internal/handler"
)

// fakeCatalog implements handler.CatalogStore with function fields so each
// test configures only the calls it cares about.
type fakeCatalog struct {
	visibleFn   func(category, country, query string) ([]domain.Package, error)
	bySlugFn    func(slug string) (domain.Package, error)
	similarFn   func(slug string, limit int) ([]domain.Package, error)
	countriesFn func() ([]string, error)
	snapshotFn  func() ([]domain.Package, error)
	reloads     int
}

var _ handler.CatalogStore = (*fakeCatalog)(nil)

func (f *fakeCatalog) Visible(category, country, query string) ([]domain.Package, error) {
	return f.visibleFn(category, country, query)
}

func (f *fakeCatalog) BySlug(slug string) (domain.Package, error) { return f.bySlugFn(slug) }

func (f *fakeCatalog) Similar(slug string, limit int) ([]domain.Package, error) {
	return f.similarFn(slug, limit)
}

func (f *fakeCatalog) Countries() ([]string, error) { return f.countriesFn() }

func (f *fakeCatalog) Snapshot() ([]domain.Package, error) { return f.snapshotFn() }

func (f *fakeCatalog) RequestReload() { f.reloads++ }

type fakeBlog struct {
	listFn   func(category string) ([]domain.BlogPost, error)
	bySlugFn func(slug string) (domain.BlogPost, error)
}

var _ handler.BlogStore = (*fakeBlog)(nil)

func (f *fakeBlog) List(category string) ([]domain.BlogPost, error) { return f.listFn(category) }

func (f *fakeBlog) BySlug(slug string) (domain.BlogPost, error) { return f.bySlugFn(slug) }

type fakeLeads struct {
	submitFn  func(ctx context.Context, lead domain.Lead) (domain.Lead, string, error)
	listFn    func(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

var _ handler.LeadServicer = (*fakeLeads)(nil)

func (f *fakeLeads) Submit(ctx context.Context, lead domain.Lead) (domain.Lead, string, error) {
	return f.submitFn(ctx, lead)
}

func (f *fakeLeads) List(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error) {
	return f.listFn(ctx, name, p)
}

func (f *fakeLeads) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return f.getByIDFn(ctx, id)
}

type fakeNewsletter struct {
	subscribeFn func(ctx context.Context, email string) (domain.Subscription, error)
	listFn      func(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error)
}

var _ handler.NewsletterServicer = (*fakeNewsletter)(nil)

func (f *fakeNewsletter) Subscribe(ctx context.Context, email string) (domain.Subscription, error) {
	return f.subscribeFn(ctx, email)
}

func (f *fakeNewsletter) List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error) {
	return f.listFn(ctx, email, p)
}

type fakeFlags struct {
	shouldShowFn func(ctx context.Context, session, name string, interval time.Duration) (bool, error)
}

var _ handler.FlagStore = (*fakeFlags)(nil)

func (f *fakeFlags) ShouldShow(ctx context.Context, session, name string, interval time.Duration) (bool, error) {
	return f.shouldShowFn(ctx, session, name, interval)
}

// deps bundles the fakes so tests override only what they need.
type deps struct {
	catalog    *fakeCatalog
	blog       *fakeBlog
	leads      *fakeLeads
	newsletter *fakeNewsletter
	flags      *fakeFlags
}

func defaultDeps() *deps {
	return &deps{
		catalog:    &fakeCatalog{},
		blog:       &fakeBlog{},
		leads:      &fakeLeads{},
		newsletter: &fakeNewsletter{},
		flags:      &fakeFlags{},
	}
}

// newTestServer mounts the full route table behind httptest.
func newTestServer(t *testing.T, d *deps) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := handler.NewServer(d.catalog, d.blog, d.leads, d.newsletter, d.flags, log)

	r := chi.NewRouter()
	s.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doGET(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func doPOST(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// errCode pulls the machine-readable code out of an error envelope.
func errCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decodeBody[handler.ErrorResponse](t, resp).Error.Code
}

// catalogDown is the error every store method returns before the first
// successful load.
func catalogDown() error {
	return fmt.Errorf("catalog loading: %w", domain.ErrUnavailable)
}
