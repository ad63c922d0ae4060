package quotation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"buildledger/internal/domain/auth"
	"buildledger/internal/domain/client"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/settings"
	"buildledger/internal/middleware"
	"buildledger/internal/pkg/validator"
	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type countingRecorder struct {
	mu    sync.Mutex
	kinds []string
}

func (r *countingRecorder) NumberIssued(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

var (
	admin = auth.Actor{ID: "u-admin", Name: "Ada", Role: auth.RoleAdmin}
	staff = auth.Actor{ID: "u-staff", Name: "Sam", Role: auth.RoleUser}
)

type fixture struct {
	clients  *client.Service
	projects *project.Service
	settings *settings.Repository
	repo     *Repository
	svc      *Service
	recorder *countingRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return newFixtureOn(t, backend)
}

func newFixtureOn(t *testing.T, backend store.Backend) fixture {
	t.Helper()
	db := store.New(backend)
	ctx := context.Background()

	clientRepo := client.NewRepository(db)
	require.NoError(t, clientRepo.Replace(ctx, nil))
	projectRepo := project.NewRepository(db, clientRepo)
	require.NoError(t, projectRepo.Replace(ctx, nil))
	repo := NewRepository(db, projectRepo, clientRepo)
	require.NoError(t, repo.Replace(ctx, nil))
	settingsRepo := settings.NewRepository(db)

	ids := &seqIDs{}
	rec := &countingRecorder{}
	return fixture{
		clients:  client.NewService(clientRepo, ids, nil),
		projects: project.NewService(projectRepo, clientRepo, ids, nil),
		settings: settingsRepo,
		repo:     repo,
		svc:      NewService(repo, projectRepo, settingsRepo, ids, rec, nil),
		recorder: rec,
	}
}

func (f fixture) project(t *testing.T) (*client.Client, *project.ProjectDetails) {
	t.Helper()
	ctx := context.Background()
	c, err := f.clients.Create(ctx, client.CreateClientRequest{Name: "Casey"})
	require.NoError(t, err)
	p, err := f.projects.Create(ctx, project.CreateProjectRequest{Name: "Kitchen", ClientID: c.ID})
	require.NoError(t, err)
	return c, p
}

func TestCreate_NumbersAreSequential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	next, err := f.svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QT-0001", next)

	q1, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)
	q2, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)

	assert.Equal(t, "QT-0001", q1.QuotationNumber)
	assert.Equal(t, "QT-0002", q2.QuotationNumber)
	assert.Equal(t, []string{"quotation", "quotation"}, f.recorder.kinds)
}

func TestCreate_DeletedTopNumberIsNotReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	_, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)
	q2, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, admin, q2.ID))

	q3, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "QT-0003", q3.QuotationNumber)
}

func TestCreate_ConcurrentNumbersAreUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	const workers = 10
	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
			if assert.NoError(t, err) {
				numbers <- q.QuotationNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for n := range numbers {
		assert.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func TestCreate_DerivesClientAndDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.settings.Put(ctx, settings.CompanySettings{ID: "company", Name: "Acme", DefaultTaxRate: 13}))
	c, p := f.project(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{
		ProjectID: p.ID,
		Discount:  50,
		Items: []pricing.LineItem{
			{Type: pricing.ItemMaterial, ItemName: "Tile", Quantity: 10, Rate: 20},
			{Type: pricing.ItemLabor, ItemName: "Tiler", Quantity: 5, Rate: 60},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, c.ID, q.ClientID)
	assert.Equal(t, PhaseFull, q.Phase)
	assert.Equal(t, StatusDraft, q.Status)
	assert.Equal(t, "2026-03-31", q.ValidUntil)
	assert.Equal(t, staff.ID, q.CreatedBy)
	assert.Equal(t, 500.0, q.Subtotal)
	assert.Equal(t, 13.0, q.TaxRate)
	assert.InDelta(t, 65.0, q.TaxAmount, 1e-9)
	assert.InDelta(t, 515.0, q.Total, 1e-9)
	for _, it := range q.Items {
		assert.NotEmpty(t, it.ID)
	}

	require.NotNil(t, q.Project)
	require.NotNil(t, q.Project.Client)
	require.NotNil(t, q.Client)
	assert.Equal(t, "Casey", q.Client.Name)
}

func TestCreate_MissingSettingsMeansZeroTax(t *testing.T) {
	f := newFixture(t)
	_, p := f.project(t)

	q, err := f.svc.Create(context.Background(), staff, CreateQuotationRequest{
		ProjectID: p.ID,
		Items:     []pricing.LineItem{{Type: pricing.ItemMaterial, ItemName: "Drywall", Quantity: 4, Rate: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.TaxRate)
	assert.Equal(t, 100.0, q.Total)
}

func TestCreate_UnknownProject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), staff, CreateQuotationRequest{ProjectID: "ghost"})
	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "exists", verr.Fields["projectId"])
}

func TestUpdate_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	rate := 10.0
	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{
		ProjectID: p.ID,
		TaxRate:   &rate,
		Items:     []pricing.LineItem{{Type: pricing.ItemLabor, ItemName: "Framing", Quantity: 2, Rate: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, 220.0, q.Total)

	discount := 20.0
	status := StatusSent
	updated, err := f.svc.Update(ctx, staff, q.ID, UpdateQuotationRequest{Discount: &discount, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.Total)
	assert.Equal(t, StatusSent, updated.Status)
	assert.Equal(t, q.QuotationNumber, updated.QuotationNumber)
	assert.Equal(t, q.CreatedBy, updated.CreatedBy)
}

// loadHook runs onLoad once, the first time the named collection is loaded
// after arm is called.
type loadHook struct {
	store.Backend
	name   string
	armed  atomic.Bool
	onLoad func()
}

func (h *loadHook) arm() { h.armed.Store(true) }

func (h *loadHook) Load(ctx context.Context, name string) ([]byte, error) {
	if name == h.name && h.armed.CompareAndSwap(true, false) {
		h.onLoad()
	}
	return h.Backend.Load(ctx, name)
}

func TestUpdate_TotalsFollowConcurrentItemChange(t *testing.T) {
	files, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	hook := &loadHook{Backend: files, name: "quotations"}
	f := newFixtureOn(t, hook)
	ctx := context.Background()
	_, p := f.project(t)

	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{
		ProjectID: p.ID,
		Items:     []pricing.LineItem{{Type: pricing.ItemMaterial, ItemName: "Drywall", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	hook.onLoad = func() {
		go func() {
			items := []pricing.LineItem{{Type: pricing.ItemMaterial, ItemName: "Cabinets", Quantity: 1, Rate: 1000}}
			_, err := f.svc.Update(ctx, staff, q.ID, UpdateQuotationRequest{Items: &items})
			done <- err
		}()
		time.Sleep(50 * time.Millisecond)
	}
	hook.arm()

	discount := 10.0
	_, err = f.svc.Update(ctx, staff, q.ID, UpdateQuotationRequest{Discount: &discount})
	require.NoError(t, err)
	require.NoError(t, <-done)

	stored, err := f.repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, pricing.Subtotal(stored.Items), stored.Subtotal)
	assert.Equal(t, 1000.0, stored.Subtotal)
	assert.Equal(t, 10.0, stored.Discount)
	assert.Equal(t, 990.0, stored.Total)
}

func TestDetails_DanglingClientIsNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, p := f.project(t)

	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)
	require.NoError(t, f.clients.Delete(ctx, c.ID))

	got, err := f.svc.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Client)
	require.NotNil(t, got.Project)
	assert.Nil(t, got.Project.Client)
	assert.Equal(t, c.ID, got.ClientID)
}

func TestDelete_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, staff, q.ID)
	assert.ErrorIs(t, err, ErrDeletionRequestRequired)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.GetByID(ctx, q.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, admin, q.ID))
	_, err = f.svc.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletionTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, p := f.project(t)

	q, err := f.svc.Create(ctx, staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)

	number, createdBy, err := f.repo.DeletionTarget(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "QT-0001", number)
	assert.Equal(t, staff.ID, createdBy)

	_, _, err = f.repo.DeletionTarget(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHandler_NonAdminDeleteIsRedirected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	_, p := f.project(t)
	q, err := f.svc.Create(context.Background(), staff, CreateQuotationRequest{ProjectID: p.ID})
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, staff.ID)
		c.Set(middleware.ContextRole, string(staff.Role))
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/quotations/"+q.ID, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"DELETION_REQUEST_REQUIRED"`)
	assert.Contains(t, w.Body.String(), "/api/v1/deletion-requests")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotations/next-number", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number":"QT-0002"`)
}
