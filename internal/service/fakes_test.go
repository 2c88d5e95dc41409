package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/repository/contract"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"
	pkgEvents "ebook-studio-be/pkg/events"
	"ebook-studio-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected failure")

// row is the queryable projection of any stored entity.
type row struct {
	id           uuid.UUID
	owner        entity.OwnerID
	active       bool
	status       string
	featureId    uuid.UUID
	planId       uuid.UUID
	authorPlanId uuid.UUID
	slug         string
	key          string
	reference    string
	rate         decimal.Decimal
	tierRank     int
	sortOrder    int
	createdAt    time.Time
	startAt      time.Time
	endAt        time.Time
}

func matches(r row, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if r.id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if r.owner != s.Owner {
				return false
			}
		case specification.ActiveOnly:
			if !r.active {
				return false
			}
		case specification.ByLineStatus:
			if r.status != string(s.Status) {
				return false
			}
		case specification.ByBillStatus:
			if r.status != string(s.Status) {
				return false
			}
		case specification.ByFeatureID:
			if r.featureId != s.FeatureID {
				return false
			}
		case specification.ByPlanID:
			if r.planId != s.PlanID {
				return false
			}
		case specification.ByAuthorPlanID:
			if r.authorPlanId != s.AuthorPlanID {
				return false
			}
		case specification.BySlug:
			if r.slug != s.Slug {
				return false
			}
		case specification.ByKey:
			if r.key != s.Key {
				return false
			}
		case specification.ByPaymentReference:
			if r.reference != s.Reference {
				return false
			}
		case specification.CreatedAfter:
			if r.createdAt.Before(s.Time) {
				return false
			}
		case specification.CurrentAt:
			if r.startAt.After(s.At) || !r.endAt.After(s.At) {
				return false
			}
		case specification.OrderBy, specification.ForUpdate:
		default:
			panic("fake store: unsupported specification")
		}
	}
	return true
}

type table[T any] struct {
	rows  map[uuid.UUID]*T
	seq   map[uuid.UUID]int
	next  int
	toRow func(*T) row
	clone func(*T) *T
}

func newTable[T any](toRow func(*T) row, clone func(*T) *T) *table[T] {
	return &table[T]{rows: map[uuid.UUID]*T{}, seq: map[uuid.UUID]int{}, toRow: toRow, clone: clone}
}

func (t *table[T]) put(v *T) {
	id := t.toRow(v).id
	if _, ok := t.seq[id]; !ok {
		t.next++
		t.seq[id] = t.next
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) copyTable() *table[T] {
	c := newTable(t.toRow, t.clone)
	c.next = t.next
	for id, v := range t.rows {
		c.rows[id] = t.clone(v)
		c.seq[id] = t.seq[id]
	}
	return c
}

func (t *table[T]) find(specs []specification.Specification) []*T {
	type hit struct {
		r row
		v *T
	}
	var hits []hit
	for _, v := range t.rows {
		r := t.toRow(v)
		if matches(r, specs) {
			hits = append(hits, hit{r, v})
		}
	}

	order := specification.OrderBy{Field: "created_at"}
	for _, s := range specs {
		if o, ok := s.(specification.OrderBy); ok {
			order = o
		}
	}
	less := func(a, b row) int {
		switch order.Field {
		case "rate":
			return a.rate.Cmp(b.rate)
		case "tier_rank":
			return a.tierRank - b.tierRank
		case "sort_order":
			return a.sortOrder - b.sortOrder
		}
		return a.createdAt.Compare(b.createdAt)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		c := less(hits[i].r, hits[j].r)
		if c == 0 {
			c = t.seq[hits[i].r.id] - t.seq[hits[j].r.id]
		}
		if order.Desc {
			return c > 0
		}
		return c < 0
	})

	out := make([]*T, 0, len(hits))
	for _, h := range hits {
		out = append(out, t.clone(h.v))
	}
	return out
}

func (t *table[T]) first(specs []specification.Specification) *T {
	all := t.find(specs)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (t *table[T]) remove(specs []specification.Specification) int64 {
	var n int64
	for id, v := range t.rows {
		if matches(t.toRow(v), specs) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

type tables struct {
	features    *table[entity.Feature]
	plans       *table[entity.Plan]
	authorPlans *table[entity.AuthorPlan]
	lines       *table[entity.AuthorPlanFeature]
	bills       *table[entity.AuthorBill]
	books       *table[entity.Book]
}

func (t *tables) copyAll() *tables {
	return &tables{
		features:    t.features.copyTable(),
		plans:       t.plans.copyTable(),
		authorPlans: t.authorPlans.copyTable(),
		lines:       t.lines.copyTable(),
		bills:       t.bills.copyTable(),
		books:       t.books.copyTable(),
	}
}

func uuidOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newTables() *tables {
	return &tables{
		features: newTable(func(f *entity.Feature) row {
			return row{id: f.Id, active: f.IsActive, key: f.Key, rate: f.Rate, sortOrder: f.SortOrder, createdAt: f.CreatedAt}
		}, func(f *entity.Feature) *entity.Feature { c := *f; return &c }),
		plans: newTable(func(p *entity.Plan) row {
			return row{id: p.Id, active: p.IsActive, slug: p.Slug, rate: p.Rate, tierRank: p.TierRank, sortOrder: p.SortOrder, createdAt: p.CreatedAt}
		}, func(p *entity.Plan) *entity.Plan { c := *p; return &c }),
		authorPlans: newTable(func(a *entity.AuthorPlan) row {
			return row{id: a.Id, owner: a.OwnerId, active: a.IsActive, planId: a.PlanId, reference: strOrEmpty(a.PaymentReference),
				rate: a.Rate, createdAt: a.CreatedAt, startAt: a.StartAt, endAt: a.EndAt}
		}, func(a *entity.AuthorPlan) *entity.AuthorPlan { c := *a; return &c }),
		lines: newTable(func(l *entity.AuthorPlanFeature) row {
			return row{id: l.Id, owner: l.OwnerId, active: l.IsActive, status: string(l.Status), featureId: l.FeatureId,
				planId: uuidOrNil(l.PlanId), authorPlanId: uuidOrNil(l.AuthorPlanId), rate: l.Rate, createdAt: l.CreatedAt}
		}, func(l *entity.AuthorPlanFeature) *entity.AuthorPlanFeature { c := *l; return &c }),
		bills: newTable(func(b *entity.AuthorBill) row {
			return row{id: b.Id, owner: b.OwnerId, active: b.IsActive, status: string(b.Status), authorPlanId: b.AuthorPlanId,
				reference: strOrEmpty(b.PaymentReference), rate: b.Total, createdAt: b.CreatedAt}
		}, func(b *entity.AuthorBill) *entity.AuthorBill {
			c := *b
			c.Features = append([]entity.BilledFeature(nil), b.Features...)
			return &c
		}),
		books: newTable(func(b *entity.Book) row {
			return row{id: b.Id, owner: b.OwnerId, status: string(b.Status), createdAt: b.CreatedAt}
		}, func(b *entity.Book) *entity.Book {
			c := *b
			c.Chapters = append([]entity.Chapter(nil), b.Chapters...)
			return &c
		}),
	}
}

// fakeStore is an in-memory database with snapshot transactions and failure injection.
type fakeStore struct {
	mu         sync.Mutex
	data       *tables
	failOn     map[string]error
	lockedKeys []entity.OwnerID
	// onLock runs while LockOwner "waits", as a concurrent transaction
	// committing to both the live data and this transaction's snapshot.
	onLock func(t *tables)
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: newTables(), failOn: map[string]error{}}
}

func (s *fakeStore) fail(op string) error {
	return s.failOn[op]
}

func (s *fakeStore) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: s}
}

// seeding helpers, used outside transactions
func (s *fakeStore) addFeature(f *entity.Feature)       { s.mu.Lock(); s.data.features.put(f); s.mu.Unlock() }
func (s *fakeStore) addPlan(p *entity.Plan)             { s.mu.Lock(); s.data.plans.put(p); s.mu.Unlock() }
func (s *fakeStore) addAuthorPlan(a *entity.AuthorPlan) { s.mu.Lock(); s.data.authorPlans.put(a); s.mu.Unlock() }
func (s *fakeStore) addBill(b *entity.AuthorBill)       { s.mu.Lock(); s.data.bills.put(b); s.mu.Unlock() }
func (s *fakeStore) addBook(b *entity.Book)             { s.mu.Lock(); s.data.books.put(b); s.mu.Unlock() }

func (s *fakeStore) allLines() []*entity.AuthorPlanFeature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.lines.find(nil)
}

func (s *fakeStore) allAuthorPlans() []*entity.AuthorPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.authorPlans.find(nil)
}

func (s *fakeStore) allBills() []*entity.AuthorBill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.bills.find(nil)
}

type fakeUoW struct {
	store    *fakeStore
	snapshot *tables
}

func (u *fakeUoW) Begin(context.Context) error {
	if err := u.store.fail("begin"); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.snapshot = u.store.data.copyAll()
	return nil
}

func (u *fakeUoW) Commit() error {
	if err := u.store.fail("commit"); err != nil {
		return err
	}
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.data = u.snapshot
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) LockOwner(_ context.Context, owner entity.OwnerID) error {
	if u.snapshot == nil {
		return errors.New("LockOwner requires an open transaction")
	}
	if err := u.store.fail("lock"); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.lockedKeys = append(u.store.lockedKeys, owner)
	if u.store.onLock != nil {
		u.store.onLock(u.store.data)
		u.store.onLock(u.snapshot)
	}
	return nil
}

func (u *fakeUoW) FeatureRepository() contract.FeatureRepository       { return &fakeFeatureRepo{u.store} }
func (u *fakeUoW) PlanRepository() contract.PlanRepository             { return &fakePlanRepo{u.store} }
func (u *fakeUoW) AuthorPlanRepository() contract.AuthorPlanRepository { return &fakeAuthorPlanRepo{u.store} }
func (u *fakeUoW) CartRepository() contract.CartRepository             { return &fakeCartRepo{u.store} }
func (u *fakeUoW) BillRepository() contract.BillRepository             { return &fakeBillRepo{u.store} }
func (u *fakeUoW) BookRepository() contract.BookRepository             { return &fakeBookRepo{u.store} }

type fakeFeatureRepo struct{ s *fakeStore }

func (r *fakeFeatureRepo) Create(_ context.Context, f *entity.Feature) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.features.first([]specification.Specification{specification.ByKey{Key: f.Key}}) != nil {
		return contract.ErrDuplicate
	}
	r.s.data.features.put(f)
	return nil
}

func (r *fakeFeatureRepo) Update(_ context.Context, f *entity.Feature) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.features.put(f)
	return nil
}

func (r *fakeFeatureRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	if err := r.s.fail("feature.find"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.features.first(specs), nil
}

func (r *fakeFeatureRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.features.find(specs), nil
}

type fakePlanRepo struct{ s *fakeStore }

func (r *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.plans.first([]specification.Specification{specification.BySlug{Slug: p.Slug}}) != nil {
		return contract.ErrDuplicate
	}
	r.s.data.plans.put(p)
	return nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.plans.put(p)
	return nil
}

func (r *fakePlanRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	if err := r.s.fail("plan.find"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.plans.first(specs), nil
}

func (r *fakePlanRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.plans.find(specs), nil
}

type fakeAuthorPlanRepo struct{ s *fakeStore }

func (r *fakeAuthorPlanRepo) Create(_ context.Context, a *entity.AuthorPlan) error {
	if err := r.s.fail("authorplan.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.authorPlans.put(a)
	return nil
}

func (r *fakeAuthorPlanRepo) Update(_ context.Context, a *entity.AuthorPlan) error {
	if err := r.s.fail("authorplan.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.authorPlans.put(a)
	return nil
}

func (r *fakeAuthorPlanRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.AuthorPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.authorPlans.first(specs), nil
}

func (r *fakeAuthorPlanRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AuthorPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.authorPlans.find(specs), nil
}

type fakeCartRepo struct{ s *fakeStore }

func (r *fakeCartRepo) Create(_ context.Context, l *entity.AuthorPlanFeature) error {
	if err := r.s.fail("cart.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// partial unique index (owner_id, feature_id) WHERE status = 'temp'
	if l.Status == entity.LineStatusTemp && r.s.data.lines.first([]specification.Specification{
		specification.OwnedBy{Owner: l.OwnerId},
		specification.ByFeatureID{FeatureID: l.FeatureId},
		specification.ByLineStatus{Status: entity.LineStatusTemp},
	}) != nil {
		return contract.ErrDuplicate
	}
	r.s.data.lines.put(l)
	return nil
}

func (r *fakeCartRepo) Update(_ context.Context, l *entity.AuthorPlanFeature) error {
	if err := r.s.fail("cart.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.lines.put(l)
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, specs ...specification.Specification) (int64, error) {
	if err := r.s.fail("cart.delete"); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.lines.remove(specs), nil
}

func (r *fakeCartRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.AuthorPlanFeature, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.lines.first(specs), nil
}

func (r *fakeCartRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AuthorPlanFeature, error) {
	if err := r.s.fail("cart.find"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.lines.find(specs), nil
}

func (r *fakeCartRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.data.lines.find(specs))), nil
}

func (r *fakeCartRepo) SumRate(_ context.Context, specs ...specification.Specification) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sumRates(r.s.data.lines.find(specs)), nil
}

type fakeBillRepo struct{ s *fakeStore }

func (r *fakeBillRepo) Create(_ context.Context, b *entity.AuthorBill) error {
	if err := r.s.fail("bill.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.bills.put(b)
	return nil
}

func (r *fakeBillRepo) Update(_ context.Context, b *entity.AuthorBill) error {
	if err := r.s.fail("bill.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.bills.put(b)
	return nil
}

func (r *fakeBillRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.AuthorBill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.bills.first(specs), nil
}

func (r *fakeBillRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AuthorBill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.bills.find(specs), nil
}

type fakeBookRepo struct{ s *fakeStore }

func (r *fakeBookRepo) Create(_ context.Context, b *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.books.put(b)
	return nil
}

func (r *fakeBookRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.books.first(specs), nil
}

func (r *fakeBookRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.books.find(specs), nil
}

func (r *fakeBookRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.data.books.find(specs))), nil
}

// collaborators

type fakeProcessor struct {
	mu       sync.Mutex
	err      error
	requests []payment.CheckoutRequest
}

func (p *fakeProcessor) Name() string { return "fake" }

func (p *fakeProcessor) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return &payment.CheckoutSession{
		Provider:    "fake",
		Reference:   "ref-" + req.BillId,
		RedirectURL: "https://pay.example.com/" + req.BillId,
	}, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	confirmed []*entity.AuthorPlan
	cancelled []*entity.AuthorPlan
	settled   []*entity.AuthorBill
}

func (e *fakeEvents) EntitlementConfirmed(_ context.Context, plan *entity.AuthorPlan, _ *entity.AuthorBill, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirmed = append(e.confirmed, plan)
}

func (e *fakeEvents) SubscriptionCancelled(_ context.Context, plan *entity.AuthorPlan) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled = append(e.cancelled, plan)
}

func (e *fakeEvents) BillSettled(_ context.Context, bill *entity.AuthorBill) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settled = append(e.settled, bill)
}

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

type fakeBus struct {
	events []pkgEvents.Event
	err    error
}

func (b *fakeBus) Publish(_ context.Context, evt pkgEvents.Event) error {
	b.events = append(b.events, evt)
	return b.err
}

type fakeLLM struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, options...)
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

// fixtures

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newOwner() entity.OwnerID { return entity.OwnerID(uuid.New()) }

func seedFeature(s *fakeStore, key, rate string, active bool) *entity.Feature {
	f := &entity.Feature{
		Id:        uuid.New(),
		Key:       key,
		Name:      key,
		Rate:      decimal.RequireFromString(rate),
		Currency:  "USD",
		IsActive:  active,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
	s.addFeature(f)
	return f
}

func seedPlan(s *fakeStore, name, rate string, rank int, trial bool) *entity.Plan {
	p := &entity.Plan{
		Id:           uuid.New(),
		Name:         name,
		Slug:         name,
		Rate:         decimal.RequireFromString(rate),
		Currency:     "USD",
		TaxRate:      decimal.RequireFromString("0.10"),
		DurationDays: 30,
		MaxEbooks:    3,
		TierRank:     rank,
		IsTrial:      trial,
		IsActive:     true,
		CreatedAt:    testNow.Add(-time.Hour),
		UpdatedAt:    testNow.Add(-time.Hour),
	}
	s.addPlan(p)
	return p
}
