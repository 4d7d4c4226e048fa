package service

import (
	"strings"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory store shared by the fake repositories. Entities hold only value
// types, so copying the struct is a sufficient snapshot.
type fakeStore struct {
	users     map[uuid.UUID]model.User
	products  map[uuid.UUID]model.Product
	sales     map[uuid.UUID]model.Sale
	saleItems []model.SaleItem

	// Transaction-boundary bookkeeping: inTx is set while the fake tx
	// manager runs its closure, and lockedSaleLoads counts for-update sale
	// loads observed inside it.
	inTx            bool
	lockedSaleLoads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]model.User),
		products: make(map[uuid.UUID]model.Product),
		sales:    make(map[uuid.UUID]model.Sale),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, u := range s.users {
		snap.users[id] = u
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, sl := range s.sales {
		snap.sales[id] = sl
	}
	snap.saleItems = append([]model.SaleItem(nil), s.saleItems...)
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.users = snap.users
	s.products = snap.products
	s.sales = snap.sales
	s.saleItems = snap.saleItems
}

// fakeTxManager emulates transactional rollback by snapshotting the store
// before fn and restoring it when fn fails.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Do(fn func(tx *gorm.DB) error) error {
	snap := m.store.snapshot()
	m.store.inTx = true
	err := fn(nil)
	m.store.inTx = false
	if err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func voided(at time.Time) gorm.DeletedAt {
	return gorm.DeletedAt{Time: at, Valid: true}
}

// ---- products ----

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindActive(limit, offset int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.store.products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindInactive(limit, offset int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.store.products {
		if !p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindActiveByDescription(description string, limit, offset int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.store.products {
		if p.IsActive() && strings.Contains(strings.ToLower(p.Description), strings.ToLower(description)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindActiveByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok || !p.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindInactiveByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByDescription(description string) (*model.Product, error) {
	for _, p := range r.store.products {
		if p.Description == description {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindActiveByID(id)
}

func (r *fakeProductRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = newStock
	r.store.products[id] = p
	return nil
}

func (r *fakeProductRepo) SoftDelete(id uuid.UUID) error {
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.DeletedAt = voided(time.Now())
	r.store.products[id] = p
	return nil
}

func (r *fakeProductRepo) Restore(id uuid.UUID) error {
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.DeletedAt = gorm.DeletedAt{}
	r.store.products[id] = p
	return nil
}

// ---- users ----

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindActiveByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.store.users[id]
	if !ok || !u.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindInactiveByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.store.users[id]
	if !ok || u.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByLogin(login string) (*model.User, error) {
	for _, u := range r.store.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindActiveByLogin(login string) (*model.User, error) {
	for _, u := range r.store.users {
		if u.Login == login && u.IsActive() {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindActive(limit, offset int) ([]model.User, error) {
	var out []model.User
	for _, u := range r.store.users {
		if u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindInactive(limit, offset int) ([]model.User, error) {
	var out []model.User
	for _, u := range r.store.users {
		if !u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindActiveByName(name string, limit, offset int) ([]model.User, error) {
	var out []model.User
	for _, u := range r.store.users {
		if u.IsActive() && strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	r.store.users[id] = u
	return nil
}

func (r *fakeUserRepo) SoftDelete(id uuid.UUID) error {
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.DeletedAt = voided(time.Now())
	r.store.users[id] = u
	return nil
}

func (r *fakeUserRepo) Restore(id uuid.UUID) error {
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.DeletedAt = gorm.DeletedAt{}
	r.store.users[id] = u
	return nil
}

// ---- sales ----

type fakeSaleRepo struct {
	store *fakeStore
}

func (r *fakeSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	r.store.sales[sale.ID] = *sale
	return nil
}

func (r *fakeSaleRepo) UpdateTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	s, ok := r.store.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Total = total
	r.store.sales[id] = s
	return nil
}

func (r *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeSaleRepo) FindActiveByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok || !s.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeSaleRepo) FindInactiveByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok || s.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeSaleRepo) FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	if r.store.inTx {
		r.store.lockedSaleLoads++
	}
	return r.FindActiveByID(id)
}

func (r *fakeSaleRepo) FindInactiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	if r.store.inTx {
		r.store.lockedSaleLoads++
	}
	return r.FindInactiveByID(id)
}

func (r *fakeSaleRepo) FindActive(limit, offset int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.store.sales {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) FindInactive(limit, offset int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.store.sales {
		if !s.IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) FindActiveByDate(start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.store.sales {
		if s.IsActive() && !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) FindInactiveByDate(start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.store.sales {
		if !s.IsActive() && !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) MarkVoided(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	s, ok := r.store.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.DeletedAt = voided(at)
	r.store.sales[id] = s
	return nil
}

func (r *fakeSaleRepo) MarkRestored(tx *gorm.DB, id uuid.UUID) error {
	s, ok := r.store.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.DeletedAt = gorm.DeletedAt{}
	r.store.sales[id] = s
	return nil
}

func (r *fakeSaleRepo) SummaryByDate(start, end time.Time) ([]repository.PaymentTotal, error) {
	byMethod := make(map[string]*repository.PaymentTotal)
	for _, s := range r.store.sales {
		if !s.IsActive() || s.CreatedAt.Before(start) || s.CreatedAt.After(end) {
			continue
		}
		method := string(s.PaymentMethod)
		agg, ok := byMethod[method]
		if !ok {
			agg = &repository.PaymentTotal{PaymentMethod: method, Total: decimal.Zero}
			byMethod[method] = agg
		}
		agg.Count++
		agg.Total = agg.Total.Add(s.Total)
	}
	var out []repository.PaymentTotal
	for _, agg := range byMethod {
		out = append(out, *agg)
	}
	return out, nil
}

// ---- sale items ----

type fakeSaleItemRepo struct {
	store *fakeStore
}

func (r *fakeSaleItemRepo) Create(tx *gorm.DB, item *model.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.store.saleItems = append(r.store.saleItems, *item)
	return nil
}

func (r *fakeSaleItemRepo) FindBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, item := range r.store.saleItems {
		if item.SaleID == saleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeSaleItemRepo) FindActiveBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, item := range r.store.saleItems {
		if item.SaleID == saleID && item.IsActive() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeSaleItemRepo) MarkVoidedBySaleID(tx *gorm.DB, saleID uuid.UUID, at time.Time) error {
	for i := range r.store.saleItems {
		if r.store.saleItems[i].SaleID == saleID {
			r.store.saleItems[i].DeletedAt = voided(at)
		}
	}
	return nil
}

func (r *fakeSaleItemRepo) MarkRestoredBySaleID(tx *gorm.DB, saleID uuid.UUID) error {
	for i := range r.store.saleItems {
		if r.store.saleItems[i].SaleID == saleID {
			r.store.saleItems[i].DeletedAt = gorm.DeletedAt{}
		}
	}
	return nil
}
