package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByCPF(_ context.Context, cpf string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.CPF == cpf {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ExistsByCPF(_ context.Context, cpf string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]domain.Product), nextID: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = f.nextID
	f.nextID++
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.products[product.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	product.OwnerID = existing.OwnerID
	product.UpdatedAt = time.Now()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (f *fakeProductRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	product, err := f.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.OwnerID, nil
}

func (f *fakeProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, product := range f.products {
		if product.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, product := range f.products {
		out = append(out, product)
	}
	return out, nil
}

func (f *fakeProductRepo) ListByCity(_ context.Context, cityID int64) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, product := range f.products {
		if product.CityID == cityID {
			out = append(out, product)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, product := range f.products {
		if product.OwnerID == ownerID {
			out = append(out, product)
		}
	}
	return out, nil
}

type fakeCityRepo struct {
	mu     sync.Mutex
	cities map[int64]domain.City
	nextID int64
}

func newFakeCityRepo() *fakeCityRepo {
	return &fakeCityRepo{cities: make(map[int64]domain.City), nextID: 1}
}

func (f *fakeCityRepo) Create(_ context.Context, city *domain.City) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	city.ID = f.nextID
	f.nextID++
	city.CreatedAt = time.Now()
	city.UpdatedAt = city.CreatedAt
	f.cities[city.ID] = *city
	return nil
}

func (f *fakeCityRepo) Update(_ context.Context, city *domain.City) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cities[city.ID]; !ok {
		return pgx.ErrNoRows
	}
	city.UpdatedAt = time.Now()
	f.cities[city.ID] = *city
	return nil
}

func (f *fakeCityRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cities[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.cities, id)
	return nil
}

func (f *fakeCityRepo) GetByID(_ context.Context, id int64) (*domain.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	city, ok := f.cities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &city, nil
}

func (f *fakeCityRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, city := range f.cities {
		if city.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCityRepo) List(_ context.Context) ([]domain.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.City, 0, len(f.cities))
	for _, city := range f.cities {
		out = append(out, city)
	}
	return out, nil
}

type fakeLimiter struct {
	mu        sync.Mutex
	failures  map[string]int
	max       int
	successes int
}

func newFakeLimiter(max int) *fakeLimiter {
	return &fakeLimiter{failures: make(map[string]int), max: max}
}

func (f *fakeLimiter) key(identifier string, ipHash []byte) string {
	return identifier + string(ipHash)
}

func (f *fakeLimiter) Allow(_ context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures[f.key(identifier, ipHash)] >= f.max {
		return false, time.Minute, nil
	}
	return true, 0, nil
}

func (f *fakeLimiter) Failure(_ context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(identifier, ipHash)
	f.failures[k]++
	if f.failures[k] >= f.max {
		return true, time.Minute, nil
	}
	return false, 0, nil
}

func (f *fakeLimiter) Success(_ context.Context, identifier string, ipHash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, f.key(identifier, ipHash))
	f.successes++
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
