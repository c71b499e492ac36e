package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"transfleet/internal/domain"
	"transfleet/internal/media"
	"transfleet/internal/service"
	"transfleet/internal/upstream"
)

// ──────────────────────────────────────────────
// MOCK ORDER API
// ──────────────────────────────────────────────

// MockOrderAPI is a mock implementation of upstream.OrderAPI.
type MockOrderAPI struct {
	mu     sync.RWMutex
	Orders []domain.DriverOrder

	// Counters for verification
	ListCallCount   int32
	UpdateCallCount int32

	// Error injection
	ListError   error
	UpdateError error

	// Last transition captured for assertions
	LastUpdateKind domain.OrderKind
	LastUpdateID   string
	LastUpdate     upstream.StatusUpdate
}

// NewMockOrderAPI creates a new mock order API.
func NewMockOrderAPI() *MockOrderAPI {
	return &MockOrderAPI{}
}

func (m *MockOrderAPI) ListDriverOrders(ctx context.Context, session domain.Session, filter int) ([]domain.DriverOrder, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.DriverOrder, len(m.Orders))
	copy(out, m.Orders)
	return out, nil
}

func (m *MockOrderAPI) UpdateStatus(ctx context.Context, session domain.Session, kind domain.OrderKind, id string, update upstream.StatusUpdate) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUpdateKind = kind
	m.LastUpdateID = id
	m.LastUpdate = update
	return nil
}

// ──────────────────────────────────────────────
// MOCK GEO API
// ──────────────────────────────────────────────

// MockGeoAPI is a mock implementation of upstream.GeoAPI.
type MockGeoAPI struct {
	mu        sync.RWMutex
	Provinces map[string]string
	Districts map[string]string
	Wards     map[string]string

	// Counters for verification
	ProvinceCallCount int32
	DistrictCallCount int32
	WardCallCount     int32

	// Error injection
	ProvinceError error
	DistrictError error
	WardError     error
}

// NewMockGeoAPI creates a new mock geo API.
func NewMockGeoAPI() *MockGeoAPI {
	return &MockGeoAPI{
		Provinces: make(map[string]string),
		Districts: make(map[string]string),
		Wards:     make(map[string]string),
	}
}

func (m *MockGeoAPI) ProvinceName(ctx context.Context, code string) (string, error) {
	atomic.AddInt32(&m.ProvinceCallCount, 1)
	if m.ProvinceError != nil {
		return "", m.ProvinceError
	}
	return m.lookup(m.Provinces, code)
}

func (m *MockGeoAPI) DistrictName(ctx context.Context, code string) (string, error) {
	atomic.AddInt32(&m.DistrictCallCount, 1)
	if m.DistrictError != nil {
		return "", m.DistrictError
	}
	return m.lookup(m.Districts, code)
}

func (m *MockGeoAPI) WardName(ctx context.Context, code string) (string, error) {
	atomic.AddInt32(&m.WardCallCount, 1)
	if m.WardError != nil {
		return "", m.WardError
	}
	return m.lookup(m.Wards, code)
}

func (m *MockGeoAPI) lookup(names map[string]string, code string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := names[code]
	if !ok {
		return "", upstream.ErrNotFound
	}
	return name, nil
}

// ──────────────────────────────────────────────
// MOCK CUSTOMER API
// ──────────────────────────────────────────────

// MockCustomerAPI is a mock implementation of upstream.CustomerAPI.
type MockCustomerAPI struct {
	mu        sync.RWMutex
	Customers map[string]*domain.Customer

	// Counters for verification
	GetCallCount int32

	// Error injection
	GetError error
}

// NewMockCustomerAPI creates a new mock customer API.
func NewMockCustomerAPI() *MockCustomerAPI {
	return &MockCustomerAPI{Customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerAPI) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.Customers[id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	copy := *customer
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK REPAIR API
// ──────────────────────────────────────────────

// MockRepairAPI is a mock implementation of upstream.RepairAPI.
type MockRepairAPI struct {
	mu      sync.RWMutex
	Repairs []domain.RepairRequest

	// Counters for verification
	CreateCallCount int32
	ListCallCount   int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	ListError   error
	DeleteError error

	// Captured for assertions
	LastCreate upstream.CreateRepairRequest
	LastDelete string
}

// NewMockRepairAPI creates a new mock repair API.
func NewMockRepairAPI() *MockRepairAPI {
	return &MockRepairAPI{}
}

func (m *MockRepairAPI) CreateRepair(ctx context.Context, session domain.Session, req upstream.CreateRepairRequest) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastCreate = req
	return nil
}

func (m *MockRepairAPI) ListRepairs(ctx context.Context, session domain.Session, userID string) ([]domain.RepairRequest, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.RepairRequest, len(m.Repairs))
	copy(out, m.Repairs)
	return out, nil
}

func (m *MockRepairAPI) DeleteRepair(ctx context.Context, session domain.Session, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDelete = id
	return nil
}

// ──────────────────────────────────────────────
// MOCK USER API
// ──────────────────────────────────────────────

// MockUserAPI is a mock implementation of upstream.UserAPI.
type MockUserAPI struct {
	mu             sync.RWMutex
	SignInToken    string
	Users          map[string]*domain.User
	DriverVehicles map[string]*domain.DriverVehicle

	// Counters for verification
	SignInCallCount        int32
	SignUpCallCount        int32
	SignOutCallCount       int32
	UserDetailCallCount    int32
	DriverVehicleCallCount int32

	// Error injection
	SignInError        error
	SignUpError        error
	SignOutError       error
	UserDetailError    error
	DriverVehicleError error
}

// NewMockUserAPI creates a new mock user API.
func NewMockUserAPI() *MockUserAPI {
	return &MockUserAPI{
		Users:          make(map[string]*domain.User),
		DriverVehicles: make(map[string]*domain.DriverVehicle),
	}
}

func (m *MockUserAPI) SignIn(ctx context.Context, req upstream.SignInRequest) (string, error) {
	atomic.AddInt32(&m.SignInCallCount, 1)
	if m.SignInError != nil {
		return "", m.SignInError
	}
	return m.SignInToken, nil
}

func (m *MockUserAPI) SignUp(ctx context.Context, req upstream.SignUpRequest) error {
	atomic.AddInt32(&m.SignUpCallCount, 1)
	return m.SignUpError
}

func (m *MockUserAPI) SignOut(ctx context.Context, session domain.Session) error {
	atomic.AddInt32(&m.SignOutCallCount, 1)
	return m.SignOutError
}

func (m *MockUserAPI) GetUserDetail(ctx context.Context, session domain.Session, id string) (*domain.User, error) {
	atomic.AddInt32(&m.UserDetailCallCount, 1)
	if m.UserDetailError != nil {
		return nil, m.UserDetailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserAPI) GetDriverVehicle(ctx context.Context, session domain.Session, userID string) (*domain.DriverVehicle, error) {
	atomic.AddInt32(&m.DriverVehicleCallCount, 1)
	if m.DriverVehicleError != nil {
		return nil, m.DriverVehicleError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	dv, ok := m.DriverVehicles[userID]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	copy := *dv
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK UPLOADER
// ──────────────────────────────────────────────

// MockUploader is a mock implementation of storage.Uploader. URLs are
// derived from the image names.
type MockUploader struct {
	mu sync.Mutex

	// Counters for verification
	UploadCallCount int32

	// Error injection
	UploadError error

	// When both are set, Upload signals UploadStarted then waits on
	// UploadRelease, letting a test hold an upload in flight.
	UploadStarted chan struct{}
	UploadRelease chan struct{}

	// Captured for assertions
	LastBatch []media.Image
}

// NewMockUploader creates a new mock uploader.
func NewMockUploader() *MockUploader {
	return &MockUploader{}
}

func (m *MockUploader) Upload(ctx context.Context, images []media.Image) ([]string, error) {
	atomic.AddInt32(&m.UploadCallCount, 1)
	if m.UploadStarted != nil && m.UploadRelease != nil {
		m.UploadStarted <- struct{}{}
		<-m.UploadRelease
	}
	if m.UploadError != nil {
		return nil, m.UploadError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastBatch = make([]media.Image, len(images))
	copy(m.LastBatch, images)
	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = "https://res.example.com/" + img.Name
	}
	return urls, nil
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session

	// Counters for verification
	SetCallCount    int32
	GetCallCount    int32
	DeleteCallCount int32

	// Error injection
	SetError    error
	GetError    error
	DeleteError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *MockSessionStore) Set(ctx context.Context, session domain.Session, ttl time.Duration) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Has reports whether a session is stored for the token.
func (m *MockSessionStore) Has(token string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[token]
	return ok
}

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// When true Acquire reports the lock as already held.
	Contended bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := string(kind) + ":" + orderID
	if m.Contended || m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *MockLockStore) ReleaseSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, string(kind)+":"+orderID)
	return nil
}

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu        sync.RWMutex
	provinces map[string]string
	districts map[string]string
	wards     map[string]string
	customers map[string]string
	profiles  map[string]*domain.Profile
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		provinces: make(map[string]string),
		districts: make(map[string]string),
		wards:     make(map[string]string),
		customers: make(map[string]string),
		profiles:  make(map[string]*domain.Profile),
	}
}

func (m *MockCacheStore) GetProvinceName(ctx context.Context, code string) (string, error) {
	return m.get(m.provinces, code)
}

func (m *MockCacheStore) SetProvinceName(ctx context.Context, code, name string) error {
	return m.set(m.provinces, code, name)
}

func (m *MockCacheStore) GetDistrictName(ctx context.Context, code string) (string, error) {
	return m.get(m.districts, code)
}

func (m *MockCacheStore) SetDistrictName(ctx context.Context, code, name string) error {
	return m.set(m.districts, code, name)
}

func (m *MockCacheStore) GetWardName(ctx context.Context, code string) (string, error) {
	return m.get(m.wards, code)
}

func (m *MockCacheStore) SetWardName(ctx context.Context, code, name string) error {
	return m.set(m.wards, code, name)
}

func (m *MockCacheStore) GetCustomerName(ctx context.Context, id string) (string, error) {
	return m.get(m.customers, id)
}

func (m *MockCacheStore) SetCustomerName(ctx context.Context, id, name string) error {
	return m.set(m.customers, id, name)
}

func (m *MockCacheStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	copy := *profile
	return &copy, nil
}

func (m *MockCacheStore) SetProfile(ctx context.Context, userID string, profile *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *profile
	m.profiles[userID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateProfile(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, userID)
	return nil
}

func (m *MockCacheStore) get(names map[string]string, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return names[key], nil
}

func (m *MockCacheStore) set(names map[string]string, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	names[key] = value
	return nil
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier is a mock implementation of service.Notifier.
type MockNotifier struct {
	mu     sync.Mutex
	events []service.Event

	// Counters for verification
	NotifyCallCount int32
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, event service.Event) {
	atomic.AddInt32(&m.NotifyCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns the captured events for assertions.
func (m *MockNotifier) Events() []service.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Event, len(m.events))
	copy(out, m.events)
	return out
}
