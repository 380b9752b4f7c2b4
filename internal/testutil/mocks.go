package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/domain/remediation"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	u.UpdatedAt = time.Now()
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		if u.TenantID == tenantID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), int64(len(result)), nil
}

// MockClassificationRepository is a mock implementation of classification.Repository
type MockClassificationRepository struct {
	Runs            map[string]*classification.Run
	Recommendations map[string]*classification.Recommendation
	Findings        map[string]*classification.ArchFinding
	CreateError     error
	GetError        error
	UpdateError     error
}

func NewMockClassificationRepository() *MockClassificationRepository {
	return &MockClassificationRepository{
		Runs:            make(map[string]*classification.Run),
		Recommendations: make(map[string]*classification.Recommendation),
		Findings:        make(map[string]*classification.ArchFinding),
	}
}

func (m *MockClassificationRepository) CreateRun(ctx context.Context, run *classification.Run) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	m.Runs[run.ID] = run
	return nil
}

func (m *MockClassificationRepository) GetRun(ctx context.Context, tenantID, id string) (*classification.Run, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	run, ok := m.Runs[id]
	if !ok || run.TenantID != tenantID {
		return nil, fmt.Errorf("classification run not found: %s", id)
	}
	return run, nil
}

func (m *MockClassificationRepository) ListRuns(ctx context.Context, tenantID string, limit, offset int) ([]*classification.Run, int64, error) {
	var result []*classification.Run
	for _, run := range m.Runs {
		if run.TenantID == tenantID {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return page(result, limit, offset), int64(len(result)), nil
}

func (m *MockClassificationRepository) CreateRecommendations(ctx context.Context, recs []*classification.Recommendation) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, rec := range recs {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Status == "" {
			rec.Status = classification.StatusPending
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now()
		}
		m.Recommendations[rec.ID] = rec
	}
	return nil
}

func (m *MockClassificationRepository) GetRecommendation(ctx context.Context, tenantID, id string) (*classification.Recommendation, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	rec, ok := m.Recommendations[id]
	if !ok || rec.TenantID != tenantID {
		return nil, fmt.Errorf("recommendation not found: %s", id)
	}
	return rec, nil
}

func (m *MockClassificationRepository) ListRecommendations(ctx context.Context, tenantID string, filter classification.Filter, limit, offset int) ([]*classification.Recommendation, int64, error) {
	var result []*classification.Recommendation
	for _, rec := range m.Recommendations {
		if rec.TenantID != tenantID {
			continue
		}
		if filter.RunID != "" && rec.RunID != filter.RunID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.DetectionClass != "" && rec.DetectionClass != filter.DetectionClass {
			continue
		}
		if filter.PolicyRoute != "" && rec.PolicyRoute != filter.PolicyRoute {
			continue
		}
		if filter.MinConfidence > 0 && rec.Confidence < filter.MinConfidence {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), int64(len(result)), nil
}

func (m *MockClassificationRepository) UpdateRecommendationStatus(ctx context.Context, tenantID, id string, status classification.Status) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	rec, ok := m.Recommendations[id]
	if !ok || rec.TenantID != tenantID {
		return fmt.Errorf("recommendation not found: %s", id)
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	return nil
}

func (m *MockClassificationRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}
	var expired int64
	for _, rec := range m.Recommendations {
		if rec.Status == classification.StatusPending && rec.CreatedAt.Before(cutoff) {
			rec.Status = classification.StatusExpired
			expired++
		}
	}
	return expired, nil
}

func (m *MockClassificationRepository) PendingSavings(ctx context.Context, tenantID string) (*classification.SavingsTotals, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	totals := &classification.SavingsTotals{}
	for _, rec := range m.Recommendations {
		if rec.TenantID != tenantID || rec.Status != classification.StatusPending {
			continue
		}
		totals.Count++
		totals.LowUSD += rec.SavingsLowUSD
		totals.MidUSD += rec.SavingsMidUSD
		totals.HighUSD += rec.SavingsHighUSD
	}
	return totals, nil
}

func (m *MockClassificationRepository) CreateFindings(ctx context.Context, findings []*classification.ArchFinding) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, f := range findings {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now()
		}
		m.Findings[f.ID] = f
	}
	return nil
}

func (m *MockClassificationRepository) ListFindings(ctx context.Context, tenantID string, filter classification.FindingFilter, limit, offset int) ([]*classification.ArchFinding, int64, error) {
	var result []*classification.ArchFinding
	for _, f := range m.Findings {
		if f.TenantID != tenantID {
			continue
		}
		if filter.RunID != "" && f.RunID != filter.RunID {
			continue
		}
		if filter.FindingType != "" && f.FindingType != filter.FindingType {
			continue
		}
		if filter.RiskLabel != "" && f.RiskLabel != filter.RiskLabel {
			continue
		}
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), int64(len(result)), nil
}

// MockRemediationRepository is a mock implementation of remediation.Repository
type MockRemediationRepository struct {
	Actions     map[string]*remediation.Action
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockRemediationRepository() *MockRemediationRepository {
	return &MockRemediationRepository{
		Actions: make(map[string]*remediation.Action),
	}
}

func (m *MockRemediationRepository) Create(ctx context.Context, action *remediation.Action) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	action.UpdatedAt = action.CreatedAt
	m.Actions[action.ID] = action
	return nil
}

func (m *MockRemediationRepository) GetByID(ctx context.Context, tenantID, id string) (*remediation.Action, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	action, ok := m.Actions[id]
	if !ok || action.TenantID != tenantID {
		return nil, fmt.Errorf("remediation action not found: %s", id)
	}
	return action, nil
}

func (m *MockRemediationRepository) Update(ctx context.Context, action *remediation.Action) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Actions[action.ID]; !ok {
		return fmt.Errorf("remediation action not found: %s", action.ID)
	}
	action.UpdatedAt = time.Now()
	m.Actions[action.ID] = action
	return nil
}

func (m *MockRemediationRepository) List(ctx context.Context, tenantID string, filter remediation.Filter, limit, offset int) ([]*remediation.Action, int64, error) {
	var result []*remediation.Action
	for _, a := range m.Actions {
		if a.TenantID != tenantID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ActionType != "" && a.ActionType != filter.ActionType {
			continue
		}
		if filter.ResourceID != "" && a.ResourceID != filter.ResourceID {
			continue
		}
		if filter.RecommendationID != "" && (a.RecommendationID == nil || *a.RecommendationID != filter.RecommendationID) {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), int64(len(result)), nil
}

func (m *MockRemediationRepository) GetByRecommendationID(ctx context.Context, tenantID, recommendationID string) ([]*remediation.Action, error) {
	var result []*remediation.Action
	for _, a := range m.Actions {
		if a.TenantID == tenantID && a.RecommendationID != nil && *a.RecommendationID == recommendationID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockRemediationRepository) GetPendingApprovals(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	var result []*remediation.Action
	for _, a := range m.Actions {
		if a.TenantID == tenantID && a.Status == remediation.ActionStatusPending && remediation.RequiresApproval(a.PolicyRoute) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockRemediationRepository) CountByStatus(ctx context.Context, tenantID string) (map[remediation.ActionStatus]int, error) {
	counts := make(map[remediation.ActionStatus]int)
	for _, a := range m.Actions {
		if a.TenantID == tenantID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

// MockTenantRepository is a mock implementation of tenant.Repository
type MockTenantRepository struct {
	Settings    map[string]*tenant.Settings
	GetError    error
	UpsertError error
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{
		Settings: make(map[string]*tenant.Settings),
	}
}

func (m *MockTenantRepository) Get(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	s, ok := m.Settings[tenantID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *MockTenantRepository) Upsert(ctx context.Context, settings *tenant.Settings) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if existing, ok := m.Settings[settings.TenantID]; ok {
		settings.CreatedAt = existing.CreatedAt
	} else if settings.CreatedAt.IsZero() {
		settings.CreatedAt = time.Now()
	}
	settings.UpdatedAt = time.Now()
	copied := *settings
	m.Settings[settings.TenantID] = &copied
	return nil
}

func (m *MockTenantRepository) Delete(ctx context.Context, tenantID string) error {
	if _, ok := m.Settings[tenantID]; !ok {
		return fmt.Errorf("tenant settings not found: %s", tenantID)
	}
	delete(m.Settings, tenantID)
	return nil
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*tenant.Settings, int64, error) {
	var result []*tenant.Settings
	for _, s := range m.Settings {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TenantID < result[j].TenantID })
	return page(result, limit, offset), int64(len(result)), nil
}

// MockSpendRepository is a mock implementation of spend.Repository
type MockSpendRepository struct {
	mu          sync.Mutex
	Savings     []*spend.SavingsRecord
	Costs       []*spend.CostRecord
	CreateError error
	SumError    error
}

func NewMockSpendRepository() *MockSpendRepository {
	return &MockSpendRepository{}
}

func (m *MockSpendRepository) CreateSavings(ctx context.Context, rec *spend.SavingsRecord) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RealizedOn.IsZero() {
		rec.RealizedOn = time.Now().UTC()
	}
	rec.RealizedOn = utcDay(rec.RealizedOn)
	rec.CreatedAt = time.Now()
	m.Savings = append(m.Savings, rec)
	return nil
}

func (m *MockSpendRepository) ListSavings(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*spend.SavingsRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fromDay, toDay := utcDay(from), utcDay(to)
	var result []*spend.SavingsRecord
	for _, r := range m.Savings {
		if r.TenantID != tenantID {
			continue
		}
		if r.RealizedOn.Before(fromDay) || r.RealizedOn.After(toDay) {
			continue
		}
		result = append(result, r)
	}
	return page(result, limit, offset), int64(len(result)), nil
}

func (m *MockSpendRepository) SumSavingsOn(ctx context.Context, tenantID string, day time.Time) (float64, error) {
	if m.SumError != nil {
		return 0, m.SumError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	target := utcDay(day)
	var total float64
	for _, r := range m.Savings {
		if tenantID != "" && r.TenantID != tenantID {
			continue
		}
		if r.RealizedOn.Equal(target) {
			total += r.AmountUSD
		}
	}
	return total, nil
}

func (m *MockSpendRepository) SumSavingsInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error) {
	if m.SumError != nil {
		return 0, m.SumError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, r := range m.Savings {
		if r.TenantID == tenantID && sameMonth(r.RealizedOn, month) {
			total += r.AmountUSD
		}
	}
	return total, nil
}

func (m *MockSpendRepository) CreateCost(ctx context.Context, rec *spend.CostRecord) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	if rec.IncurredOn.IsZero() {
		rec.IncurredOn = time.Now().UTC()
	}
	rec.IncurredOn = utcDay(rec.IncurredOn)
	rec.CreatedAt = time.Now()
	m.Costs = append(m.Costs, rec)
	return nil
}

func (m *MockSpendRepository) ListCosts(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*spend.CostRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fromDay, toDay := utcDay(from), utcDay(to)
	var result []*spend.CostRecord
	for _, r := range m.Costs {
		if r.TenantID != tenantID {
			continue
		}
		if r.IncurredOn.Before(fromDay) || r.IncurredOn.After(toDay) {
			continue
		}
		result = append(result, r)
	}
	return page(result, limit, offset), int64(len(result)), nil
}

func (m *MockSpendRepository) SumCostInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error) {
	if m.SumError != nil {
		return 0, m.SumError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, r := range m.Costs {
		if r.TenantID == tenantID && sameMonth(r.IncurredOn, month) {
			total += r.AmountUSD
		}
	}
	return total, nil
}

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	Channels    map[string]*notification.ChannelConfig
	Logs        []*notification.Log
	UpsertError error
	ListError   error
	LogError    error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		Channels: make(map[string]*notification.ChannelConfig),
	}
}

func channelKey(tenantID string, channel notification.Channel) string {
	return tenantID + "/" + string(channel)
}

func (m *MockNotificationRepository) UpsertChannel(ctx context.Context, cfg *notification.ChannelConfig) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	key := channelKey(cfg.TenantID, cfg.Channel)
	if existing, ok := m.Channels[key]; ok {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	} else {
		if cfg.ID == "" {
			cfg.ID = uuid.New().String()
		}
		cfg.CreatedAt = time.Now()
	}
	cfg.UpdatedAt = time.Now()
	m.Channels[key] = cfg
	return nil
}

func (m *MockNotificationRepository) GetChannel(ctx context.Context, tenantID string, channel notification.Channel) (*notification.ChannelConfig, error) {
	cfg, ok := m.Channels[channelKey(tenantID, channel)]
	if !ok {
		return nil, fmt.Errorf("notification channel not found: %s/%s", tenantID, channel)
	}
	return cfg, nil
}

func (m *MockNotificationRepository) ListChannels(ctx context.Context, tenantID string) ([]*notification.ChannelConfig, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*notification.ChannelConfig
	for _, cfg := range m.Channels {
		if cfg.TenantID == tenantID {
			result = append(result, cfg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Channel < result[j].Channel })
	return result, nil
}

func (m *MockNotificationRepository) DeleteChannel(ctx context.Context, id string) error {
	for key, cfg := range m.Channels {
		if cfg.ID == id {
			delete(m.Channels, key)
			return nil
		}
	}
	return fmt.Errorf("notification channel not found: %s", id)
}

func (m *MockNotificationRepository) CreateLog(ctx context.Context, log *notification.Log) error {
	if m.LogError != nil {
		return m.LogError
	}
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockNotificationRepository) ListLogs(ctx context.Context, tenantID string, filter notification.LogFilter, limit, offset int) ([]*notification.Log, int64, error) {
	var result []*notification.Log
	for _, l := range m.Logs {
		if l.TenantID != tenantID {
			continue
		}
		if filter.Channel != "" && l.Channel != filter.Channel {
			continue
		}
		if filter.EventType != "" && l.EventType != filter.EventType {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		result = append(result, l)
	}
	return page(result, limit, offset), int64(len(result)), nil
}

// MockExecutor is a mock implementation of remediation.Executor
type MockExecutor struct {
	Result   *remediation.Result
	Err      error
	Executed []*remediation.Action
}

func (m *MockExecutor) Execute(ctx context.Context, action *remediation.Action) (*remediation.Result, error) {
	m.Executed = append(m.Executed, action)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &remediation.Result{
		Success:  true,
		DryRun:   true,
		Message:  "mock execution",
		SavedUSD: action.EstimatedSavingsUSD,
	}, nil
}

// MockNotifier records budget alerts for assertions
type MockNotifier struct {
	Alerts []BudgetAlert
}

type BudgetAlert struct {
	TenantID string
	SpentUSD float64
	CapUSD   float64
}

func (m *MockNotifier) SendBudgetAlert(ctx context.Context, tenantID string, spentUSD, capUSD float64) error {
	m.Alerts = append(m.Alerts, BudgetAlert{TenantID: tenantID, SpentUSD: spentUSD, CapUSD: capUSD})
	return nil
}

// page applies limit/offset the way the SQL repositories do
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameMonth(t, month time.Time) bool {
	t, month = t.UTC(), month.UTC()
	return t.Year() == month.Year() && t.Month() == month.Month()
}
