package dao

import (
	"clipchain/models"
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// 内存实现：未配置 mysql 的本地开发环境与单元测试使用，语义与 gorm 实现一致

type MemoryLedger struct {
	mu       sync.Mutex
	accounts map[uint64]models.Account
	txs      []models.CreditTransaction
	nextTxID uint64
}

var _ LedgerStore = (*MemoryLedger)(nil)

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{accounts: make(map[uint64]models.Account)}
}

func (m *MemoryLedger) Create(_ context.Context, acc *models.Account, txs ...*models.CreditTransaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[acc.Fid]; ok {
		return false, nil
	}
	now := time.Now()
	acc.CreatedAt, acc.UpdatedAt = now, now
	m.accounts[acc.Fid] = *acc
	m.appendTxs(acc.Fid, txs)
	return true, nil
}

func (m *MemoryLedger) Get(_ context.Context, fid uint64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[fid]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &acc, nil
}

func (m *MemoryLedger) Update(_ context.Context, fid uint64, fn func(acc *models.Account) ([]*models.CreditTransaction, error)) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[fid]
	if !ok {
		return nil, ErrAccountNotFound
	}
	// 在副本上修改，fn 失败时原数据不变
	txs, err := fn(&acc)
	if err != nil {
		return nil, err
	}
	acc.UpdatedAt = time.Now()
	m.accounts[fid] = acc
	m.appendTxs(fid, txs)
	return &acc, nil
}

func (m *MemoryLedger) appendTxs(fid uint64, txs []*models.CreditTransaction) {
	for _, t := range txs {
		m.nextTxID++
		t.ID = m.nextTxID
		t.Fid = fid
		t.CreatedAt = time.Now()
		m.txs = append(m.txs, *t)
	}
}

func (m *MemoryLedger) ListTransactions(_ context.Context, fid uint64, direction string, cursor uint64, limit int) ([]models.CreditTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.CreditTransaction, 0)
	for i := len(m.txs) - 1; i >= 0 && len(list) < limit; i-- {
		t := m.txs[i]
		if t.Fid != fid || (cursor > 0 && t.ID >= cursor) {
			continue
		}
		if direction == DirectionIncome && t.Amount <= 0 || direction == DirectionExpense && t.Amount >= 0 {
			continue
		}
		list = append(list, t)
	}
	return list, nil
}

func (m *MemoryLedger) TopAccounts(_ context.Context, orderBy string, limit int) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	score := func(a models.Account) int64 {
		if orderBy == RankByVideos {
			return a.TotalVideosCreated
		}
		return int64(a.LongestStreak)
	}
	list := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		if score(a) > 0 {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if score(list[i]) != score(list[j]) {
			return score(list[i]) > score(list[j])
		}
		return list[i].Fid < list[j].Fid
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type MemoryTemplates struct {
	mu        sync.Mutex
	templates map[string]models.VideoTemplate
	uses      []models.TemplateUse
}

var _ TemplateStore = (*MemoryTemplates)(nil)

func NewMemoryTemplates() *MemoryTemplates {
	return &MemoryTemplates{templates: make(map[string]models.VideoTemplate)}
}

func (m *MemoryTemplates) Create(_ context.Context, t *models.VideoTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.UpdatedAt = t.CreatedAt
	m.templates[t.ID] = *t
	return nil
}

func (m *MemoryTemplates) Get(_ context.Context, id string) (*models.VideoTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return &t, nil
}

func (m *MemoryTemplates) ListTrending(_ context.Context, limit int) ([]models.VideoTemplate, error) {
	return m.filter(limit, func(t models.VideoTemplate) bool {
		return t.IsPublic && !t.IsOfficial
	}, func(a, b models.VideoTemplate) bool {
		if a.UsesCount != b.UsesCount {
			return a.UsesCount > b.UsesCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (m *MemoryTemplates) ListByCreator(_ context.Context, fid uint64, limit int) ([]models.VideoTemplate, error) {
	return m.filter(limit, func(t models.VideoTemplate) bool {
		return t.CreatorFid == fid
	}, func(a, b models.VideoTemplate) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (m *MemoryTemplates) filter(limit int, keep func(models.VideoTemplate) bool, less func(a, b models.VideoTemplate) bool) ([]models.VideoTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.VideoTemplate, 0)
	for _, t := range m.templates {
		if keep(t) {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryTemplates) CreateUse(_ context.Context, use *models.TemplateUse) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.uses {
		if u.TemplateID == use.TemplateID && u.UserFid == use.UserFid && u.GeneratedVideoURL == use.GeneratedVideoURL {
			return ErrDuplicateUse
		}
	}
	use.ID = uint64(len(m.uses) + 1)
	use.CreatedAt = time.Now()
	m.uses = append(m.uses, *use)
	return nil
}

func (m *MemoryTemplates) IncrementUses(_ context.Context, id string, videoURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.templates[id]
	if !ok {
		return false, nil
	}
	t.UsesCount++
	if t.VideoURL == "" {
		t.VideoURL = videoURL
	}
	m.templates[id] = t
	return true, nil
}

// Uses 返回使用记录副本
func (m *MemoryTemplates) Uses() []models.TemplateUse {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.uses)
}

type MemoryRefunds struct {
	mu      sync.Mutex
	refunds map[int64]models.RefundRequest
}

var _ RefundStore = (*MemoryRefunds)(nil)

func NewMemoryRefunds() *MemoryRefunds {
	return &MemoryRefunds{refunds: make(map[int64]models.RefundRequest)}
}

func (m *MemoryRefunds) Create(_ context.Context, r *models.RefundRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.refunds {
		if existing.TransactionHash == r.TransactionHash {
			return ErrDuplicateRefund
		}
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	m.refunds[r.ID] = *r
	return nil
}

func (m *MemoryRefunds) Get(_ context.Context, id int64) (*models.RefundRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.refunds[id]
	if !ok {
		return nil, ErrRefundNotFound
	}
	return &r, nil
}

func (m *MemoryRefunds) GetByTxHash(_ context.Context, hash string) (*models.RefundRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.refunds {
		if r.TransactionHash == hash {
			return &r, nil
		}
	}
	return nil, ErrRefundNotFound
}

func (m *MemoryRefunds) List(_ context.Context, status models.RefundStatus, limit int) ([]models.RefundRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.RefundRequest, 0)
	for _, r := range m.refunds {
		if status == "" || r.Status == status {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryRefunds) Transition(_ context.Context, id int64, from []models.RefundStatus, apply func(r *models.RefundRequest)) (*models.RefundRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.refunds[id]
	if !ok {
		return nil, ErrRefundNotFound
	}
	if !slices.Contains(from, r.Status) {
		return nil, ErrStatusConflict
	}
	apply(&r)
	r.UpdatedAt = time.Now()
	m.refunds[id] = r
	return &r, nil
}
