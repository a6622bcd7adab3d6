package memory

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// NoticeRepository implements application.NoticeRepository.
type NoticeRepository struct {
	db *DB
}

func NewNoticeRepository(db *DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) List(_ context.Context, keyword string) ([]domain.Notice, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res := make([]domain.Notice, 0, len(r.db.notices))
	for _, notice := range r.db.notices {
		if application.ContainsKeyword(notice.Name, keyword) {
			res = append(res, notice)
		}
	}
	return res, nil
}

func (r *NoticeRepository) Create(_ context.Context, notice *domain.Notice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	notice.ID = newID()
	r.db.notices = append(r.db.notices, *notice)
	return nil
}
