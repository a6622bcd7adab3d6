package application

import (
	"context"
	"fmt"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type noticeService struct {
	notices NoticeRepository
}

// NewNoticeService creates the notice listing service.
func NewNoticeService(notices NoticeRepository) NoticeService {
	return &noticeService{notices: notices}
}

// List returns one page of notices whose name contains keyword, ignoring case.
func (s *noticeService) List(ctx context.Context, keyword string, page Page) ([]domain.Notice, error) {
	notices, err := s.notices.List(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return SliceWindow(notices, page), nil
}
