package memory

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// UserRepository implements application.UserRepository.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByKakaoID(_ context.Context, kakaoID string) (*domain.User, error) {
	if kakaoID == "" {
		return nil, application.ErrNotFound
	}
	return r.findBy(func(u domain.User) bool { return u.KakaoID == kakaoID })
}

func (r *UserRepository) findBy(match func(domain.User) bool) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, user := range r.db.users {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, application.ErrNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.conflicts(*user) {
		return application.ErrConflict
	}
	user.ID = newID()
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; !ok {
		return application.ErrNotFound
	}
	if r.db.conflicts(*user) {
		return application.ErrConflict
	}
	r.db.users[user.ID] = *user
	return nil
}

// conflicts reports whether another user holds the same username or Kakao id.
func (db *DB) conflicts(user domain.User) bool {
	for id, existing := range db.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return true
		}
		if user.KakaoID != "" && existing.KakaoID == user.KakaoID {
			return true
		}
	}
	return false
}
