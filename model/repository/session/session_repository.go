package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	entity "dashboard.GO/model/entity"
)

type SessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

// Create stores a new session that lives for ttl.
func (r *SessionRepository) Create(s *entity.Session, ttl time.Duration) error {
	now := r.now()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.LastSeenAt = now
	s.ExpiresAt = now.Add(ttl)
	return r.db.Create(s).Error
}

// FindActive returns a non-expired session by ID and records the access.
func (r *SessionRepository) FindActive(id string) (*entity.Session, error) {
	var s entity.Session
	now := r.now()
	if err := r.db.Where("id = ? AND expires_at > ?", id, now).First(&s).Error; err != nil {
		return nil, err
	}
	r.db.Model(&s).UpdateColumn("last_seen_at", now)
	return &s, nil
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Delete(&entity.Session{}, "id = ?", id).Error
}

// PurgeExpired deletes every expired session and returns the count.
func (r *SessionRepository) PurgeExpired() (int64, error) {
	res := r.db.Where("expires_at <= ?", r.now()).Delete(&entity.Session{})
	return res.RowsAffected, res.Error
}
