package entity

import "time"

// Session is a signed-in dashboard user. The cookie carries ID only; the
// upstream bearer credentials stay server side.
type Session struct {
	ID           string     `gorm:"column:id;primaryKey;type:char(36)"`
	Username     string     `gorm:"column:username;type:varchar(128);not null"`
	Variant      string     `gorm:"column:variant;type:varchar(16);not null"`
	AccessToken  string     `gorm:"column:access_token;type:text;not null"`
	RefreshToken *string    `gorm:"column:refresh_token;type:text"`
	TokenExpiry  *time.Time `gorm:"column:token_expiry"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null;index:ix_sessions_expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastSeenAt   time.Time  `gorm:"column:last_seen_at"`
}

func (Session) TableName() string {
	return "dashboard_session"
}
