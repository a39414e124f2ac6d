package models

import "time"

// IdempotencyRecord stores the response of the first execution of a guarded
// request. Keyed by the client-supplied X-Request-ID; at most one row per key
// (unique index, see database.AutoMigrate). Rows are never updated; lookups
// only consider rows created within the replay window, so stale rows are
// inert even before the reaper removes them.
type IdempotencyRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	IdempotencyKey string    `json:"idempotency_key" gorm:"size:36;uniqueIndex;not null"`
	UserId         *string   `json:"user_id" gorm:"size:36"`
	RequestMethod  string    `json:"request_method" gorm:"size:10"`
	RequestURI     string    `json:"request_uri" gorm:"size:255"`
	RequestBody    []byte    `json:"-" gorm:"type:bytea"` // diagnostic snapshot, not matched on
	ResponseStatus int       `json:"response_status"`
	ResponseBody   []byte    `json:"-" gorm:"type:bytea"`
	ResponseType   string    `json:"response_type" gorm:"size:100"` // Content-Type of the first execution
	IPAddress      string    `json:"ip_address" gorm:"size:45"`
	UserAgent      string    `json:"user_agent" gorm:"size:255"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}
