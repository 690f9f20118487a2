package rdb

import "time"

// WorkspaceRecord is the RDB persistence model for a cached workspace.
// Table name: workspaces. Seq preserves insertion order.
type WorkspaceRecord struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"uniqueIndex;type:text;not null"`
	Creator   string    `gorm:"uniqueIndex:idx_workspaces_owner_name;type:text;not null"`
	Name      string    `gorm:"uniqueIndex:idx_workspaces_owner_name;type:text;not null"`
	Extra     string    `gorm:"type:text"` // JSON encoded map[string]json.RawMessage
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (WorkspaceRecord) TableName() string { return "workspaces" }

// SessionRecord stores the active workspace snapshot.
// Table name: session_state (single row in slot "active").
type SessionRecord struct {
	Slot      string    `gorm:"primaryKey;type:text;not null"`
	Workspace string    `gorm:"type:text;not null"` // JSON encoded model.Workspace
	UpdatedAt time.Time `gorm:"not null"`
}

func (SessionRecord) TableName() string { return "session_state" }

// NavigationRecord is one entry of the navigation history.
type NavigationRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	WorkspaceID string `gorm:"type:text;not null"`
}

func (NavigationRecord) TableName() string { return "navigation_history" }
