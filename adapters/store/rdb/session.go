package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/domain/model"
	"gorm.io/gorm"
)

const activeSlot = "active"

// Session persists the active workspace and navigation history so that
// separate CLI invocations share them.
type Session struct {
	db *gorm.DB
}

func NewSession(db *gorm.DB) *Session {
	return &Session{db: db}
}

func (s *Session) Activate(ctx context.Context, ws *model.Workspace, opts model.NavigationOptions) error {
	if ws == nil {
		return model.ErrWorkspaceInvalid
	}
	b, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := &SessionRecord{Slot: activeSlot, Workspace: string(b), UpdatedAt: time.Now().UTC()}
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if opts.ReplaceNavigationState {
			var last NavigationRecord
			err := tx.Order("seq DESC").First(&last).Error
			if err == nil {
				return tx.Model(&last).Update("workspace_id", ws.ID).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Create(&NavigationRecord{WorkspaceID: ws.ID}).Error
	})
}

func (s *Session) Active(ctx context.Context) (*model.Workspace, error) {
	var rec SessionRecord
	if err := s.db.WithContext(ctx).First(&rec, "slot = ?", activeSlot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var ws model.Workspace
	if err := json.Unmarshal([]byte(rec.Workspace), &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (s *Session) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("slot = ?", activeSlot).Delete(&SessionRecord{}).Error
}

// History returns the activated workspace ids, oldest first.
func (s *Session) History(ctx context.Context) ([]string, error) {
	var recs []NavigationRecord
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.WorkspaceID)
	}
	return out, nil
}

// Reset clears the active workspace and history.
func (s *Session) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SessionRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&NavigationRecord{}).Error
	})
}

var _ domain.WorkspaceActivator = (*Session)(nil)
