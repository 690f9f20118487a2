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

// WorkspaceCache is a GORM-backed implementation of domain.WorkspaceCache.
type WorkspaceCache struct {
	db *gorm.DB
}

func NewWorkspaceCache(db *gorm.DB) *WorkspaceCache {
	return &WorkspaceCache{db: db}
}

func toRecord(ws *model.Workspace) (*WorkspaceRecord, error) {
	rec := &WorkspaceRecord{ID: ws.ID, Creator: ws.Creator, Name: ws.Name}
	if len(ws.Extra) > 0 {
		b, err := json.Marshal(ws.Extra)
		if err != nil {
			return nil, err
		}
		rec.Extra = string(b)
	}
	return rec, nil
}

func toModel(r *WorkspaceRecord) (*model.Workspace, error) {
	ws := &model.Workspace{ID: r.ID, Creator: r.Creator, Name: r.Name}
	if r.Extra != "" {
		if err := json.Unmarshal([]byte(r.Extra), &ws.Extra); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (c *WorkspaceCache) Put(ctx context.Context, ws *model.Workspace) error {
	if ws == nil || ws.ID == "" || ws.Creator == "" || ws.Name == "" {
		return model.ErrWorkspaceInvalid
	}
	rec, err := toRecord(ws)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing WorkspaceRecord
		err := tx.First(&existing, "id = ?", ws.ID).Error
		switch {
		case err == nil && existing.Creator == ws.Creator && existing.Name == ws.Name:
			// Same identity: refresh in place and keep its position.
			return tx.Model(&WorkspaceRecord{}).Where("seq = ?", existing.Seq).
				Updates(map[string]any{"extra": rec.Extra, "updated_at": now}).Error
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := tx.Where("id = ? OR (creator = ? AND name = ?)", ws.ID, ws.Creator, ws.Name).
			Delete(&WorkspaceRecord{}).Error; err != nil {
			return err
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now
		return tx.Create(rec).Error
	})
}

func (c *WorkspaceCache) Get(ctx context.Context, id string) (*model.Workspace, error) {
	return c.first(ctx, "id = ?", id)
}

func (c *WorkspaceCache) Lookup(ctx context.Context, owner, name string) (*model.Workspace, error) {
	return c.first(ctx, "creator = ? AND name = ?", owner, name)
}

func (c *WorkspaceCache) first(ctx context.Context, query string, args ...any) (*model.Workspace, error) {
	var rec WorkspaceRecord
	if err := c.db.WithContext(ctx).Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return toModel(&rec)
}

func (c *WorkspaceCache) List(ctx context.Context, owner string) ([]*model.Workspace, error) {
	var recs []WorkspaceRecord
	if err := c.db.WithContext(ctx).Where("creator = ?", owner).Order("seq ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Workspace, 0, len(recs))
	for i := range recs {
		ws, err := toModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, nil
}

func (c *WorkspaceCache) Delete(ctx context.Context, ws *model.Workspace) error {
	if ws == nil {
		return model.ErrWorkspaceInvalid
	}
	res := c.db.WithContext(ctx).
		Where("id = ? OR (creator = ? AND name = ?)", ws.ID, ws.Creator, ws.Name).
		Delete(&WorkspaceRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrWorkspaceNotFound
	}
	return nil
}

// Purge drops every cached workspace.
func (c *WorkspaceCache) Purge(ctx context.Context) error {
	return c.db.WithContext(ctx).Where("1 = 1").Delete(&WorkspaceRecord{}).Error
}

// Ensure interface satisfaction.
var _ domain.WorkspaceCache = (*WorkspaceCache)(nil)
