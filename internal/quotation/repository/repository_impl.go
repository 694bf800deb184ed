// Package repository is the gorm persistence layer for quotations.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, q *domain.Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Quotation, error) {
	var q domain.Quotation
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByIDForUpdate locks the row for the rest of the transaction. SQLite
// serializes writers on its own and rejects FOR UPDATE, so the clause is
// applied on the server dialects only.
func (r *repo) FindByIDForUpdate(ctx context.Context, id string) (*domain.Quotation, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var q domain.Quotation
	err := tx.First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Quotation, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Quotation{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(id) LIKE ? OR LOWER(developer_name) LIKE ? OR LOWER(project_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DeveloperType != "" {
		tx = tx.Where("developer_type = ?", filter.DeveloperType)
	}
	if filter.CreatedBy != "" {
		tx = tx.Where("created_by = ?", filter.CreatedBy)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var items []domain.Quotation
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, q *domain.Quotation) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Quotation{}, "id = ?", id).Error
}

// Transaction runs fn against a repository bound to a single database
// transaction.
func (r *repo) Transaction(ctx context.Context, fn func(ctx context.Context, repo domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &repo{db: tx})
	})
}
