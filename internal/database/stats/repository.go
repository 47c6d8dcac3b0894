// Package stats computes aggregate counts over the SQLite collections.
package stats

import (
	"context"

	"gorm.io/gorm"

	"github.com/foodsphere/server/internal/entities"
)

// Supply documents are free-form: a quantity that is not a number (or a
// numeric string) counts as zero, and a missing category groups under "".
const (
	quantityExpr = "COALESCE(SUM(CAST(json_extract(body, '$.quantity') AS REAL)), 0)"
	categoryExpr = "COALESCE(CAST(json_extract(body, '$.category') AS TEXT), '')"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Overview counts every collection and sums supply quantities.
func (r *Repository) Overview(ctx context.Context) (*entities.Overview, error) {
	db := r.db.WithContext(ctx)
	overview := &entities.Overview{}

	if err := db.Model(&entities.User{}).Count(&overview.Users).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		coll entities.Collection
		dest *int64
	}{
		{entities.Supplies, &overview.Supplies},
		{entities.Volunteers, &overview.Volunteers},
		{entities.Comments, &overview.Comments},
		{entities.Testimonials, &overview.Testimonials},
	}
	for _, c := range counts {
		if err := db.Table(c.coll.Name).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := db.Table(entities.Supplies.Name).
		Select(quantityExpr).
		Scan(&overview.TotalQuantity).Error
	if err != nil {
		return nil, err
	}

	return overview, nil
}

// SuppliesByCategory groups supplies by category, ordered by category name.
func (r *Repository) SuppliesByCategory(ctx context.Context) ([]entities.CategoryTotal, error) {
	totals := make([]entities.CategoryTotal, 0)
	err := r.db.WithContext(ctx).Table(entities.Supplies.Name).
		Select(categoryExpr + " AS category, COUNT(*) AS count, " + quantityExpr + " AS total_quantity").
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	return totals, err
}
