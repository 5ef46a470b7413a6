package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

// PartnerRepository reads the partner roster. It never writes.
type PartnerRepository struct {
	DB *sql.DB
}

func NewPartnerRepository(db *sql.DB) *PartnerRepository {
	return &PartnerRepository{DB: db}
}

// ListPartners returns active partners in roster order. Rows without a display
// name come back with an empty Name so callers can fall back to ordinals.
func (r *PartnerRepository) ListPartners(ctx context.Context) ([]entity.Partner, error) {
	query := `
		SELECT id, COALESCE(display_name, '')
		FROM partners
		WHERE active = TRUE
		ORDER BY roster_position, id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partners: %w", err)
	}

	return partners, nil
}

func (r *PartnerRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
