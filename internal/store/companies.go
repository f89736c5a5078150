package store

import (
	"context"
	"fmt"

	"ukjobs-engine/internal/domain"
)

func ListActiveCompanies(ctx context.Context, q Querier) ([]domain.Company, error) {
	rows, err := q.QueryContext(ctx, `
SELECT id, name, career_url, active
FROM target_companies
WHERE active = 1
ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CareerURL, &c.Active); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SeedCompanies inserts the default watch list, but only into an empty
// table so user edits survive restarts.
func SeedCompanies(ctx context.Context, q Querier, defaults []domain.Company) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM target_companies;`).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	added := 0
	for _, c := range defaults {
		if c.Name == "" {
			continue
		}
		if _, err := q.ExecContext(ctx, `
INSERT OR IGNORE INTO target_companies (name, career_url, active)
VALUES (?, ?, 1);`, c.Name, c.CareerURL); err != nil {
			return added, fmt.Errorf("seed company %q: %w", c.Name, err)
		}
		added++
	}
	return added, nil
}

func SetCompanyActive(ctx context.Context, q Querier, name string, active bool) error {
	v := 0
	if active {
		v = 1
	}
	_, err := q.ExecContext(ctx,
		`UPDATE target_companies SET active = ? WHERE name = ?;`, v, name)
	return err
}
