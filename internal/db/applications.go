package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/careerconnect/internal/types"
)

// PastApplications retrieves a candidate's application history in
// submission order.
func (db *DB) PastApplications(ctx context.Context, userID uuid.UUID) ([]types.PastApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(job_title, ''), COALESCE(company_name, ''), COALESCE(category, '')
		 FROM applications WHERE applicant_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.PastApplication
	for rows.Next() {
		var app types.PastApplication
		if err := rows.Scan(&app.JobTitle, &app.CompanyName, &app.Category); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}
