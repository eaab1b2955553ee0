package db

import (
	"context"
	"fmt"

	"github.com/jonathan/careerconnect/internal/types"
)

// catalogLimit bounds how many active postings one recommendation request
// scores against.
const catalogLimit = 200

// ActiveJobs retrieves up to 200 non-expired postings in a stable order so
// equal-score ties rank deterministically across requests.
func (db *DB) ActiveJobs(ctx context.Context) ([]types.JobRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, COALESCE(category, ''), COALESCE(description, ''),
		        company_name, COALESCE(city, ''), COALESCE(country, ''),
		        COALESCE(tech_stack, '[]'::jsonb)
		 FROM jobs WHERE NOT expired
		 ORDER BY posted_at, id
		 LIMIT $1`,
		catalogLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRecord
	for rows.Next() {
		var (
			job   types.InternalJob
			stack StringArray
		)
		if err := rows.Scan(&job.PostingID, &job.RoleTitle, &job.JobCategory, &job.Body,
			&job.CompanyName, &job.City, &job.Country, &stack); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.Stack = stack
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
