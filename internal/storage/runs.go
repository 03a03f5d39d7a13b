package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"dmca/internal/errors"
)

// RunRecord is one persisted clustering run.
type RunRecord struct {
	ID              string
	CreatedAt       time.Time
	SummaryCount    int
	CommitCount     int
	DefinitionCount int
	ClusterCount    int
	EntropyGain     float64
	VarianceGain    float64
	Silhouette      float64
	AvgClusterSize  float64
	Fingerprint     string
}

// RunCluster is one cluster row belonging to a run, in build order.
type RunCluster struct {
	Type        string
	Radius      float64
	MemberCount int
}

// SaveRun persists a run and its cluster rows in one transaction. A missing
// ID gets a fresh UUID and a zero CreatedAt gets the current time; both are
// written back to the record.
func (db *DB) SaveRun(run *RunRecord, clusters []RunCluster) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	err := db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (
				id, created_at, summary_count, commit_count,
				definition_count, cluster_count,
				entropy_gain, variance_gain, silhouette, avg_cluster_size,
				fingerprint
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			run.CreatedAt.Format(time.RFC3339Nano),
			run.SummaryCount,
			run.CommitCount,
			run.DefinitionCount,
			run.ClusterCount,
			run.EntropyGain,
			run.VarianceGain,
			run.Silhouette,
			run.AvgClusterSize,
			run.Fingerprint,
		)
		if err != nil {
			return err
		}

		for position, c := range clusters {
			_, err := tx.Exec(`
				INSERT INTO run_clusters (run_id, position, type, radius, member_count)
				VALUES (?, ?, ?, ?, ?)
			`, run.ID, position, c.Type, c.Radius, c.MemberCount)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(errors.StorageFailure, "failed to save run", err)
	}

	db.logger.Debug("run saved", map[string]interface{}{
		"run_id":   run.ID,
		"clusters": len(clusters),
	})
	return nil
}

// ListRuns returns persisted runs, newest first. A limit of zero or less
// returns every run.
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT id, created_at, summary_count, commit_count,
			definition_count, cluster_count,
			entropy_gain, variance_gain, silhouette, avg_cluster_size,
			fingerprint
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to list runs", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var createdAt string
		if err := rows.Scan(
			&run.ID,
			&createdAt,
			&run.SummaryCount,
			&run.CommitCount,
			&run.DefinitionCount,
			&run.ClusterCount,
			&run.EntropyGain,
			&run.VarianceGain,
			&run.Silhouette,
			&run.AvgClusterSize,
			&run.Fingerprint,
		); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan run", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to read runs", err)
	}
	return runs, nil
}

// RunClusters returns the cluster rows of one run in build order.
func (db *DB) RunClusters(runID string) ([]RunCluster, error) {
	rows, err := db.Query(`
		SELECT type, radius, member_count
		FROM run_clusters
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to list run clusters", err)
	}
	defer rows.Close()

	var clusters []RunCluster
	for rows.Next() {
		var c RunCluster
		if err := rows.Scan(&c.Type, &c.Radius, &c.MemberCount); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan run cluster", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to read run clusters", err)
	}
	return clusters, nil
}
