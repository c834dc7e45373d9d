package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/voxelcarve/internal/carve"
	"github.com/banshee-data/voxelcarve/internal/geom"
)

// CarveRun is one catalogue row: the configuration and outcome of a single
// reconstruction run.
type CarveRun struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Bounds        geom.Bounds
	Resolution    int
	Views         int
	Threshold     int
	GridPoints    int
	Survivors     int
	MeanOccupancy float64
	MaxOccupancy  int
	ArtifactPath  string
}

// RecordRun inserts a run row, assigning a fresh UUID when the ID is empty,
// and returns the run ID.
func (db *DB) RecordRun(run *CarveRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := db.Exec(
		`INSERT INTO carve_runs (
			run_id, started_at, finished_at,
			x_min, x_max, y_min, y_max, z_min, z_max,
			resolution, views, threshold, grid_points,
			survivors, mean_occupancy, max_occupancy, artifact_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.FinishedAt,
		run.Bounds.XMin, run.Bounds.XMax,
		run.Bounds.YMin, run.Bounds.YMax,
		run.Bounds.ZMin, run.Bounds.ZMax,
		run.Resolution, run.Views, run.Threshold, run.GridPoints,
		run.Survivors, run.MeanOccupancy, run.MaxOccupancy, run.ArtifactPath,
	)
	if err != nil {
		return "", fmt.Errorf("db: record run: %w", err)
	}
	return run.ID, nil
}

// RecordViewStats inserts the per-view projection counters for a run, in
// view order.
func (db *DB) RecordViewStats(runID string, views []carve.ViewStats) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("db: begin view stats: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO view_stats (run_id, view_index, projected, hits) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("db: prepare view stats: %w", err)
	}
	defer stmt.Close()

	for i, vs := range views {
		if _, err := stmt.Exec(runID, i, vs.Projected, vs.Hits); err != nil {
			tx.Rollback()
			return fmt.Errorf("db: record view %d stats: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit view stats: %w", err)
	}
	return nil
}

// GetRun fetches one catalogue row by ID.
func (db *DB) GetRun(id string) (*CarveRun, error) {
	run := &CarveRun{}
	err := db.QueryRow(
		`SELECT run_id, started_at, finished_at,
			x_min, x_max, y_min, y_max, z_min, z_max,
			resolution, views, threshold, grid_points,
			survivors, mean_occupancy, max_occupancy, artifact_path
		FROM carve_runs WHERE run_id = ?`, id,
	).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.Bounds.XMin, &run.Bounds.XMax,
		&run.Bounds.YMin, &run.Bounds.YMax,
		&run.Bounds.ZMin, &run.Bounds.ZMax,
		&run.Resolution, &run.Views, &run.Threshold, &run.GridPoints,
		&run.Survivors, &run.MeanOccupancy, &run.MaxOccupancy, &run.ArtifactPath,
	)
	if err != nil {
		return nil, fmt.Errorf("db: get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]CarveRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT run_id, started_at, finished_at,
			x_min, x_max, y_min, y_max, z_min, z_max,
			resolution, views, threshold, grid_points,
			survivors, mean_occupancy, max_occupancy, artifact_path
		FROM carve_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("db: list runs: %w", err)
	}
	defer rows.Close()

	var runs []CarveRun
	for rows.Next() {
		var run CarveRun
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Bounds.XMin, &run.Bounds.XMax,
			&run.Bounds.YMin, &run.Bounds.YMax,
			&run.Bounds.ZMin, &run.Bounds.ZMax,
			&run.Resolution, &run.Views, &run.Threshold, &run.GridPoints,
			&run.Survivors, &run.MeanOccupancy, &run.MaxOccupancy, &run.ArtifactPath,
		); err != nil {
			return nil, fmt.Errorf("db: scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ViewStatsForRun returns the per-view counters recorded for a run, in view
// order.
func (db *DB) ViewStatsForRun(runID string) ([]carve.ViewStats, error) {
	rows, err := db.Query(
		`SELECT projected, hits FROM view_stats WHERE run_id = ? ORDER BY view_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("db: view stats for %s: %w", runID, err)
	}
	defer rows.Close()

	var stats []carve.ViewStats
	for rows.Next() {
		var vs carve.ViewStats
		if err := rows.Scan(&vs.Projected, &vs.Hits); err != nil {
			return nil, fmt.Errorf("db: scan view stats: %w", err)
		}
		stats = append(stats, vs)
	}
	return stats, rows.Err()
}
