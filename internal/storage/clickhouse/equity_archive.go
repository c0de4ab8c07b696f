package clickhouse

import (
	"context"
	"fmt"

	"forex-dashboard/internal/domain"
	"forex-dashboard/internal/storage"
)

// EquityArchive implements storage.EquityArchive using ClickHouse.
// cmd/export batch-writes deterministic curves here so the simulated
// trajectories can be analyzed offline alongside the raw artifacts.
type EquityArchive struct {
	conn *Conn
}

// NewEquityArchive creates a new EquityArchive.
func NewEquityArchive(conn *Conn) *EquityArchive {
	return &EquityArchive{conn: conn}
}

// Compile-time interface check.
var _ storage.EquityArchive = (*EquityArchive)(nil)

// InsertCurve archives one simulated curve. Returns ErrDuplicateKey if a
// curve with the same (pair_id, seed) key already exists.
func (a *EquityArchive) InsertCurve(ctx context.Context, pairID domain.PairID, seed int64, points []domain.EquityPoint) error {
	if pairID == "" || len(points) == 0 {
		return storage.ErrInvalidInput
	}

	exists, err := a.exists(ctx, pairID, seed)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO equity_curves (
			pair_id, seed, bucket, date,
			backtest_equity, live_equity, upper_band, lower_band,
			backtest_dd, live_dd, win_streak, loss_streak
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i, p := range points {
		err = batch.Append(
			string(pairID), seed, uint32(i), p.Date,
			p.BacktestEquity, p.LiveEquity, p.UpperBand, p.LowerBand,
			p.BacktestDrawdown, p.LiveDrawdown, uint32(p.WinStreak), uint32(p.LossStreak),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetCurve retrieves an archived curve ordered by bucket ASC.
func (a *EquityArchive) GetCurve(ctx context.Context, pairID domain.PairID, seed int64) ([]domain.EquityPoint, error) {
	query := `
		SELECT date, backtest_equity, live_equity, upper_band, lower_band,
		       backtest_dd, live_dd, win_streak, loss_streak
		FROM equity_curves
		WHERE pair_id = ? AND seed = ?
		ORDER BY bucket ASC
	`

	rows, err := a.conn.Query(ctx, query, string(pairID), seed)
	if err != nil {
		return nil, fmt.Errorf("query equity curve: %w", err)
	}
	defer rows.Close()

	var points []domain.EquityPoint
	for rows.Next() {
		var p domain.EquityPoint
		var winStreak, lossStreak uint32
		err = rows.Scan(
			&p.Date, &p.BacktestEquity, &p.LiveEquity, &p.UpperBand, &p.LowerBand,
			&p.BacktestDrawdown, &p.LiveDrawdown, &winStreak, &lossStreak,
		)
		if err != nil {
			return nil, fmt.Errorf("scan equity point: %w", err)
		}
		p.WinStreak = int(winStreak)
		p.LossStreak = int(lossStreak)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equity points: %w", err)
	}

	if len(points) == 0 {
		return nil, storage.ErrNotFound
	}
	return points, nil
}

// exists checks whether any points are archived for the key.
func (a *EquityArchive) exists(ctx context.Context, pairID domain.PairID, seed int64) (bool, error) {
	query := `
		SELECT count() FROM equity_curves
		WHERE pair_id = ? AND seed = ?
	`

	var count uint64
	if err := a.conn.QueryRow(ctx, query, string(pairID), seed).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
