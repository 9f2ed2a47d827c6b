package sqlite

import (
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// HistoryRepository implements ports.HistoryRepository over SQLite. The
// table is kept trimmed to ports.HistoryLimit rows on every insert.
type HistoryRepository struct {
	store *Store
}

// NewHistoryRepository creates a history repository over the store.
func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Append stores a record and trims the table to the history limit.
func (r *HistoryRepository) Append(record domain.HistoryRecord) error {
	tx, err := r.store.db.Begin()
	if err != nil {
		return domain.NewRepositoryError("append", "history", "failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(
		`INSERT INTO history (winner_name, winner_avatar, score1, score2, played_at)
		VALUES (?,?,?,?,?)`,
		record.WinnerName, record.WinnerAvatar, record.Score1, record.Score2, record.Date,
	)
	if err != nil {
		return domain.NewRepositoryError("append", "history", "failed to insert record", err)
	}

	_, err = tx.Exec(
		`DELETE FROM history WHERE id NOT IN
			(SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		ports.HistoryLimit,
	)
	if err != nil {
		return domain.NewRepositoryError("append", "history", "failed to trim history", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewRepositoryError("append", "history", "failed to commit", err)
	}
	return nil
}

// Recent returns the stored records, most recent first.
func (r *HistoryRepository) Recent() ([]domain.HistoryRecord, error) {
	rows, err := r.store.db.Query(
		`SELECT winner_name, winner_avatar, score1, score2, played_at
		FROM history ORDER BY id DESC LIMIT ?`,
		ports.HistoryLimit,
	)
	if err != nil {
		return nil, domain.NewRepositoryError("recent", "history", "failed to query history", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]domain.HistoryRecord, 0, ports.HistoryLimit)
	for rows.Next() {
		var record domain.HistoryRecord
		if err := rows.Scan(
			&record.WinnerName, &record.WinnerAvatar,
			&record.Score1, &record.Score2, &record.Date,
		); err != nil {
			return nil, domain.NewRepositoryError("recent", "history", "failed to scan record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewRepositoryError("recent", "history", "failed to iterate history", err)
	}
	return records, nil
}

// Clear removes all history records.
func (r *HistoryRepository) Clear() error {
	if _, err := r.store.db.Exec(`DELETE FROM history`); err != nil {
		return domain.NewRepositoryError("clear", "history", "failed to delete history", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.HistoryRepository = (*HistoryRepository)(nil)
