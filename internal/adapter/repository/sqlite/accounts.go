package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// AccountRepository implements ports.AccountRepository over SQLite.
//
// Thread-safety: database/sql serializes access; no extra locking needed.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over the store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

const userColumns = `id, username, password, avatar, xp, level, coins,
	inventory, badges, daily_challenge, stats, theme_id`

// Create persists a new user.
func (r *AccountRepository) Create(user *domain.User) error {
	inventory, badges, challenge, stats, err := encodeUser(user)
	if err != nil {
		return domain.NewRepositoryError("create", "accounts", "failed to encode user", err)
	}

	_, err = r.store.db.Exec(
		`INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		user.ID, user.Username, user.Password, user.Avatar,
		user.XP, user.Level, user.Coins,
		inventory, badges, challenge, stats, user.CurrentThemeID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.ErrUsernameTaken
		}
		return domain.NewRepositoryError("create", "accounts", "failed to insert user", err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *AccountRepository) FindByID(id string) (*domain.User, error) {
	row := r.store.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// FindByUsername retrieves a user by username, case-insensitively.
func (r *AccountRepository) FindByUsername(username string) (*domain.User, error) {
	row := r.store.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = ? COLLATE NOCASE`,
		strings.TrimSpace(username),
	)
	return scanUser(row)
}

// Update replaces the stored record for the user's ID.
func (r *AccountRepository) Update(user *domain.User) error {
	inventory, badges, challenge, stats, err := encodeUser(user)
	if err != nil {
		return domain.NewRepositoryError("update", "accounts", "failed to encode user", err)
	}

	result, err := r.store.db.Exec(
		`UPDATE users SET username=?, password=?, avatar=?, xp=?, level=?, coins=?,
			inventory=?, badges=?, daily_challenge=?, stats=?, theme_id=?
		WHERE id=?`,
		user.Username, user.Password, user.Avatar,
		user.XP, user.Level, user.Coins,
		inventory, badges, challenge, stats, user.CurrentThemeID,
		user.ID,
	)
	if err != nil {
		return domain.NewRepositoryError("update", "accounts", "failed to update user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewRepositoryError("update", "accounts", "failed to read result", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// All returns every stored user in creation order.
func (r *AccountRepository) All() ([]*domain.User, error) {
	rows, err := r.store.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, domain.NewRepositoryError("all", "accounts", "failed to query users", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewRepositoryError("all", "accounts", "failed to iterate users", err)
	}
	return users, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user                                domain.User
		inventory, badges, challenge, stats string
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.Avatar,
		&user.XP, &user.Level, &user.Coins,
		&inventory, &badges, &challenge, &stats, &user.CurrentThemeID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.NewRepositoryError("scan", "accounts", "failed to scan user", err)
	}

	if err := decodeJSON(inventory, &user.Inventory); err != nil {
		return nil, err
	}
	if err := decodeJSON(badges, &user.Badges); err != nil {
		return nil, err
	}
	if err := decodeJSON(challenge, &user.DailyChallenge); err != nil {
		return nil, err
	}
	if err := decodeJSON(stats, &user.Stats); err != nil {
		return nil, err
	}
	return &user, nil
}

func encodeUser(user *domain.User) (inventory, badges, challenge, stats string, err error) {
	inv, err := json.Marshal(user.Inventory)
	if err != nil {
		return "", "", "", "", err
	}
	bdg, err := json.Marshal(user.Badges)
	if err != nil {
		return "", "", "", "", err
	}
	chl, err := json.Marshal(user.DailyChallenge)
	if err != nil {
		return "", "", "", "", err
	}
	sts, err := json.Marshal(user.Stats)
	if err != nil {
		return "", "", "", "", err
	}
	return string(inv), string(bdg), string(chl), string(sts), nil
}

func decodeJSON(data string, target any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return domain.NewRepositoryError("scan", "accounts", "failed to decode column", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.AccountRepository = (*AccountRepository)(nil)
