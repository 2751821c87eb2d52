package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/RichardSen18/boardgame-store/internal/model"
	"github.com/RichardSen18/boardgame-store/internal/utils"
)

// UserRepo provides user CRUD and credential verification. Roles are plain
// strings stored on the row; authorization decisions happen in the HTTP
// layer, never here.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, name, role, password_hash, created_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var hash sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Role, &hash, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	if hash.Valid {
		u.PasswordHash = hash.String
	}
	return u, nil
}

// normalizeRole maps arbitrary input onto a known role, defaulting to
// CLIENT.
func normalizeRole(role string) string {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case model.RoleSeller:
		return model.RoleSeller
	case model.RoleAdmin:
		return model.RoleAdmin
	default:
		return model.RoleClient
	}
}

// Create inserts a user, hashing the password when one is supplied. A user
// without a password can never authenticate but can still appear as a
// buyer or participant. ErrNameExists is returned on a duplicate name.
func (r *UserRepo) Create(ctx context.Context, name, role, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	role = normalizeRole(role)
	var hash any
	if password != "" {
		hash = utils.HashPassword(password)
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, role, password_hash) VALUES (?,?,?)", name, role, hash)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrNameExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a user by id. ErrUserNotFound is returned when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByName fetches a user by their unique name.
func (r *UserRepo) GetByName(ctx context.Context, name string) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE name = ?", strings.TrimSpace(name))
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Authenticate verifies a name/password pair. It returns the user on a
// match and ErrUserNotFound both for an unknown name and for a wrong
// password, so callers cannot probe which of the two failed. Users without
// a stored hash never match.
func (r *UserRepo) Authenticate(ctx context.Context, name, password string) (model.User, error) {
	u, err := r.GetByName(ctx, name)
	if err != nil {
		return model.User{}, err
	}
	if u.PasswordHash == "" || !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// List returns all users ordered by name ascending.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites name and role, and the password when a new one is given.
// An empty password leaves the stored hash untouched.
func (r *UserRepo) Update(ctx context.Context, id uint64, name, role, password string) error {
	name = strings.TrimSpace(name)
	role = normalizeRole(role)
	var res sql.Result
	var err error
	if password != "" {
		res, err = r.db.ExecContext(ctx,
			"UPDATE users SET name = ?, role = ?, password_hash = ? WHERE id = ?",
			name, role, utils.HashPassword(password), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE users SET name = ?, role = ? WHERE id = ?", name, role, id)
	}
	if err != nil {
		if isDuplicate(err) {
			return ErrNameExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a user. Users referenced by sales, sessions or rosters are
// protected by RESTRICT foreign keys; ErrConflict is returned so callers
// can explain that historical records exist.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		if isRestricted(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
