package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const adminColumns = `id, email, password_hash, created_at, last_login_at`

// AdminStore holds the hashed credentials of site administrators.
type AdminStore struct {
	gw     *db.Gateway
	tokens TokenService
}

func NewAdminStore(gw *db.Gateway, tokens TokenService) *AdminStore {
	return &AdminStore{gw: gw, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	admin := models.AdminUser{}
	err := s.gw.Get(ctx, &admin, `SELECT `+adminColumns+` FROM admin_users WHERE email = ?`, normalizeEmail(email))
	if err != nil {
		if db.IsNotFound(err) {
			return admin, ErrNotFound("Admin not found")
		}
		return admin, ErrPersistence("Internal server error", err)
	}
	return admin, nil
}

// Authenticate checks the credentials and stamps the last login time. Unknown
// emails and wrong passwords produce the same error.
func (s *AdminStore) Authenticate(ctx context.Context, email, password string) (models.AdminUser, error) {
	if normalizeEmail(email) == "" || password == "" {
		return models.AdminUser{}, ErrBadRequest("Email and password are required")
	}
	admin, err := s.FindByEmail(ctx, email)
	if err != nil {
		if StatusOf(err) == http.StatusNotFound {
			return models.AdminUser{}, ErrUnauthorized("Invalid credentials")
		}
		return models.AdminUser{}, err
	}
	if !s.tokens.VerifyPassword(password, admin.PasswordHash) {
		return models.AdminUser{}, ErrUnauthorized("Invalid credentials")
	}
	if err := s.SetLastLogin(ctx, admin.ID); err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}

func (s *AdminStore) SetLastLogin(ctx context.Context, adminID string) error {
	if _, err := s.gw.Exec(ctx, `UPDATE admin_users SET last_login_at = ? WHERE id = ?`, now(), adminID); err != nil {
		return ErrPersistence("Internal server error", err)
	}
	return nil
}

// Upsert creates the admin or replaces its password hash. Either password or
// passwordHash must be set; a plain password is hashed with argon2id.
func (s *AdminStore) Upsert(ctx context.Context, email, password, passwordHash string) (models.AdminUser, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.AdminUser{}, ErrBadRequest("A valid email is required")
	}
	hash := strings.TrimSpace(passwordHash)
	if hash == "" {
		if len(password) < 8 {
			return models.AdminUser{}, ErrBadRequest("Password must be at least 8 characters")
		}
		hashed, err := s.tokens.HashPassword(password)
		if err != nil {
			return models.AdminUser{}, ErrPersistence("Could not hash password", err)
		}
		hash = hashed
	}
	existing, err := s.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if _, err := s.gw.Exec(ctx, `UPDATE admin_users SET password_hash = ? WHERE id = ?`, hash, existing.ID); err != nil {
			return models.AdminUser{}, ErrPersistence("Could not save admin", err)
		}
		existing.PasswordHash = hash
		return existing, nil
	case StatusOf(err) != http.StatusNotFound:
		return models.AdminUser{}, err
	}
	admin := models.AdminUser{ID: uuid.NewString(), Email: email, PasswordHash: hash, CreatedAt: now()}
	_, err = s.gw.Exec(ctx, `INSERT INTO admin_users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		return models.AdminUser{}, ErrPersistence("Could not save admin", err)
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin when none with that email exists.
// An existing admin is never overwritten. It reports whether one was created.
func (s *AdminStore) EnsureAdmin(ctx context.Context, email, password, passwordHash string) (bool, error) {
	if normalizeEmail(email) == "" || (password == "" && passwordHash == "") {
		return false, nil
	}
	_, err := s.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if StatusOf(err) != http.StatusNotFound {
		return false, err
	}
	if _, err := s.Upsert(ctx, email, password, passwordHash); err != nil {
		return false, err
	}
	return true, nil
}
