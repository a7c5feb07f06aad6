package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin        = "admin"
	tokenKindSession = "access"
)

// SessionClaims are the claims carried by an admin session token.
type SessionClaims struct {
	AdminID   string
	Email     string
	ExpiresAt int64
}

// sessionJWT is the signed form of SessionClaims.
type sessionJWT struct {
	Kind  string `json:"typ"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
}

func (t TokenService) HashPassword(raw string) (string, error) {
	return defaultArgon2.hash(raw)
}

// VerifyPassword accepts argon2id hashes and, for accounts imported from
// older deployments, bcrypt hashes.
func (t TokenService) VerifyPassword(raw, hashed string) bool {
	if strings.HasPrefix(hashed, "$argon2id$") {
		return verifyArgon2id(raw, hashed)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// CreateSessionToken signs an admin session token and returns it with its
// expiry as a unix timestamp.
func (t TokenService) CreateSessionToken(adminID, email string) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.SessionTTL)
	claims := sessionJWT{
		Kind:  tokenKindSession,
		Email: email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.Issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	return signed, exp.Unix(), err
}

// VerifySession parses tokenStr and checks that it is a valid admin session.
func (t TokenService) VerifySession(tokenStr string) (SessionClaims, error) {
	unauthorized := ErrUnauthorized("Unauthorized")
	if strings.TrimSpace(tokenStr) == "" {
		return SessionClaims{}, unauthorized
	}
	var claims sessionJWT
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return SessionClaims{}, unauthorized
	}
	if claims.Kind != tokenKindSession || claims.Role != RoleAdmin {
		return SessionClaims{}, unauthorized
	}
	return SessionClaims{
		AdminID:   claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

type argon2Params struct {
	memory     uint32
	iterations uint32
	threads    uint8
	saltLen    int
	keyLen     uint32
}

var defaultArgon2 = argon2Params{memory: 64 * 1024, iterations: 3, threads: 1, saltLen: 16, keyLen: 32}

func (p argon2Params) hash(raw string) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(raw), salt, p.iterations, p.memory, p.threads, p.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func verifyArgon2id(raw, encoded string) bool {
	p, salt, want, err := parseArgon2id(encoded)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(raw), salt, p.iterations, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// parseArgon2id reads the PHC string layout
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<key>.
func parseArgon2id(encoded string) (argon2Params, []byte, []byte, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[1] != "argon2id" {
		return argon2Params{}, nil, nil, errors.New("malformed argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Params{}, nil, nil, errors.New("unsupported argon2 version")
	}
	var p argon2Params
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.threads); err != nil {
		return argon2Params{}, nil, nil, fmt.Errorf("argon2 params: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	p.saltLen = len(salt)
	p.keyLen = uint32(len(key))
	return p, salt, key, nil
}
