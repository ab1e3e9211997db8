// Package auth is the 3-role user store: operators run tests, admins may
// also navigate backward and edit results, developers additionally edit
// procedures. Users live in a users.json file organised by role bucket.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tkorkmaz/prosed/internal/models"
)

// User is one entry in the users file. Operators carry an empty password
// hash and log in without a password.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"password_hash"`
	DisplayName  string      `json:"display_name"`
	EmployeeID   string      `json:"employee_id"`
	Role         models.Role `json:"-"`
	Active       bool        `json:"active"`
}

type usersDocument struct {
	Users struct {
		Admins     []User `json:"admins"`
		Operators  []User `json:"operators"`
		Developers []User `json:"developers"`
	} `json:"users"`
}

// Store holds the loaded users by role.
type Store struct {
	path       string
	Admins     []User
	Operators  []User
	Developers []User
}

// Load reads users from path. A missing or unreadable file yields the
// default users (admin/admin123, dev/dev123, passwordless operator),
// written back so the kiosk always has someone who can log in.
func Load(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", path).Msg("failed to read users file")
		}
		s.createDefaults()
		return s
	}
	var doc usersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error().Err(err).Str("path", path).Msg("corrupt users file, using defaults")
		s.createDefaults()
		return s
	}
	s.Admins = activeOnly(doc.Users.Admins, models.RoleAdmin)
	s.Operators = activeOnly(doc.Users.Operators, models.RoleOperator)
	s.Developers = activeOnly(doc.Users.Developers, models.RoleDeveloper)
	log.Info().
		Int("admins", len(s.Admins)).
		Int("operators", len(s.Operators)).
		Int("developers", len(s.Developers)).
		Msg("users loaded")
	return s
}

func activeOnly(users []User, role models.Role) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if !u.Active {
			continue
		}
		u.Role = role
		out = append(out, u)
	}
	return out
}

func (s *Store) createDefaults() {
	s.Admins = []User{{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: HashPassword("admin123"),
		DisplayName:  "Yönetici",
		EmployeeID:   "ADM001",
		Role:         models.RoleAdmin,
		Active:       true,
	}}
	s.Operators = []User{{
		ID:          uuid.NewString(),
		Username:    "operator",
		DisplayName: "Operatör",
		EmployeeID:  "OP000",
		Role:        models.RoleOperator,
		Active:      true,
	}}
	s.Developers = []User{{
		ID:           uuid.NewString(),
		Username:     "dev",
		PasswordHash: HashPassword("dev123"),
		DisplayName:  "Geliştirici",
		EmployeeID:   "DEV001",
		Role:         models.RoleDeveloper,
		Active:       true,
	}}
	if err := s.Save(); err != nil {
		log.Error().Err(err).Msg("failed to write default users file")
	}
	log.Info().Msg("created default users (1 admin, 1 operator, 1 developer)")
}

// Save writes the store back to its users file.
func (s *Store) Save() error {
	var doc usersDocument
	doc.Users.Admins = s.Admins
	doc.Users.Operators = s.Operators
	doc.Users.Developers = s.Developers
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// all returns every active user across roles.
func (s *Store) all() []User {
	out := make([]User, 0, len(s.Admins)+len(s.Operators)+len(s.Developers))
	out = append(out, s.Admins...)
	out = append(out, s.Operators...)
	out = append(out, s.Developers...)
	return out
}

// FindUser returns the user with the given username.
func (s *Store) FindUser(username string) (User, bool) {
	for _, u := range s.all() {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// Authenticate checks username and password for admin/developer logins.
func (s *Store) Authenticate(username, password string) (User, error) {
	u, ok := s.FindUser(username)
	if !ok {
		return User{}, fmt.Errorf("user %q not found", username)
	}
	if u.PasswordHash != HashPassword(password) {
		log.Warn().Str("username", username).Msg("authentication failed: wrong password")
		return User{}, fmt.Errorf("invalid password for %q", username)
	}
	log.Info().Str("username", username).Str("role", string(u.Role)).Msg("user authenticated")
	return u, nil
}

// AuthenticateByPassword performs a password-only quick login, matching
// admins and developers. Operators have no password and are excluded.
func (s *Store) AuthenticateByPassword(password string) (User, error) {
	hash := HashPassword(password)
	for _, u := range append(append([]User(nil), s.Admins...), s.Developers...) {
		if u.PasswordHash == hash {
			log.Info().Str("username", u.Username).Msg("user authenticated by password")
			return u, nil
		}
	}
	return User{}, fmt.Errorf("no matching password")
}

// OperatorLogin logs in as an operator without a password. An unknown
// username yields the first configured operator.
func (s *Store) OperatorLogin(username string) User {
	for _, u := range s.Operators {
		if u.Username == username {
			return u
		}
	}
	if len(s.Operators) > 0 {
		return s.Operators[0]
	}
	return User{
		ID:          uuid.NewString(),
		Username:    "operator",
		DisplayName: "Operatör",
		Role:        models.RoleOperator,
		Active:      true,
	}
}

// HashPassword returns the sha256 hex digest used in the users file.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
