package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

var (
	// ErrUsernameTaken is returned when registering a username that an
	// existing record already uses, compared case-insensitively.
	ErrUsernameTaken = errors.New("account: username already taken")

	// ErrInvalidCredentials is returned when login finds no matching
	// username/password pair.
	ErrInvalidCredentials = errors.New("account: invalid username or password")
)

// ValidationError reports malformed registration input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("account: invalid %s: %s", e.Field, e.Reason)
}

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9.]+@[a-zA-Z0-9]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9.]+$`)
)

// AccountService manages the durable list of registered credential
// records. Records are created by registration and never mutated or
// deleted afterwards.
type AccountService struct {
	store  database.Store
	logger *log.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(store database.Store, logger *log.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// ValidateUsername checks a username (or email) against the registration
// rules: letters, digits and dots, 3-20 characters, or a plain email of
// at most 254 characters.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}

	if strings.Contains(username, "@") {
		if len(username) > 254 {
			return &ValidationError{Field: "username", Reason: "email too long"}
		}
		if !emailPattern.MatchString(username) {
			return &ValidationError{Field: "username", Reason: "malformed email address"}
		}
		return nil
	}

	if !usernamePattern.MatchString(username) {
		return &ValidationError{Field: "username", Reason: "only letters, digits and dots allowed"}
	}
	if len(username) < 3 {
		return &ValidationError{Field: "username", Reason: "must be at least 3 characters"}
	}
	if len(username) > 20 {
		return &ValidationError{Field: "username", Reason: "must be at most 20 characters"}
	}
	return nil
}

// ValidatePassword checks a password against the registration rules.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	return nil
}

// Register validates and appends a new credential record. It does not log
// the user in.
func (s *AccountService) Register(username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	accounts, err := s.loadAccounts()
	if err != nil {
		return err
	}

	for _, account := range accounts {
		if strings.EqualFold(account.Username, username) {
			return ErrUsernameTaken
		}
	}

	accounts = append(accounts, models.Credential{Username: username, Password: password})
	if err := s.store.Put(database.GlobalKey(database.BucketAccounts), accounts); err != nil {
		return fmt.Errorf("failed to persist accounts: %w", err)
	}

	if s.logger != nil {
		s.logger.Printf("Registered account %q (%d total)", username, len(accounts))
	}
	return nil
}

// Authenticate checks a username/password pair against the stored
// records: username case-insensitively, password exactly. On success it
// returns the canonical username as registered.
func (s *AccountService) Authenticate(username, password string) (string, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return "", err
	}

	for _, account := range accounts {
		if strings.EqualFold(account.Username, username) && account.Password == password {
			return account.Username, nil
		}
	}
	return "", ErrInvalidCredentials
}

// loadAccounts reads the credential list; an absent record means no one
// has registered yet.
func (s *AccountService) loadAccounts() ([]models.Credential, error) {
	var accounts []models.Credential
	err := s.store.Get(database.GlobalKey(database.BucketAccounts), &accounts)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}
