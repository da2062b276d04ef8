package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes the stored credential. Backends are swappable:
// the file store is the default, the env store adapts a read-only
// environment variable.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// ErrNoToken is returned when no credential has been stored.
var ErrNoToken = errors.New("no token stored")

// FileStore persists the credential as a JSON record in the tool config
// directory.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed token store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

type tokenRecord struct {
	Token string `json:"token"`
}

func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	var rec tokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to parse token record: %w", err)
	}
	if rec.Token == "" {
		return "", ErrNoToken
	}
	return rec.Token, nil
}

func (s *FileStore) SetToken(token string) error {
	if err := Validate(token); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(tokenRecord{Token: token})
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// EnvStore reads the credential from an environment variable. Writes are
// rejected.
type EnvStore struct {
	Var string
}

// NewEnvStore creates a token store reading from the named environment
// variable.
func NewEnvStore(envVar string) *EnvStore {
	return &EnvStore{Var: envVar}
}

func (s *EnvStore) Token() (string, error) {
	token := os.Getenv(s.Var)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *EnvStore) SetToken(string) error {
	return fmt.Errorf("token is read from $%s, set it in the environment", s.Var)
}

func (s *EnvStore) Clear() error {
	return fmt.Errorf("token is read from $%s, unset it in the environment", s.Var)
}
