// ABOUTME: Credential persistence for the session store
// ABOUTME: One bearer token in a TOML file under the user config directory

package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type credFile struct {
	Token string `toml:"token"`
}

// saveToken writes the credential to path, creating the directory when
// needed. The file is user-readable only.
func saveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(credFile{Token: token}); err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}
	return nil
}

// loadToken reads the persisted credential. A missing file is an absent
// credential, not an error.
func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential file: %w", err)
	}

	var cf credFile
	if _, err := toml.Decode(string(data), &cf); err != nil {
		return "", fmt.Errorf("decode credential file %s: %w", path, err)
	}
	return cf.Token, nil
}

// deleteToken removes the persisted credential. Removing an absent file
// succeeds, which keeps logout idempotent.
func deleteToken(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
