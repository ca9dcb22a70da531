package session

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Keyring persists the three session values together. Implementations must
// treat an absent session as empty values, not an error.
type Keyring interface {
	Read() (token, username, accountType string, err error)
	Write(token, username, accountType string) error
	Clear() error
}

type persistedSession struct {
	Token       string `yaml:"token"`
	Username    string `yaml:"username"`
	AccountType string `yaml:"account_type"`
}

// FileKeyring stores the session as a YAML file, readable only by the owner.
// Protection beyond file permissions is the host platform's concern.
type FileKeyring struct {
	path string
}

func NewFileKeyring(path string) *FileKeyring {
	return &FileKeyring{path: path}
}

func (k *FileKeyring) Read() (string, string, string, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", "", nil
		}
		return "", "", "", err
	}

	var p persistedSession
	if err := yaml.Unmarshal(data, &p); err != nil {
		return "", "", "", err
	}
	return p.Token, p.Username, p.AccountType, nil
}

func (k *FileKeyring) Write(token, username, accountType string) error {
	data, err := yaml.Marshal(persistedSession{
		Token:       token,
		Username:    username,
		AccountType: accountType,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(k.path, data, 0o600)
}

func (k *FileKeyring) Clear() error {
	err := os.Remove(k.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
