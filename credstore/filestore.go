package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/bandungjournal/bandung-client/users"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps credentials in a directory with one file per key,
// mode 0600, each replaced via write-to-temp-then-rename.
type FileStore struct {
	dir    string
	sealer *sealer
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithPassphrase enables at-rest encryption of both values using a key
// derived from the passphrase. An empty passphrase leaves the store in
// plaintext mode.
func WithPassphrase(passphrase string) FileStoreOption {
	return func(fs *FileStore) {
		if passphrase != "" {
			fs.sealer = newSealer(passphrase)
		}
	}
}

// NewFileStore creates the credential directory if needed and returns a
// store bound to it.
func NewFileStore(dir string, options ...FileStoreOption) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("[NewFileStore] credentials directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("[NewFileStore] failed to create %q: %w", dir, err)
	}

	fs := &FileStore{dir: dir}
	for _, opt := range options {
		opt(fs)
	}
	return fs, nil
}

func (fs *FileStore) Save(user *users.User, accessToken string) error {
	if user == nil {
		return fmt.Errorf("[FileStore Save] user is required")
	}
	if accessToken == "" {
		return fmt.Errorf("[FileStore Save] access token is required")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("[FileStore Save] failed to encode user: %w", err)
	}
	if err := fs.write(userKey, raw); err != nil {
		return err
	}
	return fs.write(tokenKey, []byte(accessToken))
}

func (fs *FileStore) SaveToken(accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("[FileStore SaveToken] access token is required")
	}
	return fs.write(tokenKey, []byte(accessToken))
}

func (fs *FileStore) Load() (*users.User, string) {
	token := fs.Token()
	if token == "" {
		return nil, ""
	}

	raw, err := fs.read(userKey)
	if err != nil {
		return nil, ""
	}

	var user users.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt user record reads as logged-out, never as an error.
		log.Debug().Err(err).Msg("credstore: stored user record is not valid JSON")
		return nil, ""
	}
	return &user, token
}

func (fs *FileStore) Token() string {
	raw, err := fs.read(tokenKey)
	if err != nil {
		return ""
	}
	return string(raw)
}

func (fs *FileStore) Clear() {
	for _, key := range []string{tokenKey, userKey} {
		if err := os.Remove(filepath.Join(fs.dir, key)); err != nil && !os.IsNotExist(err) {
			log.Debug().Err(err).Str("key", key).Msg("credstore: failed to remove credential file")
		}
	}
}

func (fs *FileStore) write(key string, value []byte) error {
	if fs.sealer != nil {
		sealed, err := fs.sealer.seal(value)
		if err != nil {
			return fmt.Errorf("[FileStore write] failed to seal %q: %w", key, err)
		}
		value = sealed
	}

	path := filepath.Join(fs.dir, key)
	tmp, err := os.CreateTemp(fs.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("[FileStore write] failed to create temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore write] failed to chmod %q: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore write] failed to write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore write] failed to close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore write] failed to replace %q: %w", key, err)
	}
	return nil
}

func (fs *FileStore) read(key string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(fs.dir, key))
	if err != nil {
		return nil, err
	}
	if fs.sealer != nil {
		plain, err := fs.sealer.open(raw)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("credstore: stored credential cannot be unsealed")
			return nil, err
		}
		return plain, nil
	}
	return raw, nil
}
