// Package store persists the user directory that backs release-mode lookups.
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/navigation/pkg/profile"
)

// ErrNotFound is returned when no record exists for a login.
var ErrNotFound = errors.New("store: user not found")

// Persistence defines the persistence contract for user records. Logins are
// matched case-insensitively.
type Persistence interface {
	Get(ctx context.Context, login string) (profile.User, error)
	List(ctx context.Context) []profile.User
	Put(u profile.User) error
	Delete(login string) error
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

const usersBucket = "users"

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) read(key string) (profile.User, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return profile.User{}, ErrNotFound
		}
		return profile.User{}, err
	}
	var u profile.User
	if err := json.Unmarshal(val, &u); err != nil {
		return profile.User{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if u.Login == "" {
		u.Login = loginFromFileName(keyToPathTransform(key).FileName)
	}
	return u, nil
}

func (p *persistence) Get(_ context.Context, login string) (profile.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return profile.User{}, ErrNotFound
	}
	return p.read(toKey(login))
}

func (p *persistence) List(ctx context.Context) []profile.User {
	all := make([]profile.User, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) == 0 || pk.Path[0] != usersBucket {
			continue
		}
		u, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, u)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Login) < strings.ToLower(all[j].Login)
	})
	return all
}

func (p *persistence) Put(u profile.User) error {
	u.Login = strings.TrimSpace(u.Login)
	if u.Login == "" {
		return errors.New("store: login required")
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(u.Login), data); err != nil {
		return fmt.Errorf("store: write %s: %w", u.Login, err)
	}
	return nil
}

func (p *persistence) Delete(login string) error {
	key := toKey(strings.TrimSpace(login))
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

func (p *persistence) usersDir() string {
	return filepath.Join(p.basePath, usersBucket)
}

// keyToPathTransform splits `bucket-file` at the first dash; the encoded
// file name may itself contain dashes.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) < 2 {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `users-<base64url(lowercase login)>`.
func toKey(login string) string {
	return fmt.Sprintf("%s-%s", usersBucket, fileNameForLogin(login))
}

func fileNameForLogin(login string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.ToLower(login)))
}

func loginFromFileName(name string) string {
	login, err := base64.RawURLEncoding.DecodeString(name)
	if err != nil {
		return ""
	}
	return string(login)
}
