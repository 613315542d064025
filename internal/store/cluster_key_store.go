package store

import (
	"path/filepath"
	"sync"

	json "github.com/nikkolasg/hexjson"

	"contactpsi/internal/domain"
)

const clusterKeyFilename = "cluster_keys.json.enc"

// ClusterKeyFileStore keeps cluster keys encrypted under a fixed passphrase.
type ClusterKeyFileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewClusterKeyFileStore returns a ClusterKeyFileStore rooted at dir.
func NewClusterKeyFileStore(dir, passphrase string) *ClusterKeyFileStore {
	return &ClusterKeyFileStore{dir: dir, passphrase: passphrase}
}

// SaveClusterKeys writes the encrypted keys to disk.
func (s *ClusterKeyFileStore) SaveClusterKeys(keys domain.ClusterKeys) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	ct, err := encrypt(s.passphrase, "cluster", raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, clusterKeyFilename), ct, 0o600)
}

// LoadClusterKeys reads the keys. ok is false when none were saved yet.
func (s *ClusterKeyFileStore) LoadClusterKeys() (domain.ClusterKeys, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, clusterKeyFilename))
	if err != nil || b == nil {
		return domain.ClusterKeys{}, false, err
	}
	pt, err := decrypt(s.passphrase, "cluster", b)
	if err != nil {
		return domain.ClusterKeys{}, false, err
	}
	var keys domain.ClusterKeys
	if err := json.Unmarshal(pt, &keys); err != nil {
		return domain.ClusterKeys{}, false, err
	}
	return keys, true, nil
}

var _ domain.ClusterKeyStore = (*ClusterKeyFileStore)(nil)
