package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"reflow/internal/diag"
	"reflow/internal/reflow"
	"reflow/internal/source"
)

// Current schema version - increment when CachedFile format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one input under one configuration.
type CacheKey [32]byte

// DiskCache хранит результаты reflow по содержимому файла и опциям.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiag is a diagnostic without its file id.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

// CachedFile is what a cache hit restores.
type CachedFile struct {
	// Schema version for safe invalidation when format changes
	Schema  uint16
	Output  []byte // encoded, ready to write
	Changed bool
	Width   int
	Stats   reflow.Stats
	Diags   []CachedDiag
}

// OpenDiskCache initializes the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// KeyFor hashes the decoded content together with everything that changes
// the output for it.
func KeyFor(f *source.File, opts reflow.Options, mode OutputMode) CacheKey {
	h := sha256.New()
	h.Write(f.Hash[:])
	h.Write([]byte{byte(diskCacheSchemaVersion), byte(f.Flags & (source.FileHadBOM | source.FileNormalizedCRLF))})
	h.Write([]byte(f.Encoding))
	h.Write([]byte{0})
	h.Write([]byte(opts.Fingerprint()))
	h.Write([]byte(mode.String()))
	var k CacheKey
	copy(k[:], h.Sum(nil))
	return k
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не складывать всё в одну папку
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachedFile) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or an entry from another schema is a
// miss, not an error.
func (c *DiskCache) Get(key CacheKey, out *CachedFile) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func cacheDiags(bag *diag.Bag) []CachedDiag {
	items := bag.Items()
	out := make([]CachedDiag, 0, len(items))
	for _, d := range items {
		out = append(out, CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return out
}

func restoreDiags(bag *diag.Bag, id source.FileID, cached []CachedDiag) {
	for _, d := range cached {
		bag.Add(diag.New(diag.Severity(d.Severity), diag.Code(d.Code),
			source.Span{File: id, Start: d.Start, End: d.End}, d.Message))
	}
}
