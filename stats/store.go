package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"music-bot-go/logcolors"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	statsBucketName = "stats"
	statsKey        = "bot_stats"
)

// Store persists the counters across restarts. The session cache itself is
// deliberately memory-only; only aggregate numbers survive a restart.
type Store struct {
	db       *bolt.DB
	dbPath   string
	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// PersistedStats represents the stats data that gets persisted to disk
type PersistedStats struct {
	SearchRequests   int64 `json:"search_requests"`
	LinkFetches      int64 `json:"link_fetches"`
	PagesServed      int64 `json:"pages_served"`
	CallbacksTotal   int64 `json:"callbacks_total"`
	CacheHits        int64 `json:"cache_hits"`
	CacheMisses      int64 `json:"cache_misses"`
	SessionsExpired  int64 `json:"sessions_expired"`
	DownloadsStarted int64 `json:"downloads_started"`
	DownloadsOK      int64 `json:"downloads_succeeded"`
	DownloadsFailed  int64 `json:"downloads_failed"`
	InternalErrors   int64 `json:"internal_errors"`
	RateLimitDropped int64 `json:"rate_limit_dropped"`

	LastSaved    time.Time `json:"last_saved"`
	FirstStarted time.Time `json:"first_started"`
}

// NewStore creates a new stats store with a dedicated BoltDB file
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %v", err)
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(statsBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create stats bucket: %v", err)
	}

	store := &Store{
		db:       db,
		dbPath:   dbPath,
		stopChan: make(chan struct{}),
	}

	log.Infof("%s Stats store initialized at %s", logcolors.LogStats, dbPath)
	return store, nil
}

// Load reads persisted stats from disk and applies them to the global stats
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var persisted PersistedStats
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statsBucketName))
		if b == nil {
			return nil
		}
		data := b.Get([]byte(statsKey))
		if data == nil {
			return nil // No persisted stats yet
		}
		return json.Unmarshal(data, &persisted)
	})
	if err != nil {
		return fmt.Errorf("failed to load stats: %v", err)
	}

	stats := Get()
	stats.SearchRequests.Store(persisted.SearchRequests)
	stats.LinkFetches.Store(persisted.LinkFetches)
	stats.PagesServed.Store(persisted.PagesServed)
	stats.CallbacksTotal.Store(persisted.CallbacksTotal)
	stats.CacheHits.Store(persisted.CacheHits)
	stats.CacheMisses.Store(persisted.CacheMisses)
	stats.SessionsExpired.Store(persisted.SessionsExpired)
	stats.DownloadsStarted.Store(persisted.DownloadsStarted)
	stats.DownloadsSucceeded.Store(persisted.DownloadsOK)
	stats.DownloadsFailed.Store(persisted.DownloadsFailed)
	stats.InternalErrors.Store(persisted.InternalErrors)
	stats.RateLimitDropped.Store(persisted.RateLimitDropped)

	if !persisted.FirstStarted.IsZero() {
		log.Infof("%s Loaded stats (first started %s, last saved %s)",
			logcolors.LogStats,
			persisted.FirstStarted.Format(time.RFC3339),
			persisted.LastSaved.Format(time.RFC3339))
	}
	return nil
}

// Save writes the current global stats to disk
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Get()
	persisted := PersistedStats{
		SearchRequests:   stats.SearchRequests.Load(),
		LinkFetches:      stats.LinkFetches.Load(),
		PagesServed:      stats.PagesServed.Load(),
		CallbacksTotal:   stats.CallbacksTotal.Load(),
		CacheHits:        stats.CacheHits.Load(),
		CacheMisses:      stats.CacheMisses.Load(),
		SessionsExpired:  stats.SessionsExpired.Load(),
		DownloadsStarted: stats.DownloadsStarted.Load(),
		DownloadsOK:      stats.DownloadsSucceeded.Load(),
		DownloadsFailed:  stats.DownloadsFailed.Load(),
		InternalErrors:   stats.InternalErrors.Load(),
		RateLimitDropped: stats.RateLimitDropped.Load(),
		LastSaved:        time.Now(),
		FirstStarted:     stats.StartTime,
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statsBucketName))
		if b == nil {
			return fmt.Errorf("stats bucket not found")
		}
		return b.Put([]byte(statsKey), data)
	})
}

// StartPeriodicSave saves stats on the given interval until Close is called
func (s *Store) StartPeriodicSave(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Save(); err != nil {
					log.Warnf("%s Periodic save failed: %v", logcolors.LogStats, err)
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Close saves a final snapshot and closes the database
func (s *Store) Close() error {
	close(s.stopChan)
	s.wg.Wait()

	if err := s.Save(); err != nil {
		log.Warnf("%s Final save failed: %v", logcolors.LogStats, err)
	}
	return s.db.Close()
}
