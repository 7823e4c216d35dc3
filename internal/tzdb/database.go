package tzdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-temporal/temporal/internal/tzcompile"
	"github.com/go-temporal/temporal/internal/tzdata"
)

// defaultSourceDirs lists the well-known locations of the IANA tzdata
// *textual* source files (not compiled TZif) this module compiles zones
// from directly, rather than delegating to the operating system's
// compiled zoneinfo database the way go-chrono's zones.go does via
// time.LoadLocation/time.LoadLocationFromTZData.
var defaultSourceDirs = []string{
	"/usr/share/zoneinfo/tzdata.zi",
	"/usr/share/zoneinfo-src",
	"/usr/share/tzdata",
}

// sourceFileNames are the individual tzdata source files concatenated
// when a source directory (rather than a single combined .zi file) is
// configured, in the IANA distribution's conventional order.
var sourceFileNames = []string{
	"africa", "antarctica", "asia", "australasia",
	"europe", "northamerica", "southamerica",
	"etcetera", "backward",
}

// Database is the shared, concurrency-safe zone database of spec.md §5:
// it parses tzdata source text once and lazily compiles (and caches) a
// Resolver per zone name on first use.
//
// Grounded on go-chrono/zones.go's sync.Once-guarded package-level
// Zones/loadZones: that function eagerly walks a zoneinfo directory once
// and caches the whole result. This module instead compiles per zone
// on demand (most programs touch a handful of zones, and compilation
// isn't free), so a single sync.Once becomes a sync.RWMutex-guarded map
// keyed by canonical zone name.
type Database struct {
	mu      sync.RWMutex
	source  *tzdata.File
	horizon int64
	cache   map[string]*Resolver
}

// NewDatabase builds a Database over already-parsed tzdata source. A
// horizon of 0 uses tzcompile.DefaultHorizon.
func NewDatabase(source *tzdata.File, horizon int64) *Database {
	if horizon == 0 {
		horizon = tzcompile.DefaultHorizon
	}
	return &Database{source: source, horizon: horizon, cache: map[string]*Resolver{}}
}

// LoadSource parses the IANA tzdata text source found at path, which may
// be a single combined file (e.g. "tzdata.zi") or a directory containing
// the conventional per-region source files.
func LoadSource(path string) (*tzdata.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tzdb: %w", err)
	}
	if !info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("tzdb: %w", err)
		}
		defer f.Close()
		return tzdata.Parse(f)
	}

	var readers []*os.File
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()
	file := &tzdata.File{Zones: map[string][]tzdata.ZoneEntry{}}
	for _, name := range sourceFileNames {
		f, err := os.Open(filepath.Join(path, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("tzdb: %w", err)
		}
		defer f.Close()
		part, err := tzdata.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("tzdb: parsing %s: %w", name, err)
		}
		mergeInto(file, part)
	}
	return file, nil
}

func mergeInto(dst, src *tzdata.File) {
	dst.Rules = append(dst.Rules, src.Rules...)
	dst.Links = append(dst.Links, src.Links...)
	for _, name := range src.ZoneOrder {
		if _, ok := dst.Zones[name]; !ok {
			dst.ZoneOrder = append(dst.ZoneOrder, name)
		}
		dst.Zones[name] = append(dst.Zones[name], src.Zones[name]...)
	}
}

// Resolver returns the (lazily compiled, cached) Resolver for name,
// following Link aliases to their canonical zone.
func (db *Database) Resolver(name string) (*Resolver, error) {
	canonical := db.canonicalName(name)

	db.mu.RLock()
	r, ok := db.cache[canonical]
	db.mu.RUnlock()
	if ok {
		return r, nil
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if r, ok := db.cache[canonical]; ok {
		return r, nil
	}
	z, err := tzcompile.Compile(db.source, canonical, db.horizon)
	if err != nil {
		return nil, fmt.Errorf("tzdb: %w", err)
	}
	r = NewResolver(z)
	db.cache[canonical] = r
	return r, nil
}

func (db *Database) canonicalName(name string) string {
	if _, ok := db.source.Zones[name]; ok {
		return name
	}
	for _, l := range db.source.Links {
		if l.Alias == name {
			return l.Target
		}
	}
	return name
}
