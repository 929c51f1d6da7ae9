package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/singleflight"

	"shivuk/internal/domain"
)

// Spec identifies a requested font: family name, weight and pixel size.
type Spec struct {
	Family string
	Bold   bool
	SizePx int
}

// Handle is an opened, size-specific face. Handles are immutable after
// creation and shared between callers via the resolver cache.
type Handle struct {
	Face   font.Face
	Family string
	Bold   bool
	SizePx int
	// Source names the catalog entry the face was opened from, or
	// "builtin" for the fixed-size last resort.
	Source string
	// Degraded marks the built-in fixed-size face: it ignores the
	// requested size and may not cover the requested script.
	Degraded bool
}

type cacheKey struct {
	family string
	bold   bool
	size   int
}

// Resolver opens faces from a catalog, relaxing the request step by step:
// exact family and weight, then any weight in the family, then any catalog
// entry, and finally a built-in fixed-size face. It never fails for font
// availability reasons; the worst case is a degraded handle.
//
// Safe for concurrent use. Handles are cached per (family, bold, size) and
// each key is loaded at most once.
type Resolver struct {
	catalog *Catalog
	log     zerolog.Logger

	mu    sync.RWMutex
	cache map[cacheKey]*Handle
	group singleflight.Group
}

// NewResolver builds a resolver over the given catalog.
func NewResolver(catalog *Catalog, log zerolog.Logger) *Resolver {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	return &Resolver{
		catalog: catalog,
		log:     log,
		cache:   make(map[cacheKey]*Handle),
	}
}

// ResolveSpec resolves a Spec. See Resolve.
func (r *Resolver) ResolveSpec(spec Spec) (*Handle, error) {
	return r.Resolve(spec.Family, spec.Bold, spec.SizePx)
}

// Resolve returns a usable handle for the requested family, weight and
// pixel size. The only error condition is a non-positive size; a missing
// family or weight degrades through the relaxation chain instead.
func (r *Resolver) Resolve(family string, bold bool, sizePx int) (*Handle, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive, got %d", domain.ErrInvalidStyle, sizePx)
	}
	key := cacheKey{family: normalizeFamily(family), bold: bold, size: sizePx}

	r.mu.RLock()
	h := r.cache[key]
	r.mu.RUnlock()
	if h != nil {
		return h, nil
	}

	v, _, _ := r.group.Do(fmt.Sprintf("%s|%t|%d", key.family, key.bold, key.size), func() (any, error) {
		r.mu.RLock()
		cached := r.cache[key]
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		loaded := r.load(key)
		r.mu.Lock()
		r.cache[key] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	return v.(*Handle), nil
}

// CacheSize reports how many handles the resolver currently holds.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func (r *Resolver) load(key cacheKey) *Handle {
	for _, tier := range r.tiers(key.family, key.bold) {
		for _, cand := range tier {
			h, err := openCandidate(cand, key.size)
			if err != nil {
				r.log.Debug().Err(err).Str("source", cand.source()).Msg("fonts: skipping unusable candidate")
				continue
			}
			h.Bold = cand.Bold
			r.log.Debug().
				Str("family", key.family).
				Bool("bold", key.bold).
				Int("size", key.size).
				Str("source", h.Source).
				Msg("fonts: resolved face")
			return h
		}
	}

	r.log.Warn().
		Str("family", key.family).
		Bool("bold", key.bold).
		Msg("fonts: no catalog candidate usable, using built-in face")
	return &Handle{
		Face:     basicfont.Face7x13,
		Family:   key.family,
		Bold:     key.bold,
		SizePx:   key.size,
		Source:   "builtin",
		Degraded: true,
	}
}

// tiers returns the candidate lists in relaxation order. A later tier is
// consulted only when every candidate of the earlier tiers failed to open.
func (r *Resolver) tiers(family string, bold bool) [][]Candidate {
	matched := r.catalog.matching(family)
	if len(matched) == 0 && r.catalog.DefaultFamily() != "" {
		matched = r.catalog.matching(r.catalog.DefaultFamily())
	}
	var exact []Candidate
	for _, cand := range matched {
		if cand.Bold == bold {
			exact = append(exact, cand)
		}
	}
	return [][]Candidate{exact, matched, r.catalog.Candidates()}
}

func openCandidate(cand Candidate, sizePx int) (*Handle, error) {
	data := cand.Data
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(cand.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cand.Path, err)
		}
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", cand.source(), err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("open face %s: %w", cand.source(), err)
	}
	family := ""
	if len(cand.Families) > 0 {
		family = cand.Families[0]
	}
	return &Handle{
		Face:   face,
		Family: family,
		SizePx: sizePx,
		Source: cand.source(),
	}, nil
}
