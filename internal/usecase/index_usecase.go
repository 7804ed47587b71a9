package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/config"
	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/pkg/schedule"
	"github.com/greasemeter/place-index/internal/pkg/utils"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// EnrichJob is a background metadata-enrichment batch for one index.
type EnrichJob struct {
	Index  *PlaceIndex
	Places []domain.Place
}

// EnrichmentQueue accepts enrichment batches for background processing.
// Enqueue must not block; it reports whether the batch was accepted.
type EnrichmentQueue interface {
	Enqueue(job EnrichJob) bool
}

// PlaceIndex is the viewport place index of a single map session. All state
// behind the mutex; network calls happen outside it, and every response
// passes a sequence check before it may touch visible state, so a slow
// response to an old viewport or keystroke can never overwrite newer data.
type PlaceIndex struct {
	placesRepo repository.PlacesRepository
	cacheRepo  repository.CacheRepository
	enricher   *EnrichmentUseCase
	queue      EnrichmentQueue
	logger     *zap.Logger

	cfg        config.IndexConfig
	suggestTTL time.Duration

	debouncer *schedule.Debouncer

	mu          sync.Mutex
	viewport    domain.Viewport
	rawPlaces   []domain.Place
	markers     []domain.Marker
	suggestions []domain.Place
	refreshSeq  uint64
	searchSeq   uint64
	metadata    map[string]*domain.PlacePatch
	inFlight    map[string]struct{}
}

func NewPlaceIndex(
	placesRepo repository.PlacesRepository,
	cacheRepo repository.CacheRepository,
	enricher *EnrichmentUseCase,
	queue EnrichmentQueue,
	cfg config.IndexConfig,
	suggestTTL time.Duration,
	logger *zap.Logger,
) *PlaceIndex {
	return &PlaceIndex{
		placesRepo:  placesRepo,
		cacheRepo:   cacheRepo,
		enricher:    enricher,
		queue:       queue,
		logger:      logger,
		cfg:         cfg,
		suggestTTL:  suggestTTL,
		debouncer:   schedule.NewDebouncer(cfg.DebounceDelay),
		markers:     []domain.Marker{},
		suggestions: []domain.Place{},
		metadata:    make(map[string]*domain.PlacePatch),
		inFlight:    make(map[string]struct{}),
	}
}

// Refresh fetches the places for a viewport and rebuilds the marker set.
// A fetch failure keeps the previous markers and flags the response stale;
// a response overtaken by a newer refresh is discarded the same way.
func (idx *PlaceIndex) Refresh(ctx context.Context, vp domain.Viewport) (*dto.MarkersResponse, error) {
	if !vp.Valid() || !utils.ValidateCoordinates(vp.Latitude, vp.Longitude) {
		return nil, errors.ErrInvalidViewport
	}

	idx.mu.Lock()
	idx.refreshSeq++
	seq := idx.refreshSeq
	idx.mu.Unlock()

	places, err := idx.placesRepo.PlacesInViewport(ctx, vp)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err != nil {
		idx.logger.Warn("Viewport refresh failed, keeping previous markers",
			zap.Error(err))
		return idx.markersResponseLocked(true), nil
	}
	if seq != idx.refreshSeq {
		idx.logger.Debug("Discarding overtaken viewport response",
			zap.Uint64("seq", seq), zap.Uint64("latest", idx.refreshSeq))
		return idx.markersResponseLocked(true), nil
	}

	for i := range places {
		if patch, ok := idx.metadata[places[i].ID]; ok {
			places[i].Apply(patch)
		}
	}

	idx.viewport = vp
	idx.rawPlaces = places
	idx.markers = Declutter(places, vp, idx.cfg.GridSize, idx.cfg.MinViewportSpan)

	idx.dispatchEnrichment(places)

	return idx.markersResponseLocked(false), nil
}

// Suggest runs a debounced search for a keystroke. The result is applied to
// visible state only when no later keystroke was dispatched in the meantime.
// An empty term clears suggestions immediately, without the debounce wait.
func (idx *PlaceIndex) Suggest(ctx context.Context, term string, vp domain.Viewport) (*dto.SuggestionsResponse, error) {
	if term == "" {
		idx.debouncer.Cancel()

		idx.mu.Lock()
		idx.searchSeq++
		idx.suggestions = []domain.Place{}
		idx.mu.Unlock()

		return &dto.SuggestionsResponse{Suggestions: []domain.Place{}, Applied: true}, nil
	}

	if !idx.debouncer.Wait(ctx) {
		return &dto.SuggestionsResponse{Applied: false}, nil
	}

	idx.mu.Lock()
	idx.searchSeq++
	seq := idx.searchSeq
	idx.mu.Unlock()

	places, err := idx.lookupSuggestions(ctx, term)
	if err != nil {
		idx.logger.Error("Suggestion lookup failed",
			zap.String("term", term), zap.Error(err))
		return nil, errors.ErrUpstreamError
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if seq != idx.searchSeq {
		idx.logger.Debug("Discarding overtaken suggestion response",
			zap.Uint64("seq", seq), zap.Uint64("latest", idx.searchSeq))
		return &dto.SuggestionsResponse{Applied: false}, nil
	}

	for i := range places {
		if patch, ok := idx.metadata[places[i].ID]; ok {
			places[i].Apply(patch)
		}
		// Suggestions are name/address-primary; an unresolved location
		// falls back to the viewport center instead of being dropped.
		if !hasUsableCoordinates(places[i]) {
			places[i].Latitude = vp.Latitude
			places[i].Longitude = vp.Longitude
		}
	}

	// Nearest first; the stable sort keeps backend relevance order among
	// places at the same distance, including the center-fallback ones.
	sort.SliceStable(places, func(i, j int) bool {
		di := utils.HaversineDistance(vp.Latitude, vp.Longitude, places[i].Latitude, places[i].Longitude)
		dj := utils.HaversineDistance(vp.Latitude, vp.Longitude, places[j].Latitude, places[j].Longitude)
		return di < dj
	})

	idx.suggestions = places
	idx.dispatchEnrichment(places)

	return &dto.SuggestionsResponse{
		Suggestions: append([]domain.Place{}, places...),
		Applied:     true,
	}, nil
}

// lookupSuggestions is the cache-first search fetch. The cache is keyed by
// the normalized term, so case and whitespace variants of one query share an
// entry; the backend still sees the term as typed. Cache failures degrade to
// a backend search.
func (idx *PlaceIndex) lookupSuggestions(ctx context.Context, term string) ([]domain.Place, error) {
	key := strings.ToLower(strings.TrimSpace(term))

	if idx.cacheRepo != nil {
		cached, err := idx.cacheRepo.GetSuggestions(ctx, key)
		if err != nil {
			idx.logger.Warn("Suggestion cache read failed",
				zap.String("term", key), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	places, err := idx.placesRepo.SearchPlaces(ctx, term)
	if err != nil {
		return nil, err
	}

	if idx.cacheRepo != nil {
		if err := idx.cacheRepo.SetSuggestions(ctx, key, places, idx.suggestTTL); err != nil {
			idx.logger.Warn("Suggestion cache write failed",
				zap.String("term", key), zap.Error(err))
		}
	}
	return places, nil
}

// EnrichMetadata fetches detail for up to the configured prefix of places
// that are missing display metadata. Synthetic ids cannot be looked up and
// are skipped; ids already cached or in flight are skipped too. Failures are
// silently dropped per entry, leaving the rest of the batch unaffected.
func (idx *PlaceIndex) EnrichMetadata(ctx context.Context, places []domain.Place) {
	if len(places) > idx.cfg.EnrichLimit {
		places = places[:idx.cfg.EnrichLimit]
	}

	for _, p := range places {
		if p.ID == "" || p.HasSyntheticID() || !p.NeedsEnrichment() {
			continue
		}

		idx.mu.Lock()
		_, cached := idx.metadata[p.ID]
		_, busy := idx.inFlight[p.ID]
		if cached || busy {
			idx.mu.Unlock()
			continue
		}
		idx.inFlight[p.ID] = struct{}{}
		idx.mu.Unlock()

		patch, err := idx.enricher.FetchDetail(ctx, p.ID)

		idx.mu.Lock()
		delete(idx.inFlight, p.ID)
		if err == nil && !patch.IsEmpty() {
			idx.metadata[p.ID] = patch
			idx.applyPatchLocked(patch)
		}
		idx.mu.Unlock()

		if err != nil {
			idx.logger.Debug("Enrichment fetch failed",
				zap.String("place_id", p.ID), zap.Error(err))
		}
	}
}

// applyPatchLocked merges a patch into the raw place set, the marker set and
// the suggestion list, keyed by id. Collapsed markers keep their "(+N)"
// suffix on top of the patched name; a patch without a name leaves the
// already-suffixed label untouched.
func (idx *PlaceIndex) applyPatchLocked(patch *domain.PlacePatch) {
	for i := range idx.rawPlaces {
		if idx.rawPlaces[i].ID == patch.ID {
			idx.rawPlaces[i].Apply(patch)
		}
	}
	renames := patch.Name != nil && *patch.Name != ""
	for i := range idx.markers {
		if idx.markers[i].ID == patch.ID {
			idx.markers[i].Apply(patch)
			if n := idx.markers[i].Collapsed; n > 0 && renames {
				idx.markers[i].Name = fmt.Sprintf("%s (+%d)", idx.markers[i].Name, n)
			}
		}
	}
	for i := range idx.suggestions {
		if idx.suggestions[i].ID == patch.ID {
			idx.suggestions[i].Apply(patch)
		}
	}
}

// dispatchEnrichment hands a batch to the background queue, or to a
// fire-and-forget goroutine when no queue is wired. A full queue drops the
// batch: the places are re-attempted the next time they are seen, since they
// are still not in the metadata cache.
func (idx *PlaceIndex) dispatchEnrichment(places []domain.Place) {
	batch := make([]domain.Place, 0, idx.cfg.EnrichLimit)
	for _, p := range places {
		if len(batch) == idx.cfg.EnrichLimit {
			break
		}
		if p.ID != "" && !p.HasSyntheticID() && p.NeedsEnrichment() {
			batch = append(batch, p)
		}
	}
	if len(batch) == 0 {
		return
	}

	if idx.queue != nil {
		if !idx.queue.Enqueue(EnrichJob{Index: idx, Places: batch}) {
			idx.logger.Debug("Enrichment queue full, dropping batch",
				zap.Int("size", len(batch)))
		}
		return
	}

	go idx.EnrichMetadata(context.Background(), batch)
}

// Markers returns a copy of the current marker set.
func (idx *PlaceIndex) Markers() []domain.Marker {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return append([]domain.Marker{}, idx.markers...)
}

// Suggestions returns a copy of the current suggestion list.
func (idx *PlaceIndex) Suggestions() []domain.Place {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return append([]domain.Place{}, idx.suggestions...)
}

// CachedPatch returns the session metadata cache entry for an id, if any.
func (idx *PlaceIndex) CachedPatch(id string) *domain.PlacePatch {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.metadata[id]
}

func (idx *PlaceIndex) markersResponseLocked(stale bool) *dto.MarkersResponse {
	return &dto.MarkersResponse{
		Markers: append([]domain.Marker{}, idx.markers...),
		Total:   len(idx.markers),
		Stale:   stale,
	}
}
