package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/storefront-sdk/internal/apiclient"
)

var ErrUnknownCommune = errors.New("commune is not in the selected wilaya")

// LocationClient loads the two-level shipping region hierarchy.
type LocationClient interface {
	FetchWilayas(ctx context.Context) ([]apiclient.Wilaya, error)
	FetchCommunes(ctx context.Context, wilayaID int) ([]apiclient.Commune, error)
}

// LocationSelector drives the dependent wilaya→commune selection. Each
// commune fetch carries the generation of the wilaya choice that
// triggered it; a response only lands if its generation is still
// current, so a quick second choice cannot be overwritten by a slow
// first response.
type LocationSelector struct {
	mu         sync.Mutex
	client     LocationClient
	wilayas    []apiclient.Wilaya
	communes   []apiclient.Commune
	wilayaID   int
	communeID  int
	generation uint64
}

func NewLocationSelector(client LocationClient) *LocationSelector {
	return &LocationSelector{client: client}
}

// LoadWilayas fetches the region list.
func (s *LocationSelector) LoadWilayas(ctx context.Context) ([]apiclient.Wilaya, error) {
	wilayas, err := s.client.FetchWilayas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load wilayas: %w", err)
	}

	s.mu.Lock()
	s.wilayas = wilayas
	s.mu.Unlock()
	return wilayas, nil
}

// SelectWilaya picks a region and loads its communes. If the previously
// selected commune is absent from the new list, the first commune is
// selected instead — the selection is never left dangling. Stale
// responses from superseded selections are dropped. The wilaya commits
// together with its commune list: a failed fetch leaves the previous
// selection fully intact instead of pairing the new wilaya with the old
// commune.
func (s *LocationSelector) SelectWilaya(ctx context.Context, wilayaID int) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	previousCommune := s.communeID
	s.mu.Unlock()

	communes, err := s.client.FetchCommunes(ctx, wilayaID)
	if err != nil {
		return fmt.Errorf("failed to load communes for wilaya %d: %w", wilayaID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer selection won the race; ignore this response.
		return nil
	}

	s.wilayaID = wilayaID
	s.communes = communes
	s.communeID = 0
	for _, c := range communes {
		if c.ID == previousCommune {
			s.communeID = previousCommune
			break
		}
	}
	if s.communeID == 0 && len(communes) > 0 {
		s.communeID = communes[0].ID
	}
	return nil
}

// SelectCommune picks a sub-region from the currently loaded list.
func (s *LocationSelector) SelectCommune(communeID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.communes {
		if c.ID == communeID {
			s.communeID = communeID
			return nil
		}
	}
	return ErrUnknownCommune
}

// Communes returns the sub-regions of the selected wilaya.
func (s *LocationSelector) Communes() []apiclient.Commune {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]apiclient.Commune, len(s.communes))
	copy(out, s.communes)
	return out
}

// Selection returns the current wilaya and commune ids.
func (s *LocationSelector) Selection() (wilayaID, communeID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wilayaID, s.communeID
}
