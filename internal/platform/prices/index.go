package prices

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// GamePrice holds the curated catalogue entry for one game or package.
// Monetary fields are USD in minor units (cents).
type GamePrice struct {
	Name              string `json:"name"`
	AppID             *int   `json:"app_id,omitempty"`
	PackageID         *int   `json:"package_id,omitempty"`
	PriceUSDFull      int64  `json:"price_usd_full"`
	PriceUSDReduced   int64  `json:"price_usd_reduced"`
	NeedsManualUpdate bool   `json:"needs_manual_update,omitempty"`
}

// Index is an in-memory lookup over the price catalogue. Name lookups
// are case-insensitive; app id lookups take precedence when available.
type Index struct {
	byName  map[string]*GamePrice
	byAppID map[int]*GamePrice
}

// Load reads the catalogue file and builds an index over it.
func Load(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price catalogue: %w", err)
	}

	var entries []GamePrice
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse price catalogue: %w", err)
	}

	return NewIndex(entries), nil
}

func NewIndex(entries []GamePrice) *Index {
	idx := &Index{
		byName:  make(map[string]*GamePrice, len(entries)),
		byAppID: make(map[int]*GamePrice, len(entries)),
	}
	for i := range entries {
		p := &entries[i]
		idx.byName[strings.ToLower(strings.TrimSpace(p.Name))] = p
		if p.AppID != nil {
			idx.byAppID[*p.AppID] = p
		}
	}
	return idx
}

// ByAppID returns the catalogue entry for an app id, or nil.
func (i *Index) ByAppID(appID int) *GamePrice {
	if i == nil {
		return nil
	}
	return i.byAppID[appID]
}

// ByName returns the catalogue entry matching the name, or nil.
func (i *Index) ByName(name string) *GamePrice {
	if i == nil {
		return nil
	}
	return i.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Lookup resolves a giveaway's game to its catalogue entry, preferring
// the app id when present.
func (i *Index) Lookup(appID *int, name string) *GamePrice {
	if i == nil {
		return nil
	}
	if appID != nil {
		if p := i.byAppID[*appID]; p != nil {
			return p
		}
	}
	return i.ByName(name)
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byName)
}
