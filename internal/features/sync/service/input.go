package service

import (
	"encoding/json"
	"fmt"
	"os"

	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	invmodels "giveaway-club-backend/internal/features/investigation/models"
)

// giveawaysFile matches the collector's output: a wrapper object so the
// file can carry a scrape timestamp alongside the records.
type giveawaysFile struct {
	ScrapedAt int64                `json:"scraped_at,omitempty"`
	Giveaways []*gamodels.Giveaway `json:"giveaways"`
}

// LoadInput reads one run's scraped data from disk. A missing
// giveaways or roster file is fatal; the entries file is optional
// because entry scraping can be disabled independently.
func LoadInput(giveawaysPath, rosterPath, entriesPath string) (Input, error) {
	var input Input

	raw, err := os.ReadFile(giveawaysPath)
	if err != nil {
		return input, fmt.Errorf("read giveaways file: %w", err)
	}
	var gf giveawaysFile
	if err := json.Unmarshal(raw, &gf); err != nil {
		// Older collector versions wrote a bare array.
		if arrErr := json.Unmarshal(raw, &gf.Giveaways); arrErr != nil {
			return input, fmt.Errorf("parse giveaways file: %w", err)
		}
	}
	input.Giveaways = gf.Giveaways

	raw, err = os.ReadFile(rosterPath)
	if err != nil {
		return input, fmt.Errorf("read roster file: %w", err)
	}
	if err := json.Unmarshal(raw, &input.Roster); err != nil {
		return input, fmt.Errorf("parse roster file: %w", err)
	}

	if entriesPath != "" {
		raw, err = os.ReadFile(entriesPath)
		if err != nil {
			if os.IsNotExist(err) {
				input.Entries = map[string][]invmodels.Entry{}
				return input, nil
			}
			return input, fmt.Errorf("read entries file: %w", err)
		}
		if err := json.Unmarshal(raw, &input.Entries); err != nil {
			return input, fmt.Errorf("parse entries file: %w", err)
		}
	}
	if input.Entries == nil {
		input.Entries = map[string][]invmodels.Entry{}
	}

	return input, nil
}
