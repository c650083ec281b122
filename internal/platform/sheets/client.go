package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jszwec/csvutil"

	"giveaway-club-backend/internal/common/cache"
	"giveaway-club-backend/internal/common/logger"
)

const cacheKey = "sheets:proof_of_play"

// CSV header shapes of the spreadsheet tabs. Column names are fixed by
// the sheet and intentionally kept verbatim.
type proofCSVRow struct {
	ID              string `csv:"ID"`
	Game            string `csv:"GAME"`
	Winner          string `csv:"WINNER"`
	CompletePlaying string `csv:"COMPLETE PLAYING"`
	ExtraPoints     string `csv:"EXTRA POINTS"`
}

type playRequirementCSVRow struct {
	ID               string `csv:"ID"`
	Game             string `csv:"GAME"`
	Winner           string `csv:"WINNER"`
	Met              string `csv:"PLAY REQUIREMENTS MET"`
	Deadline         string `csv:"DEADLINE (dd-mm-yyyy)"`
	DeadlineInMonths string `csv:"DEADLINE (IN MONTHS)"`
	Requirements     string `csv:"REQUIREMENTS"`
}

// Client fetches the proof-of-play spreadsheet tabs as CSV exports and
// merges them into a Feed. Responses are cached for a short window so
// multiple pipeline stages within a run share one fetch.
type Client struct {
	http            *retryablehttp.Client
	sheetID         string
	proofGID        string
	playRequiredGID string
	cache           *cache.CacheService
	cacheTTL        time.Duration
}

func NewClient(sheetID, proofGID, playRequiredGID string, cacheService *cache.CacheService, cacheTTL time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil

	return &Client{
		http:            rc,
		sheetID:         sheetID,
		proofGID:        proofGID,
		playRequiredGID: playRequiredGID,
		cache:           cacheService,
		cacheTTL:        cacheTTL,
	}
}

// Fetch returns the merged proof-of-play feed.
func (c *Client) Fetch(ctx context.Context) (*Feed, error) {
	if c.cache != nil {
		var rows []ProofRow
		if err := c.cache.Get(ctx, cacheKey, &rows); err == nil {
			return NewFeed(rows), nil
		}
	}

	var proofRows []proofCSVRow
	if err := c.fetchTab(ctx, c.proofGID, &proofRows); err != nil {
		return nil, fmt.Errorf("fetch proof-of-play tab: %w", err)
	}

	var reqRows []playRequirementCSVRow
	if err := c.fetchTab(ctx, c.playRequiredGID, &reqRows); err != nil {
		return nil, fmt.Errorf("fetch play-required tab: %w", err)
	}

	rows := mergeRows(proofRows, reqRows)

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, rows, c.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache proof-of-play feed")
		}
	}

	return NewFeed(rows), nil
}

func (c *Client) fetchTab(ctx context.Context, gid string, dest interface{}) error {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", c.sheetID, gid)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheet export status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return decodeCSV(body, dest)
}

func decodeCSV(data []byte, dest interface{}) error {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		return err
	}
	return dec.Decode(dest)
}

func mergeRows(proofRows []proofCSVRow, reqRows []playRequirementCSVRow) []ProofRow {
	reqByKey := make(map[string]*PlayRequirement, len(reqRows))
	reqRowByKey := make(map[string]playRequirementCSVRow, len(reqRows))
	for _, r := range reqRows {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		key := rowKey(r.ID, r.Winner)
		reqByKey[key] = parsePlayRequirement(r)
		reqRowByKey[key] = r
	}

	var rows []ProofRow
	seen := make(map[string]bool)

	for _, r := range proofRows {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.Game) == "" {
			continue
		}
		key := rowKey(r.ID, r.Winner)
		rows = append(rows, ProofRow{
			GiveawayID:      strings.TrimSpace(r.ID),
			Game:            strings.TrimSpace(r.Game),
			Winner:          strings.TrimSpace(r.Winner),
			CompletePlaying: strings.EqualFold(strings.TrimSpace(r.CompletePlaying), "YES"),
			ExtraPoints:     atoiOrZero(r.ExtraPoints),
			PlayRequirement: reqByKey[key],
		})
		seen[key] = true
	}

	// Play requirements without a matching proof row still represent a
	// tracked win.
	for key, req := range reqByKey {
		if seen[key] {
			continue
		}
		src := reqRowByKey[key]
		rows = append(rows, ProofRow{
			GiveawayID:      strings.TrimSpace(src.ID),
			Game:            strings.TrimSpace(src.Game),
			Winner:          strings.TrimSpace(src.Winner),
			CompletePlaying: false,
			PlayRequirement: req,
		})
	}

	return rows
}

func parsePlayRequirement(r playRequirementCSVRow) *PlayRequirement {
	met := strings.ToUpper(strings.TrimSpace(r.Met))

	req := &PlayRequirement{
		RequirementsMet:    met == "YES",
		IgnoreRequirements: met == "NA",
		DeadlineInMonths:   2,
	}
	if d := strings.TrimSpace(r.Deadline); d != "" {
		req.Deadline = d
	}
	if m := strings.TrimSpace(r.DeadlineInMonths); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			req.DeadlineInMonths = n
		}
	}
	if notes := strings.TrimSpace(r.Requirements); notes != "" {
		req.Notes = notes
	}
	return req
}

func rowKey(id, winner string) string {
	return strings.TrimSpace(id) + ":" + strings.ToLower(strings.TrimSpace(winner))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
