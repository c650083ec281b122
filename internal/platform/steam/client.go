package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const baseURL = "https://api.steampowered.com"

// GamePlayData is the ownership/playtime/achievements snapshot for one
// (player, app) pair.
type GamePlayData struct {
	Owned                  bool    `json:"owned"`
	PlaytimeMinutes        int     `json:"playtime_minutes"`
	AchievementsUnlocked   int     `json:"achievements_unlocked"`
	AchievementsTotal      int     `json:"achievements_total"`
	AchievementsPercentage float64 `json:"achievements_percentage"`
	NeverPlayed            bool    `json:"never_played"`
	HasNoAvailableStats    bool    `json:"has_no_available_stats,omitempty"`
}

// Client talks to the Steam Web API. Calls are spaced out by a fixed
// delay; transient failures are retried with backoff underneath.
type Client struct {
	http     *retryablehttp.Client
	apiKey   string
	delay    time.Duration
	lastCall time.Time
}

func NewClient(apiKey string, delay time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil

	return &Client{
		http:   rc,
		apiKey: apiKey,
		delay:  delay,
	}
}

type ownedGamesResponse struct {
	Response struct {
		Games []struct {
			AppID           int `json:"appid"`
			PlaytimeForever int `json:"playtime_forever"`
		} `json:"games"`
	} `json:"response"`
}

type playerAchievementsResponse struct {
	PlayerStats struct {
		Success      bool `json:"success"`
		Achievements []struct {
			Achieved int `json:"achieved"`
		} `json:"achievements"`
	} `json:"playerstats"`
}

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			CommunityVisibilityState int    `json:"communityvisibilitystate"`
			CountryCode              string `json:"loccountrycode"`
		} `json:"players"`
	} `json:"response"`
}

// GetGamePlayData returns the play snapshot for one owned game. A library
// that cannot be read (private profile) yields an un-owned snapshot with
// HasNoAvailableStats set.
func (c *Client) GetGamePlayData(ctx context.Context, steamID string, appID int) (*GamePlayData, error) {
	var owned ownedGamesResponse
	endpoint := fmt.Sprintf(
		"/IPlayerService/GetOwnedGames/v0001/?key=%s&steamid=%s&format=json&include_appinfo=1&include_played_free_games=1",
		c.apiKey, steamID,
	)
	if err := c.getJSON(ctx, endpoint, &owned); err != nil {
		return nil, err
	}

	data := &GamePlayData{}
	var playtime int
	found := false
	for _, g := range owned.Response.Games {
		if g.AppID == appID {
			playtime = g.PlaytimeForever
			found = true
			break
		}
	}

	if len(owned.Response.Games) == 0 {
		data.HasNoAvailableStats = true
		return data, nil
	}
	if !found {
		data.NeverPlayed = true
		return data, nil
	}

	data.Owned = true
	data.PlaytimeMinutes = playtime
	data.NeverPlayed = playtime == 0

	var ach playerAchievementsResponse
	endpoint = fmt.Sprintf(
		"/ISteamUserStats/GetPlayerAchievements/v0001/?appid=%d&key=%s&steamid=%s&format=json",
		appID, c.apiKey, steamID,
	)
	if err := c.getJSON(ctx, endpoint, &ach); err != nil {
		// Achievement stats missing is not an error in itself; the game
		// may simply have none or the profile hides them.
		data.HasNoAvailableStats = true
		return data, nil
	}

	if !ach.PlayerStats.Success {
		data.HasNoAvailableStats = true
		return data, nil
	}

	total := len(ach.PlayerStats.Achievements)
	unlocked := 0
	for _, a := range ach.PlayerStats.Achievements {
		if a.Achieved == 1 {
			unlocked++
		}
	}

	data.AchievementsTotal = total
	data.AchievementsUnlocked = unlocked
	if total > 0 {
		data.AchievementsPercentage = float64(unlocked) / float64(total) * 100
	}

	return data, nil
}

// CheckProfileVisibility reports whether the player's profile is public.
func (c *Client) CheckProfileVisibility(ctx context.Context, steamID string) (bool, error) {
	var summaries playerSummariesResponse
	endpoint := fmt.Sprintf("/ISteamUser/GetPlayerSummaries/v0002/?key=%s&steamids=%s&format=json", c.apiKey, steamID)
	if err := c.getJSON(ctx, endpoint, &summaries); err != nil {
		return false, err
	}

	if len(summaries.Response.Players) == 0 {
		return false, fmt.Errorf("steam player %s not found", steamID)
	}
	return summaries.Response.Players[0].CommunityVisibilityState == 3, nil
}

// GetPlayerCountryCode returns the player's self-reported country code,
// or empty when unset.
func (c *Client) GetPlayerCountryCode(ctx context.Context, steamID string) (string, error) {
	var summaries playerSummariesResponse
	endpoint := fmt.Sprintf("/ISteamUser/GetPlayerSummaries/v0002/?key=%s&steamids=%s&format=json", c.apiKey, steamID)
	if err := c.getJSON(ctx, endpoint, &summaries); err != nil {
		return "", err
	}

	if len(summaries.Response.Players) == 0 {
		return "", fmt.Errorf("steam player %s not found", steamID)
	}
	return summaries.Response.Players[0].CountryCode, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	c.throttle()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("steam api status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) throttle() {
	if c.delay <= 0 {
		return
	}
	if since := time.Since(c.lastCall); since < c.delay {
		time.Sleep(c.delay - since)
	}
	c.lastCall = time.Now()
}
