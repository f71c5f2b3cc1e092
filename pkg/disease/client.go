// Package disease is the client for the public epidemiological data
// source. Responses are parsed into the strict internal shapes right at
// this boundary; anything missing or malformed surfaces as
// model.ErrDataUnavailable and nothing partial escapes.
package disease

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"epiwatch/internal/model"

	json "github.com/goccy/go-json"
)

// LastDaysAll requests the full available history.
const LastDaysAll = "all"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// History carries the cumulative counter series for one query target.
// Order matches the source feed exactly.
type History struct {
	Cases  model.RawSeries
	Deaths model.RawSeries
}

type historicalResponse struct {
	Cases    json.RawMessage `json:"cases"`
	Deaths   json.RawMessage `json:"deaths"`
	Timeline *struct {
		Cases  json.RawMessage `json:"cases"`
		Deaths json.RawMessage `json:"deaths"`
	} `json:"timeline"`
}

// Historical fetches the cumulative day-by-day counters for a country,
// or for the global aggregate when country is model.WorldTarget. The
// aggregate response carries the counters at the top level, a country
// response nests them under "timeline".
func (c *Client) Historical(country, lastdays string) (*History, error) {
	body, err := c.get("historical/" + url.PathEscape(country) + "?lastdays=" + url.QueryEscape(lastdays))
	if err != nil {
		return nil, err
	}

	var raw historicalResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("historical decode: %w", model.ErrDataUnavailable)
	}

	cases, deaths := raw.Cases, raw.Deaths
	if country != model.WorldTarget {
		if raw.Timeline == nil {
			return nil, fmt.Errorf("historical %s: missing timeline: %w", country, model.ErrDataUnavailable)
		}
		cases, deaths = raw.Timeline.Cases, raw.Timeline.Deaths
	}
	if cases == nil || deaths == nil {
		return nil, fmt.Errorf("historical %s: missing counters: %w", country, model.ErrDataUnavailable)
	}

	hist := &History{}
	if hist.Cases, err = parseCounterSeries(cases); err != nil {
		return nil, fmt.Errorf("historical %s cases: %w", country, err)
	}
	if hist.Deaths, err = parseCounterSeries(deaths); err != nil {
		return nil, fmt.Errorf("historical %s deaths: %w", country, err)
	}

	return hist, nil
}

// parseCounterSeries walks the day-keyed object token by token so the
// source's insertion order survives; a plain map decode would lose it.
// Keys use the source's M/D/YY format and are normalized here.
func parseCounterSeries(raw json.RawMessage) (model.RawSeries, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))

	tok, err := dec.Token()
	if err != nil {
		return nil, model.ErrDataUnavailable
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, model.ErrDataUnavailable
	}

	var series model.RawSeries
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, model.ErrDataUnavailable
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, model.ErrDataUnavailable
		}

		date, err := time.Parse("1/2/06", key)
		if err != nil {
			return nil, fmt.Errorf("bad date key %q: %w", key, model.ErrDataUnavailable)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, model.ErrDataUnavailable
		}
		val, ok := valTok.(float64)
		if !ok {
			return nil, model.ErrDataUnavailable
		}
		if val < 0 {
			return nil, fmt.Errorf("negative total %v at %q: %w", val, key, model.ErrDataUnavailable)
		}

		series = append(series, model.RawPoint{Date: date, Total: int64(val)})
	}

	return series, nil
}

type summaryResponse struct {
	Country    string `json:"country"`
	Population *int64 `json:"population"`
	Active     int64  `json:"active"`
	Critical   int64  `json:"critical"`
	Recovered  int64  `json:"recovered"`
	Cases      *int64 `json:"cases"`
	Deaths     *int64 `json:"deaths"`
	Tests      int64  `json:"tests"`
}

// Current fetches the point-in-time snapshot for a country, or for the
// world when country is model.WorldTarget. No caching, no staleness
// guarantee beyond the upstream response itself.
func (c *Client) Current(country string) (*model.CountrySummary, error) {
	path := "countries/" + url.PathEscape(country)
	if country == model.WorldTarget {
		path = "all"
	}

	body, err := c.get(path)
	if err != nil {
		return nil, err
	}

	var raw summaryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("current decode: %w", model.ErrDataUnavailable)
	}
	if raw.Population == nil || raw.Cases == nil || raw.Deaths == nil {
		return nil, fmt.Errorf("current %s: missing counters: %w", country, model.ErrDataUnavailable)
	}

	name := raw.Country
	if name == "" {
		name = country
	}

	return &model.CountrySummary{
		Name:       name,
		Population: *raw.Population,
		Active:     raw.Active,
		Critical:   raw.Critical,
		Recovered:  raw.Recovered,
		TotalCases: *raw.Cases,
		Deaths:     *raw.Deaths,
		Tests:      raw.Tests,
	}, nil
}

type listingResponse struct {
	Country     string `json:"country"`
	CountryInfo struct {
		ISO2 string `json:"iso2"`
	} `json:"countryInfo"`
}

// Countries fetches every known country listing in source order.
func (c *Client) Countries() ([]model.CountryListing, error) {
	body, err := c.get("countries")
	if err != nil {
		return nil, err
	}

	var raw []listingResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("countries decode: %w", model.ErrDataUnavailable)
	}

	listings := make([]model.CountryListing, 0, len(raw))
	for _, item := range raw {
		listings = append(listings, model.CountryListing{
			Name: item.Country,
			Code: item.CountryInfo.ISO2,
		})
	}

	return listings, nil
}

func (c *Client) get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, model.ErrDataUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d: %w", path, resp.StatusCode, model.ErrDataUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, model.ErrDataUnavailable)
	}

	return body, nil
}
