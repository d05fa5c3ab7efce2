package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"imoveis-sp/utils"
)

const nominatimUserAgent = "imoveis-sp/1.0"

// Nominatim resolves neighborhoods through the OpenStreetMap Nominatim
// search API. Lookups are strictly serial and rate limited, and every
// outcome is cached for the session, failures included: a name that came
// back empty once is never retried.
type Nominatim struct {
	baseURL string
	city    string
	country string
	client  *http.Client
	limiter *utils.RateLimiter
	logger  *utils.Logger
	cache   map[string]*Coordinate
}

// NewNominatim creates a Nominatim resolver with a fresh session cache.
func NewNominatim(baseURL, city, country string, delayMs int, logger *utils.Logger) *Nominatim {
	return &Nominatim{
		baseURL: baseURL,
		city:    city,
		country: country,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: utils.NewRateLimiter(delayMs),
		logger:  logger,
		cache:   make(map[string]*Coordinate),
	}
}

// Resolve looks up each distinct name at most once per session. Lookup
// failures are swallowed into a cached nil entry, never returned as errors.
func (g *Nominatim) Resolve(names []string) map[string]*Coordinate {
	out := make(map[string]*Coordinate, len(names))
	for _, name := range names {
		if coord, ok := g.cache[name]; ok {
			out[name] = coord
			continue
		}
		coord := g.lookup(name)
		g.cache[name] = coord
		out[name] = coord
	}
	return out
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Nominatim) lookup(name string) *Coordinate {
	if name == "" {
		return nil
	}

	// Hard sequencing constraint: one call per delay interval or the
	// upstream service blocks all requests.
	g.limiter.Wait()

	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s, %s, %s", name, g.city, g.country))
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequest(http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("[geocode] lookup %q failed: %v", name, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug("[geocode] lookup %q: status %d", name, resp.StatusCode)
		return nil
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil
	}
	return &Coordinate{Lat: lat, Lon: lon}
}
