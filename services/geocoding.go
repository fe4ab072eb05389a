package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GeocodingClient talks to Nominatim (OpenStreetMap). Free, no API key.
// Nominatim rate-limits to ~1 request per second; callers hold that budget,
// the client does not enforce it.
type GeocodingClient struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func NewGeocodingClient() *GeocodingClient {
	return &GeocodingClient{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "SIGIM-Canete/1.0",
	}
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Forward resolves a free-text address to its best-match coordinates.
// Returns nil when the service has no result; the error covers transport
// and decode failures, which callers treat the same as "not found".
func (g *GeocodingClient) Forward(ctx context.Context, address string) (*Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("accept-language", "es")

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := g.get(ctx, "/search", query, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Lat: lat, Lng: lng}, nil
}

// Reverse turns coordinates into a best-effort human-readable address. It
// never fails outward: street-level detail degrades to the display name and
// finally to the raw coordinates at 4 decimal places.
func (g *GeocodingClient) Reverse(ctx context.Context, lat, lng float64) string {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("addressdetails", "1")
	query.Set("accept-language", "es")

	var result struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road          string `json:"road"`
			HouseNumber   string `json:"house_number"`
			Neighbourhood string `json:"neighbourhood"`
			Suburb        string `json:"suburb"`
			City          string `json:"city"`
			Town          string `json:"town"`
			Village       string `json:"village"`
		} `json:"address"`
	}
	if err := g.get(ctx, "/reverse", query, &result); err != nil {
		return fmt.Sprintf("Lat: %.4f, Lng: %.4f", lat, lng)
	}

	addr := result.Address
	var parts []string
	if addr.Road != "" {
		street := addr.Road
		if addr.HouseNumber != "" {
			street += " " + addr.HouseNumber
		}
		parts = append(parts, street)
	}
	if addr.Neighbourhood != "" {
		parts = append(parts, addr.Neighbourhood)
	} else if addr.Suburb != "" {
		parts = append(parts, addr.Suburb)
	}
	switch {
	case addr.City != "":
		parts = append(parts, addr.City)
	case addr.Town != "":
		parts = append(parts, addr.Town)
	case addr.Village != "":
		parts = append(parts, addr.Village)
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	if result.DisplayName != "" {
		segments := strings.SplitN(result.DisplayName, ",", 4)
		if len(segments) > 3 {
			segments = segments[:3]
		}
		if short := strings.TrimSpace(strings.Join(segments, ",")); short != "" {
			return short
		}
	}

	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}

func (g *GeocodingClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	// Nominatim requires an identifying header.
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
