package nominatim_client

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BaseURL   string
	UserAgent string
	// Region добавляется к запросу, если адрес его не упоминает.
	Region string
	// RegionAliases - написания региона, при которых Region не добавляется.
	RegionAliases []string
	Timeout       time.Duration
}

// Client - геокодер поверх OpenStreetMap Nominatim.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("nominatim base url is required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("nominatim requires a User-Agent")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Query дополняет адрес регионом, если пользователь его не указал.
func (c *Client) Query(address string) string {
	if c.cfg.Region == "" {
		return address
	}
	lower := strings.ToLower(address)
	for _, alias := range c.cfg.RegionAliases {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return address
		}
	}
	return address + ", " + c.cfg.Region
}

// Geocode возвращает (nil, nil), если Nominatim ничего не нашел.
func (c *Client) Geocode(ctx context.Context, address string) (*port.GeocodeResult, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "NominatimClient",
		"method":    "Geocode",
	})

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", c.Query(address))
	params.Set("limit", "1")
	reqURL := c.cfg.BaseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	clientLogger.Debug("Sending request to nominatim", port.Fields{"url": reqURL})
	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to nominatim", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("nominatim returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from nominatim", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var results []searchResultDTO
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		clientLogger.Error("Failed to decode response from nominatim", err, nil)
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		clientLogger.Info("Nominatim found no match", nil)
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	clientLogger.Debug("Address geocoded", port.Fields{"lat": lat, "lng": lng})
	return &port.GeocodeResult{Lat: lat, Lng: lng, DisplayName: results[0].DisplayName}, nil
}
