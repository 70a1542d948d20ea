package overpass_client

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBBox = "40.710,-74.060,40.730,-74.030"

// runtimeErrorRemark - так Overpass помечает таймаут и нехватку памяти при статусе 200.
const runtimeErrorRemark = "runtime error"

type Config struct {
	// BaseURL - адрес сервера без /api/interpreter.
	BaseURL string
	// BBox - "south,west,north,east".
	BBox      string
	UserAgent string
	Timeout   time.Duration
}

// Client загружает геометрию улиц из OpenStreetMap через Overpass API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("overpass base url is required")
	}
	if cfg.BBox == "" {
		cfg.BBox = DefaultBBox
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// BuildQuery - один запрос на все улицы: объединение way по имени внутри bbox.
func (c *Client) BuildQuery(streetNames []string) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, name := range streetNames {
		fmt.Fprintf(&b, "  way[\"name\"=\"%s\"](%s);\n", escapeQL(name), c.cfg.BBox)
	}
	b.WriteString(");\nout body;\n>;\nout skel qt;\n")
	return b.String()
}

func escapeQL(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// FetchGeometry возвращает по одному элементу на каждое имя, в порядке streetNames.
// Улица, которой нет в ответе, получает пустой список отрезков.
func (c *Client) FetchGeometry(ctx context.Context, streetNames []string) ([]domain.StreetGeometry, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OverpassClient",
		"method":    "FetchGeometry",
		"streets":   len(streetNames),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/interpreter", strings.NewReader(c.BuildQuery(streetNames)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	clientLogger.Debug("Sending request to overpass", nil)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to overpass", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("overpass returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from overpass", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var payload responseDTO
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		clientLogger.Error("Failed to decode response from overpass", err, nil)
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	if strings.HasPrefix(strings.TrimSpace(payload.Remark), runtimeErrorRemark) {
		err := fmt.Errorf("overpass query failed: %s", payload.Remark)
		clientLogger.Error("Overpass reported a runtime error", err, nil)
		return nil, err
	}
	if payload.Elements == nil {
		err := fmt.Errorf("overpass response has no elements")
		clientLogger.Error("Malformed response from overpass", err, nil)
		return nil, err
	}

	elements := *payload.Elements
	result := groupWays(elements, streetNames)
	clientLogger.Info("Street geometry received", port.Fields{"elements": len(elements)})
	return result, nil
}

// groupWays: сначала индексируем узлы, затем собираем way в полилинии по имени улицы.
// Ссылки на отсутствующие узлы пропускаются, пустые way отбрасываются.
func groupWays(elements []elementDTO, streetNames []string) []domain.StreetGeometry {
	nodes := make(map[int64]domain.Coordinate)
	for _, el := range elements {
		if el.Type == "node" {
			nodes[el.ID] = domain.Coordinate{Lat: el.Lat, Lng: el.Lon}
		}
	}

	segments := make(map[string][]domain.Polyline, len(streetNames))
	for _, name := range streetNames {
		segments[name] = []domain.Polyline{}
	}

	for _, el := range elements {
		if el.Type != "way" {
			continue
		}
		name := el.Tags["name"]
		if _, wanted := segments[name]; !wanted {
			continue
		}
		line := make(domain.Polyline, 0, len(el.Nodes))
		for _, id := range el.Nodes {
			if coord, ok := nodes[id]; ok {
				line = append(line, coord)
			}
		}
		if len(line) > 0 {
			segments[name] = append(segments[name], line)
		}
	}

	result := make([]domain.StreetGeometry, len(streetNames))
	for i, name := range streetNames {
		result[i] = domain.StreetGeometry{Name: name, Segments: segments[name]}
	}
	return result
}
