package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// Client клиент внешнего сервиса маршрутов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса маршрутов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Estimate запрашивает время и расстояние переезда между двумя точками
func (c *Client) Estimate(ctx context.Context, origin, dest domain.Location) (*Estimate, error) {
	q := url.Values{}
	setLocation(q, "origin", origin)
	setLocation(q, "dest", dest)
	reqURL := fmt.Sprintf("%s/internal/routes/estimate?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: no route between locations", ErrUnavailable)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var route routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if route.DurationMinutes < 0 || route.DistanceKm < 0 {
		return nil, fmt.Errorf("%w: negative duration or distance", ErrInvalidResponse)
	}

	return &Estimate{
		Minutes:    int(math.Ceil(route.DurationMinutes)),
		DistanceKm: route.DistanceKm,
	}, nil
}

func setLocation(q url.Values, prefix string, loc domain.Location) {
	if loc.HasCoords {
		q.Set(prefix+"_lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		q.Set(prefix+"_lng", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	}
	if loc.Address != "" {
		q.Set(prefix+"_address", loc.Address)
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
