package bookingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// Client клиент для работы с сервисом бронирований (источник обязательств)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса бронирований
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListByOwnerAndDateRange получает обязательства владельца с датой в диапазоне [from, to]
func (c *Client) ListByOwnerAndDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Engagement, error) {
	q := url.Values{}
	q.Set("from", from.Format(domain.DateFormat))
	q.Set("to", to.Format(domain.DateFormat))
	reqURL := fmt.Sprintf("%s/internal/owners/%s/engagements?%s", c.baseURL, url.PathEscape(ownerID), q.Encode())

	var list EngagementList
	found, err := c.getJSON(ctx, reqURL, &list)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*domain.Engagement{}, nil
	}

	engagements := make([]*domain.Engagement, 0, len(list.Engagements))
	for _, e := range list.Engagements {
		eng, err := e.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if eng.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: engagement %s belongs to another owner", ErrInvalidResponse, eng.ID)
		}
		engagements = append(engagements, eng)
	}

	c.log.Info("ListByOwnerAndDateRange: fetched %d engagements for owner=%s, period=%s to %s",
		len(engagements), ownerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return engagements, nil
}

// GetVenueLocation получает локацию площадки
// Возвращает nil без ошибки, если площадка неизвестна
func (c *Client) GetVenueLocation(ctx context.Context, venueID string) (*domain.Location, error) {
	reqURL := fmt.Sprintf("%s/internal/venues/%s/location", c.baseURL, url.PathEscape(venueID))

	var loc VenueLocation
	found, err := c.getJSON(ctx, reqURL, &loc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return loc.ToDomain(), nil
}

// getJSON выполняет GET и декодирует ответ; 404 возвращает found = false
func (c *Client) getJSON(ctx context.Context, reqURL string, dst interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return false, nil
	case http.StatusBadRequest:
		return false, fmt.Errorf("%w: bad request", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return true, nil
}
