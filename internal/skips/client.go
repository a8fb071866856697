package skips

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/skipwise/skipselect/internal/logging"
)

// DisplayLimit caps how many options one batch exposes. The endpoint is
// unpaginated; anything past the cap is dropped silently, in received order.
const DisplayLimit = 6

// maxResponseBytes bounds how much of the response body is read.
const maxResponseBytes = 1 << 20

// ErrInvalidFormat is returned when the response body is not a JSON array.
// The message is fixed regardless of what the payload actually contained.
var ErrInvalidFormat = errors.New("invalid data format")

// Client fetches the skip catalogue. One Fetch call issues exactly one
// outbound request; cancelling the context aborts it at the transport.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given catalogue base URL. A nil
// httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// FetchByLocation fetches the skip options offered for a postcode and area,
// truncated to DisplayLimit entries.
//
// Error taxonomy: a non-2xx status yields an error naming the status code,
// a non-array body yields ErrInvalidFormat, and transport failures are
// wrapped. Context cancellation surfaces as the context's error so callers
// can discard it silently.
func (c *Client) FetchByLocation(ctx context.Context, postcode, area string) ([]SkipOption, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "skips")

	endpoint := fmt.Sprintf("%s/api/skips/by-location?%s", c.baseURL, url.Values{
		"postcode": {postcode},
		"area":     {area},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalogue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().
		Str("postcode", postcode).
		Str("area", area).
		Msg("fetching skip catalogue")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Cancellation is not a failure; hand back the context error
			// untouched so the loader can drop it.
			return nil, ctxErr
		}
		return nil, fmt.Errorf("fetching skip catalogue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Int("status", resp.StatusCode).Msg("catalogue request rejected")
		return nil, fmt.Errorf("catalogue request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("reading catalogue response: %w", err)
	}

	items, err := decodeBatch(body)
	if err != nil {
		return nil, err
	}

	if len(items) > DisplayLimit {
		log.Debug().
			Int("received", len(items)).
			Int("kept", DisplayLimit).
			Msg("truncating catalogue batch to display limit")
		items = items[:DisplayLimit]
	}

	warnMissingPrices(log, body, len(items))

	log.Debug().Int("items", len(items)).Msg("skip catalogue loaded")
	return items, nil
}

// decodeBatch parses the response body, mapping a non-array top level to
// ErrInvalidFormat.
func decodeBatch(body []byte) ([]SkipOption, error) {
	// A bare null unmarshals into a nil slice without an error, so it has
	// to be rejected up front like any other non-array top level.
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, ErrInvalidFormat
	}

	var items []SkipOption
	if err := json.Unmarshal(body, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return nil, ErrInvalidFormat
		}
		return nil, fmt.Errorf("parsing catalogue response: %w", err)
	}
	return items, nil
}

// pricePresence mirrors only the id and price fields, as pointers, to tell
// an absent field apart from a genuine zero.
type pricePresence struct {
	ID             *int     `json:"id"`
	PriceBeforeVAT *float64 `json:"price_before_vat"`
	VATPercent     *float64 `json:"vat"`
}

// warnMissingPrices logs one warning per displayed item that arrived
// without its price fields. The item is still shown (its price decodes as
// zero); the catalogue contract says these fields are always present, so
// absence is worth surfacing without inventing a filtering rule. Items
// past the display cap never warn, since their prices are never rendered.
func warnMissingPrices(log zerolog.Logger, body []byte, kept int) {
	var probes []pricePresence
	if json.Unmarshal(body, &probes) != nil {
		return
	}
	if len(probes) > kept {
		probes = probes[:kept]
	}

	for _, p := range probes {
		if p.PriceBeforeVAT != nil && p.VATPercent != nil {
			continue
		}
		ev := log.Warn()
		if p.ID != nil {
			ev = ev.Int("id", *p.ID)
		}
		ev.Msg("catalogue item missing price fields, price will display as zero")
	}
}
