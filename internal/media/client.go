// Package media talks to the external asset host. Uploads hand the host a
// source URL to fetch; only the returned public id and delivery URL are kept
// locally. Request signing follows the host's scheme: SHA-1 over the sorted
// parameter string plus the API secret.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"compendi/internal/config"
)

const (
	// defaultBaseURL is the asset host's API endpoint; %s is the cloud name.
	defaultBaseURL = "https://api.cloudinary.com/v1_1/%s"
	// defaultDeliveryURL is the asset host's delivery endpoint.
	defaultDeliveryURL = "https://res.cloudinary.com/%s"
	// defaultTimeout bounds upload requests.
	defaultTimeout = 30 * time.Second
)

// Asset is the host's record of an uploaded image.
type Asset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
}

// Uploader is the narrow interface services consume.
type Uploader interface {
	// Upload asks the host to ingest sourceURL and returns the stored
	// asset's reference. An empty publicID lets the client pick one.
	Upload(ctx context.Context, sourceURL, publicID string) (*Asset, error)
}

// Client implements Uploader against the asset host's HTTP API.
type Client struct {
	cloudName   string
	apiKey      string
	apiSecret   string
	baseURL     string
	deliveryURL string
	httpClient  *http.Client
	presets     *PresetRegistry
	now         func() time.Time
}

// NewClient creates an asset host client from credentials.
func NewClient(cfg config.MediaConfig, presets *PresetRegistry) *Client {
	return &Client{
		cloudName:   cfg.CloudName,
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		baseURL:     fmt.Sprintf(defaultBaseURL, cfg.CloudName),
		deliveryURL: fmt.Sprintf(defaultDeliveryURL, cfg.CloudName),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		presets:     presets,
		now:         time.Now,
	}
}

// NewClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to stand in a local server.
func NewClientWithBaseURL(cfg config.MediaConfig, presets *PresetRegistry, baseURL string) *Client {
	c := NewClient(cfg, presets)
	c.baseURL = baseURL
	return c
}

// Upload implements Uploader.
func (c *Client) Upload(ctx context.Context, sourceURL, publicID string) (*Asset, error) {
	if publicID == "" {
		publicID = uuid.NewString()
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	form.Set("file", sourceURL)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/image/upload", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset host error (status %d): %s", resp.StatusCode, string(body))
	}

	var asset Asset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	if asset.PublicID == "" || asset.URL == "" {
		return nil, fmt.Errorf("asset host returned incomplete asset: %s", string(body))
	}

	return &asset, nil
}

// DeliveryURL builds a transformation URL for a stored asset using a named
// preset. An unknown preset falls back to the untransformed URL.
func (c *Client) DeliveryURL(publicID, preset string) string {
	p, ok := c.presets.Get(preset)
	if !ok {
		return fmt.Sprintf("%s/image/upload/%s", c.deliveryURL, publicID)
	}
	return fmt.Sprintf("%s/image/upload/%s/%s", c.deliveryURL, p.Transformation(), publicID)
}

// sign computes the request signature: SHA-1 of the sorted key=value pairs
// joined by & with the API secret appended.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
