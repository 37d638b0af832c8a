package astrology

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ProkeralaProvider fetches vedic charts from the Prokerala astrology API
// using OAuth2 client credentials.
type ProkeralaProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var _ Provider = &ProkeralaProvider{}

func NewProkeralaProvider(baseURL, clientID, clientSecret string) *ProkeralaProvider {
	if baseURL == "" {
		baseURL = "https://api.prokerala.com"
	}
	return &ProkeralaProvider{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *ProkeralaProvider) Name() string {
	return "prokerala"
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *ProkeralaProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var tok tokenResponse
	if err := json.Unmarshal(bodyBytes, &tok); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}

	p.accessToken = tok.AccessToken
	// Refresh a minute early so an expiring token never hits the chart call
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)

	return p.accessToken, nil
}

type prokeralaChartResponse struct {
	Data struct {
		Nakshatra struct {
			Name string `json:"name"`
		} `json:"nakshatra"`
		ChandraRasi struct {
			Name string `json:"name"`
		} `json:"chandra_rasi"`
		SooryaRasi struct {
			Name string `json:"name"`
		} `json:"soorya_rasi"`
		Lagna struct {
			Name string `json:"name"`
		} `json:"lagna"`
	} `json:"data"`
}

func (p *ProkeralaProvider) Fetch(ctx context.Context, details BirthDetails) (*Chart, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	datetime := fmt.Sprintf("%sT%s:00+00:00", details.Date, details.Time)
	coordinates := fmt.Sprintf("%f,%f", details.Latitude, details.Longitude)

	endpoint := fmt.Sprintf("%s/v2/astrology/birth-details?datetime=%s&coordinates=%s&ayanamsa=1",
		p.baseURL, url.QueryEscape(datetime), url.QueryEscape(coordinates))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create chart request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var chartResp prokeralaChartResponse
	if err := json.Unmarshal(bodyBytes, &chartResp); err != nil {
		return nil, fmt.Errorf("unmarshal chart response: %w", err)
	}

	return &Chart{
		SunSign:   chartResp.Data.SooryaRasi.Name,
		MoonSign:  chartResp.Data.ChandraRasi.Name,
		Nakshatra: chartResp.Data.Nakshatra.Name,
		Ascendant: chartResp.Data.Lagna.Name,
	}, nil
}
