package googleclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	googledomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Account identifica a conta consultada e o token da execução
type Account struct {
	AccessToken     string
	DeveloperToken  string
	CustomerID      string
	LoginCustomerID string
}

type Client interface {
	Search(ctx context.Context, account Account, query string) ([]googledomain.SearchRow, error)
}

type GoogleAdsClient struct {
	cfg        config.Google
	httpClient *http.Client
}

func NewClient(cfg config.Google) Client {
	return &GoogleAdsClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NormalizeCustomerID remove os hífens de "123-456-7890"
func NormalizeCustomerID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

// Search executa a GAQL e percorre todas as páginas via nextPageToken
func (c *GoogleAdsClient) Search(ctx context.Context, account Account, query string) ([]googledomain.SearchRow, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join("/", endpoint.Path, c.cfg.APIVersion, "customers", NormalizeCustomerID(account.CustomerID)) + "/googleAds:search"

	rows := make([]googledomain.SearchRow, 0)
	pageToken := ""

	for page := 0; ; page++ {
		if page > 0 {
			if err := utils.Sleep(ctx, c.cfg.RequestDelay); err != nil {
				return nil, err
			}
		}

		var response googledomain.SearchResponse
		if err := c.post(ctx, endpoint.String(), account, googledomain.SearchRequest{Query: query, PageToken: pageToken}, &response); err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)
		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}
}

func (c *GoogleAdsClient) post(ctx context.Context, endpoint string, account Account, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar a requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("developer-token", account.DeveloperToken)
	req.Header.Set("Content-Type", "application/json")
	if account.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", NormalizeCustomerID(account.LoginCustomerID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformGoogle, Op: "googleAds:search", Err: errors.Wrap(err, "erro ao executar a requisição")}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformGoogle, Op: "googleAds:search", StatusCode: resp.StatusCode, Err: errors.Wrap(err, "erro ao ler resposta")}
	}

	if resp.StatusCode != http.StatusOK {
		upstreamErr := &domain.UpstreamError{
			Platform:     domain.PlatformGoogle,
			Op:           "googleAds:search",
			StatusCode:   resp.StatusCode,
			Body:         string(respBody),
			TokenExpired: resp.StatusCode == http.StatusUnauthorized,
		}

		var errorResp googledomain.ErrorResponse
		if json.Unmarshal(respBody, &errorResp) == nil && errorResp.Error.Message != "" {
			upstreamErr.Body = fmt.Sprintf("%s: %s", errorResp.Error.Status, errorResp.Error.Message)
			upstreamErr.TokenExpired = upstreamErr.TokenExpired || errorResp.Error.Status == "UNAUTHENTICATED"
		}
		return upstreamErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformGoogle, Op: "googleAds:search", Err: errors.Wrap(err, "erro ao decodificar a resposta")}
	}

	return nil
}
