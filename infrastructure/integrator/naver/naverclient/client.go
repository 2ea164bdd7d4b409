package naverclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	naverdomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/naver/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Account reúne a chave da organização e o cliente do anunciante
type Account struct {
	APIKey     string
	SecretKey  string
	CustomerID string
}

type Client interface {
	ListCampaigns(ctx context.Context, account Account) ([]naverdomain.Campaign, error)
	ListAdGroups(ctx context.Context, account Account, campaignID string) ([]naverdomain.AdGroup, error)
	ListAds(ctx context.Context, account Account, adGroupID string) ([]naverdomain.Ad, error)
	GetStats(ctx context.Context, account Account, ids []string, day time.Time) ([]naverdomain.Stat, error)
}

type NaverClient struct {
	cfg        config.Naver
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.Naver) Client {
	return &NaverClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

func (c *NaverClient) ListCampaigns(ctx context.Context, account Account) ([]naverdomain.Campaign, error) {
	var campaigns []naverdomain.Campaign
	err := c.get(ctx, account, "/ncc/campaigns", nil, &campaigns)
	return campaigns, err
}

func (c *NaverClient) ListAdGroups(ctx context.Context, account Account, campaignID string) ([]naverdomain.AdGroup, error) {
	var adGroups []naverdomain.AdGroup
	err := c.get(ctx, account, "/ncc/adgroups", url.Values{"nccCampaignId": {campaignID}}, &adGroups)
	return adGroups, err
}

func (c *NaverClient) ListAds(ctx context.Context, account Account, adGroupID string) ([]naverdomain.Ad, error) {
	var ads []naverdomain.Ad
	err := c.get(ctx, account, "/ncc/ads", url.Values{"nccAdgroupId": {adGroupID}}, &ads)
	return ads, err
}

func (c *NaverClient) GetStats(ctx context.Context, account Account, ids []string, day time.Time) ([]naverdomain.Stat, error) {
	fields, err := json.Marshal(naverdomain.StatFields)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar fields")
	}

	date := day.Format(time.DateOnly)
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("fields", string(fields))
	query.Set("timeRange", fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", date, date))

	var response naverdomain.StatsResponse
	if err := c.get(ctx, account, "/stats", query, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}

func (c *NaverClient) get(ctx context.Context, account Account, path string, query url.Values, out any) error {
	requestURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}

	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("X-Timestamp", timestamp)
	req.Header.Set("X-API-KEY", account.APIKey)
	req.Header.Set("X-Customer", account.CustomerID)
	req.Header.Set("X-Signature", Sign(account.SecretKey, timestamp, http.MethodGet, path))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformNaver, Op: path, Err: errors.Wrap(err, "erro ao executar a requisição")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformNaver, Op: path, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "erro ao ler resposta")}
	}

	if resp.StatusCode != http.StatusOK {
		upstreamErr := &domain.UpstreamError{
			Platform:   domain.PlatformNaver,
			Op:         path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}

		var errorResp naverdomain.ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Message != "" {
			upstreamErr.Body = fmt.Sprintf("%d %s", errorResp.Code, errorResp.Message)
		}
		return upstreamErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformNaver, Op: path, Err: errors.Wrap(err, "erro ao decodificar a resposta")}
	}

	return nil
}
