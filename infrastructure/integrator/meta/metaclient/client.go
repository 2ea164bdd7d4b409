package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	metadomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const insightFields = "account_id,campaign_id,campaign_name,adset_id,adset_name,ad_id,ad_name," +
	"spend,impressions,clicks,actions,action_values"

type InsightsParams struct {
	StartDate  time.Time
	EndDate    time.Time
	Breakdowns []string
}

type Client interface {
	GetAdInsights(ctx context.Context, accessToken, accountID string, params InsightsParams) ([]metadomain.AdInsight, error)
	GetAds(ctx context.Context, accessToken, accountID string) ([]metadomain.Ad, error)
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error)
}

type MetaClient struct {
	cfg        config.Meta
	httpClient *http.Client
}

func NewClient(cfg config.Meta) Client {
	return &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// AccountPath normaliza o id da conta para act_{id}
func AccountPath(accountID string) string {
	return "act_" + strings.TrimPrefix(strings.TrimSpace(accountID), "act_")
}

func (c *MetaClient) GetAdInsights(ctx context.Context, accessToken, accountID string, params InsightsParams) ([]metadomain.AdInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		params.StartDate.Format(time.DateOnly), params.EndDate.Format(time.DateOnly))

	query := url.Values{}
	query.Set("level", "ad")
	query.Set("time_increment", "1")
	query.Set("time_range", timeRange)
	query.Set("fields", insightFields)
	query.Set("limit", strconv.Itoa(c.cfg.PageLimit))
	if len(params.Breakdowns) > 0 {
		query.Set("breakdowns", strings.Join(params.Breakdowns, ","))
	}

	next := fmt.Sprintf("%s/%s/insights?%s", c.cfg.URL, AccountPath(accountID), query.Encode())

	insights := make([]metadomain.AdInsight, 0)
	for page := 0; next != ""; page++ {
		if page > 0 {
			if err := utils.Sleep(ctx, c.cfg.RequestDelay); err != nil {
				return nil, err
			}
		}

		var response metadomain.InsightsResponse
		if err := c.get(ctx, "insights", accessToken, next, &response); err != nil {
			return nil, err
		}

		insights = append(insights, response.Data...)
		next = nextPage(response.Paging)
	}

	return insights, nil
}

func (c *MetaClient) GetAds(ctx context.Context, accessToken, accountID string) ([]metadomain.Ad, error) {
	query := url.Values{}
	query.Set("fields", metadomain.CreativeFields)
	query.Set("limit", strconv.Itoa(c.cfg.PageLimit))

	next := fmt.Sprintf("%s/%s/ads?%s", c.cfg.URL, AccountPath(accountID), query.Encode())

	ads := make([]metadomain.Ad, 0)
	for page := 0; next != ""; page++ {
		if page > 0 {
			if err := utils.Sleep(ctx, c.cfg.RequestDelay); err != nil {
				return nil, err
			}
		}

		var response metadomain.AdsResponse
		if err := c.get(ctx, "ads", accessToken, next, &response); err != nil {
			return nil, err
		}

		ads = append(ads, response.Data...)
		next = nextPage(response.Paging)
	}

	return ads, nil
}

// get envia o token no header Authorization; o paging.next do Meta repete
// o access_token na URL, por isso ele é removido antes da requisição
func (c *MetaClient) get(ctx context.Context, op, accessToken, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, withoutAccessToken(requestURL), nil)
	if err != nil {
		return errors.Wrap(redactURL(err), "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformMeta, Op: op, Err: errors.Wrap(redactURL(err), "erro ao executar a requisição")}
	}
	defer resp.Body.Close()

	body, err := HandleResponse(op, resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{Platform: domain.PlatformMeta, Op: op, Err: errors.Wrap(err, "erro ao decodificar a resposta")}
	}

	return nil
}

// HandleResponse lê a resposta e converte status não 2xx em UpstreamError,
// marcando token expirado quando o Meta indicar
func HandleResponse(op string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Platform: domain.PlatformMeta, Op: op, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "erro ao ler resposta")}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	upstreamErr := &domain.UpstreamError{
		Platform:   domain.PlatformMeta,
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	var errorResp metadomain.ErrorResponse
	if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Code != 0 {
		upstreamErr.Body = errorResp.Error.Message
		upstreamErr.TokenExpired = errorResp.IsTokenExpired()
		if errorResp.IsRateLimited() {
			logrus.Warnf("Meta rate limit atingido. Código: %d, Subcódigo: %d", errorResp.Error.Code, errorResp.Error.ErrorSubcode)
		}
	} else if metadomain.ContainsTokenExpirationMessage(string(body)) {
		upstreamErr.TokenExpired = true
	}

	if upstreamErr.TokenExpired {
		logrus.Warnf("Token expirado detectado pela API Meta. Status: %d", resp.StatusCode)
	}

	return nil, upstreamErr
}

func nextPage(p *metadomain.Paging) string {
	if p == nil {
		return ""
	}
	return p.Next
}

func withoutAccessToken(requestURL string) string {
	u, err := url.Parse(requestURL)
	if err != nil {
		return requestURL
	}
	query := u.Query()
	if !query.Has("access_token") {
		return requestURL
	}
	query.Del("access_token")
	u.RawQuery = query.Encode()
	return u.String()
}

// redactURL tira a query string de erros de transporte, que pode carregar
// tokens e o app secret
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := *urlErr
	redacted.URL = ""
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		u.Fragment = ""
		redacted.URL = u.String()
	}
	return &redacted
}
