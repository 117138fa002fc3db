package client

import (
	"context"
	"fmt"
	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	logger "github.com/sirupsen/logrus"
	"net/http"
	"strings"
	"time"
)

type Metadata struct {
	req *req.Client
}

type accountRange struct {
	AccountRangeHigh string `json:"account_range_high"`
	AccountRangeLow  string `json:"account_range_low"`
	Brand            string `json:"brand"`
	PANLength        int    `json:"pan_length"`
}

var brandMap = map[string]entity.CardBrand{
	"VISA":             entity.BrandVisa,
	"MASTERCARD":       entity.BrandMastercard,
	"AMERICAN_EXPRESS": entity.BrandAmex,
	"DISCOVER":         entity.BrandDiscover,
	"DINERS_CLUB":      entity.BrandDinersClub,
	"JCB":              entity.BrandJCB,
	"UNIONPAY":         entity.BrandUnionPay,
}

func NewMetadata(addr, key string, timeout time.Duration) *Metadata {
	return &Metadata{
		req: req.C().
			SetBaseURL(addr).
			SetCommonBearerAuthToken(key).
			SetTimeout(timeout),
	}
}

// GetBINRanges запрашивает у сервиса метаданных карт диапазоны BIN для префикса.
// Ответ с кодом 404 означает, что диапазонов для префикса нет. При ответе с кодом
// 429 выполняет повторный запрос через секунду.
func (c *Metadata) GetBINRanges(ctx context.Context, prefix string) ([]entity.BINRange, error) {
	respBody := struct {
		Data []accountRange `json:"data"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetRetryCount(2).
		SetRetryFixedInterval(time.Second).
		SetRetryCondition(func(resp *req.Response, err error) bool {
			return err == nil && resp.StatusCode == http.StatusTooManyRequests
		}).
		SetSuccessResult(&respBody).
		SetQueryParam("bin_prefix", prefix).
		Get("/edge-internal/card-metadata")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return []entity.BINRange{}, nil
	}

	if resp.IsErrorState() {
		return nil, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	ranges := make([]entity.BINRange, 0, len(respBody.Data))
	for _, r := range respBody.Data {
		b, ok := brandMap[r.Brand]
		if !ok {
			b = entity.BrandUnknown
		}

		prefixes := splitRange(r.AccountRangeLow, r.AccountRangeHigh)
		if len(prefixes) == 0 {
			logger.WithFields(logger.Fields{
				"prefix": prefix,
				"low":    r.AccountRangeLow,
				"high":   r.AccountRangeHigh,
			}).Warn("некорректный диапазон в ответе сервиса метаданных")

			continue
		}

		for _, p := range prefixes {
			ranges = append(ranges, entity.BINRange{
				Prefix:    p,
				PANLength: r.PANLength,
				Brand:     b,
			})
		}
	}

	return ranges, nil
}

// splitRange представляет диапазон номеров [low, high] набором префиксов, которые
// покрывают ровно этот диапазон. Например, 6221260...0 - 6221289...9 дает 622126,
// 622127, 622128. Для некорректного диапазона возвращает nil.
func splitRange(low, high string) []string {
	if low == "" || len(low) != len(high) || !isDigits(low) || !isDigits(high) || low > high {
		return nil
	}

	p := commonPrefix(low, high)
	if p == low {
		return []string{p}
	}

	restLow, restHigh := low[len(p):], high[len(p):]
	if strings.Trim(restLow, "0") == "" && strings.Trim(restHigh, "9") == "" {
		return []string{p}
	}

	var (
		a, b     = restLow[0], restHigh[0]
		tail     = len(restLow) - 1
		prefixes = splitRange(low, p+string(a)+strings.Repeat("9", tail))
	)
	for d := a + 1; d < b; d++ {
		prefixes = append(prefixes, p+string(d))
	}

	return append(prefixes, splitRange(p+string(b)+strings.Repeat("0", tail), high)...)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func commonPrefix(low, high string) string {
	n := 0
	for n < len(low) && n < len(high) && low[n] == high[n] {
		n++
	}

	return low[:n]
}
