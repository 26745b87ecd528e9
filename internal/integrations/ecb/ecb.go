package ecb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/irpf-calculator/internal/config"
	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// ECBClient fetches euro reference rates published daily by the European Central Bank
type ECBClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

// NewECBClient initializes a new ECB client
func NewECBClient(cfg *config.Config, log *logrus.Logger) *ECBClient {
	return &ECBClient{
		url: cfg.ECBURL,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		log: log,
		now: time.Now,
	}
}

// sendRequest downloads the reference rate document
func (c *ECBClient) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the USD and GBP rates from the eurofxref document
func (c *ECBClient) parseXMLResponse(rawBody []byte) (*models.ExchangeRates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	day := doc.FindElement("//Cube[@time]")
	if day == nil {
		return nil, fmt.Errorf("no rate date found in XML")
	}

	date, err := time.Parse("2006-01-02", day.SelectAttrValue("time", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate date: %w", err)
	}

	rates := &models.ExchangeRates{Date: date, FetchedAt: c.now().UTC()}
	if rates.EURUSD, err = findRate(day, "USD"); err != nil {
		return nil, err
	}
	if rates.EURGBP, err = findRate(day, "GBP"); err != nil {
		return nil, err
	}

	return rates, nil
}

func findRate(day *etree.Element, code string) (float64, error) {
	cube := day.FindElement(fmt.Sprintf("./Cube[@currency='%s']", code))
	if cube == nil {
		return 0, fmt.Errorf("rate for %s not found in XML", code)
	}

	rate, err := strconv.ParseFloat(cube.SelectAttrValue("rate", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s rate: %w", code, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("invalid %s rate: %v", code, rate)
	}
	return rate, nil
}

// FetchRates retrieves the latest EUR reference rates
func (c *ECBClient) FetchRates(ctx context.Context) (*models.ExchangeRates, error) {
	body, err := c.sendRequest(ctx)
	if err != nil {
		return nil, err
	}

	rates, err := c.parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"date":    rates.Date.Format("2006-01-02"),
		"eur_usd": rates.EURUSD,
		"eur_gbp": rates.EURGBP,
	}).Info("Retrieved ECB reference rates")
	return rates, nil
}
