package shipping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-service/internal/model"
)

// Client talks to the OzonExpress carrier API
type Client struct {
	BaseURL    string
	CustomerID string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new OzonExpress client instance
func NewClient(baseURL, customerID, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		CustomerID: customerID,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// parcelProduct is the item reference shape the carrier expects
type parcelProduct struct {
	Ref  string `json:"ref"`
	Qnty int    `json:"qnty"`
}

// City is one deliverable city from the carrier's directory
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddParcel pushes an order to the carrier for pickup. The declared value
// is the order total; the parcel nature is the joined product names and
// the order number doubles as the tracking reference.
func (c *Client) AddParcel(order *model.Order) error {
	c.Logger.Info("Sending parcel to OzonExpress",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer", order.CustomerName))

	refs := make([]parcelProduct, 0, len(order.Items))
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		refs = append(refs, parcelProduct{
			Ref:  strconv.FormatUint(uint64(item.ProductID), 10),
			Qnty: item.Quantity,
		})
		names = append(names, item.ProductName)
	}

	products, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encode parcel products: %w", err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"parcel-receiver": order.CustomerName,
		"parcel-phone":    order.CustomerPhone,
		"parcel-city":     order.ShippingAddress.City,
		"parcel-address":  order.ShippingAddress.Address,
		"parcel-note":     order.ShippingAddress.Note,
		"parcel-price":    strconv.FormatFloat(order.TotalAmount, 'f', 2, 64),
		"parcel-nature":   strings.Join(names, ", "),
		"parcel-stock":    "0",
		"tracking-number": order.OrderNumber,
		"products":        string(products),
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return fmt.Errorf("write parcel field %s: %w", key, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finalize parcel form: %w", err)
	}

	url := fmt.Sprintf("%s/customers/%s/%s/add-parcel", c.BaseURL, c.CustomerID, c.APIKey)
	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("create parcel request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Parcel request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		c.Logger.Error("Carrier rejected parcel",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(respBody)))
		return fmt.Errorf("carrier rejected parcel: %d %s", resp.StatusCode, string(respBody))
	}

	c.Logger.Info("Parcel accepted by carrier",
		zap.String("order_number", order.OrderNumber),
		zap.Int("status", resp.StatusCode))
	return nil
}

// Cities fetches the carrier's deliverable city directory. The carrier
// returns {"CITIES": {"<key>": {"ID": ..., "NAME": ...}}}.
func (c *Client) Cities() ([]City, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/cities")
	if err != nil {
		c.Logger.Error("Cities request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cities request failed: %d", resp.StatusCode)
	}

	var payload struct {
		Cities map[string]struct {
			ID   string `json:"ID"`
			Name string `json:"NAME"`
		} `json:"CITIES"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.Logger.Error("Failed to parse cities response", zap.Error(err))
		return nil, err
	}

	cities := make([]City, 0, len(payload.Cities))
	for _, city := range payload.Cities {
		cities = append(cities, City{ID: city.ID, Name: city.Name})
	}
	return cities, nil
}
