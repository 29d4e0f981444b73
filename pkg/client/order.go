package client

import (
	"fmt"
	"net/url"
)

// OrderClient is a typed client for the orders service API.
type OrderClient struct {
	httpClient *HttpClient
}

func NewOrderClient(baseURL string) *OrderClient {
	return &OrderClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *OrderClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/orders", body)
}

func (c *OrderClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/orders/id/" + url.PathEscape(id))
}

func (c *OrderClient) SetStatus(id string, status string) (*Response, error) {
	path := fmt.Sprintf("/api/v1/orders/id/%s/status", url.PathEscape(id))
	return c.httpClient.PUT(path, map[string]string{"status": status})
}

func (c *OrderClient) ListByVenue(venueID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/orders/venue/" + url.PathEscape(venueID))
}

func (c *OrderClient) ListByCompany(companyID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/orders/company/" + url.PathEscape(companyID))
}

func (c *OrderClient) ListByCustomer(customerID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/orders/customer/" + url.PathEscape(customerID))
}
