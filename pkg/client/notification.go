package client

import "net/url"

// NotificationClient is a typed client for the notifications service API.
type NotificationClient struct {
	httpClient *HttpClient
}

func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *NotificationClient) ListForUser(userID string, unreadOnly bool) (*Response, error) {
	path := "/api/v1/notifications/user/" + url.PathEscape(userID)
	if unreadOnly {
		path += "?unread=true"
	}
	return c.httpClient.GET(path)
}

func (c *NotificationClient) MarkRead(id string) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/notifications/id/"+url.PathEscape(id)+"/read", nil)
}
