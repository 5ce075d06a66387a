// internal/app/system/authn/remover.go
package authn

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// AccountClient removes identity-provider accounts through the provider's
// admin API. Callers treat failures as best-effort: they are logged, never
// propagated, and never retried here.
type AccountClient struct {
	http *resty.Client
}

// NewAccountClient builds the admin client against baseURL, authenticating
// with the given admin token.
func NewAccountClient(baseURL, adminToken string) *AccountClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(adminToken).
		SetRetryCount(0)
	return &AccountClient{http: client}
}

// RemoveAccount deletes the provider account for userID.
func (c *AccountClient) RemoveAccount(ctx context.Context, userID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("userId", userID).
		Delete("/accounts/{userId}")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("account removal: provider returned %s", resp.Status())
	}
	return nil
}

// NopAccountRemover is used when no admin endpoint is configured; account
// cleanup is then the provider's own responsibility.
type NopAccountRemover struct{}

func (NopAccountRemover) RemoveAccount(context.Context, string) error { return nil }
