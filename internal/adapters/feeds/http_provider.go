// Package feeds implements the feed provider port for OAuth2
// client-credentials bank and payment-gateway APIs.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fxledger/fxledger/internal/core/ports/providers"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// feedCredentials is the decrypted JSON a connection's credential handle
// seals. Each connection enrolls with its own gateway endpoints.
type feedCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	TokenURL     string `json:"tokenUrl"`
	APIURL       string `json:"apiUrl"`
}

func (c *feedCredentials) validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("missing client credentials")
	}
	if c.TokenURL == "" || c.APIURL == "" {
		return errors.New("missing gateway endpoints")
	}
	return nil
}

// HTTPFeedProvider fetches vendor records from gateways that speak OAuth2
// client-credentials. Credentials arrive as sealed handles and are opened
// per fetch; plaintext never outlives the call.
type HTTPFeedProvider struct {
	secrets providers.SecretStore
	timeout time.Duration
}

// NewHTTPFeedProvider builds a provider. The timeout bounds the whole fetch,
// token exchange included.
func NewHTTPFeedProvider(secrets providers.SecretStore, timeout time.Duration) *HTTPFeedProvider {
	return &HTTPFeedProvider{secrets: secrets, timeout: timeout}
}

var _ providers.FeedProvider = (*HTTPFeedProvider)(nil)

// FetchTransactions pulls every vendor record for the account since the
// given instant. Failures map onto the fetch kinds the ingestion policy
// keys on: credential problems are Auth, outages and timeouts Transient,
// undecodable payloads Malformed.
func (p *HTTPFeedProvider) FetchTransactions(ctx context.Context, bankID, credentialHandle string, since time.Time) ([]providers.VendorRecord, error) {
	plaintext, err := p.secrets.Open(ctx, credentialHandle)
	if err != nil {
		return nil, providers.NewAuthError("failed to open credential handle", err)
	}

	var creds feedCredentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, providers.NewAuthError("credential payload undecodable", err)
	}
	if err := creds.validate(); err != nil {
		return nil, providers.NewAuthError("credential payload incomplete", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	oauthCfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
	}
	client := oauthCfg.Client(ctx)

	addr := strings.TrimRight(creds.APIURL, "/") + "/transactions?bankId=" + url.QueryEscape(bankID) +
		"&since=" + url.QueryEscape(since.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, providers.NewMalformedError("failed to build feed request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		// Token endpoint rejections surface as RetrieveError inside the
		// transport error chain.
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil &&
			(rerr.Response.StatusCode == http.StatusUnauthorized || rerr.Response.StatusCode == http.StatusForbidden) {
			return nil, providers.NewAuthError("token endpoint rejected credentials", err)
		}
		return nil, providers.NewTransientError("feed request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, providers.NewAuthError(fmt.Sprintf("gateway rejected credentials with status %s", resp.Status), nil)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, providers.NewTransientError(fmt.Sprintf("gateway returned status %s", resp.Status), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, providers.NewMalformedError(fmt.Sprintf("unexpected gateway status %s", resp.Status), nil)
	}

	// UseNumber keeps vendor amounts as json.Number so the normalizer can
	// parse them without float64 rounding.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var records []providers.VendorRecord
	if err := dec.Decode(&records); err != nil {
		return nil, providers.NewMalformedError("feed payload undecodable", err)
	}
	return records, nil
}
