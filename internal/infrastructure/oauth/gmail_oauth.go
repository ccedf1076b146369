package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

// GmailOAuth builds read-only Gmail credentials for the mailbox data source
type GmailOAuth struct {
	config       *oauth2.Config
	refreshToken string
	logger       logger.Logger
}

// NewGmailOAuth creates a new Gmail OAuth handler. redirectURL is only
// needed when exchanging an authorization code.
func NewGmailOAuth(clientID, clientSecret, refreshToken, redirectURL string, logger logger.Logger) *GmailOAuth {
	return &GmailOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{gmail.GmailReadonlyScope},
		},
		refreshToken: refreshToken,
		logger:       logger,
	}
}

// GetTokenSource returns a token source backed by the refresh token
func (o *GmailOAuth) GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if o.refreshToken == "" {
		return nil, errors.New("gmail refresh token is not configured")
	}
	token := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(), // Force refresh
	}
	return o.config.TokenSource(ctx, token), nil
}

// GenerateAuthURL generates the consent URL for offline access
func (o *GmailOAuth) GenerateAuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a refresh token
func (o *GmailOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	if token.RefreshToken == "" {
		return "", errors.New("no refresh token returned; revoke the previous grant and retry")
	}
	o.logger.Info("Refresh token obtained")
	return token.RefreshToken, nil
}
