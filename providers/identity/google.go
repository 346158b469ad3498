package identity

import (
	"context"
	"fmt"

	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Identity is the verified external identity the rest of the app consumes.
// The core only ever sees this struct, never raw OAuth tokens.
type Identity struct {
	GoogleID       string
	Email          string
	FullName       string
	ProfilePicture string
}

type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(c *utils.Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     c.GoogleClientID,
			ClientSecret: c.GoogleClientSecret,
			RedirectURL:  c.GoogleRedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the Google consent page URL for the given state nonce.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token and fetches the user's
// profile from the userinfo endpoint.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	svc, err := goauth2.NewService(ctx, option.WithTokenSource(g.oauth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}

	if info.Id == "" || info.Email == "" {
		return nil, fmt.Errorf("incomplete identity from provider")
	}

	return &Identity{
		GoogleID:       info.Id,
		Email:          info.Email,
		FullName:       info.Name,
		ProfilePicture: info.Picture,
	}, nil
}
