package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// tokenFilePath returns the path to the stored token file.
func tokenFilePath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "auth", "msgraph_tokens.json"), nil
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// loadToken loads a previously saved token. A missing file yields nil.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// saveToken atomically persists a token with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Connect returns a Graph client for the signed-in user. It reuses the
// saved token, refreshes it when expired, or runs the device code flow and
// writes the sign-in instructions to prompt.
func Connect(ctx context.Context, tenantID, clientID string, prompt io.Writer) (*Client, error) {
	cfg := oauth2Config(tenantID, clientID)
	path, err := tokenFilePath()
	if err != nil {
		return nil, err
	}

	tok, err := loadToken(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		tok = nil
	}

	if tok != nil && !tok.Valid() && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Token refresh failed (%v), re-authenticating...\n", err)
			tok = nil
		} else {
			tok = refreshed
			if err := saveToken(path, tok); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save refreshed token: %v\n", err)
			}
		}
	}

	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		resp, err := cfg.DeviceAuth(ctx)
		if err != nil {
			return nil, fmt.Errorf("device auth request failed: %w", err)
		}
		fmt.Fprintln(prompt)
		fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
		fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
		fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
		fmt.Fprintln(prompt)

		tok, err = cfg.DeviceAccessToken(ctx, resp)
		if err != nil {
			return nil, fmt.Errorf("device authentication failed: %w", err)
		}
		if err := saveToken(path, tok); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save token: %v\n", err)
		}
	}

	ts := &savingTokenSource{ts: cfg.TokenSource(ctx, tok), path: path}
	return NewClient(oauth2.NewClient(ctx, ts), ""), nil
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	path string
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		// Best effort; a lost token only costs another sign-in.
		_ = saveToken(s.path, tok)
	}
	return tok, nil
}
