package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/anki-tools/anki-sheets/cards"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.metadata.readonly"
)

// authorize returns an HTTP client for the Google APIs. A service account key is used directly,
// an OAuth2 client ID requires the tokens saved by the 'authorise' command.
func authorize(credentials, tokens string, scopes ...string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read credentials file (%v)", cards.ErrAuthentication, err)
	}

	if isServiceAccount(b) {
		config, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid service account credentials (%v)", cards.ErrAuthentication, err)
		}

		return config.Client(context.Background()), nil
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid OAuth2 credentials (%v)", cards.ErrAuthentication, err)
	}

	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: missing or invalid tokens file %s - run '%s authorise' (%v)", cards.ErrAuthentication, tokens, APP, err)
	}

	return config.Client(context.Background(), token), nil
}

func isServiceAccount(credentials []byte) bool {
	var key struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(credentials, &key); err != nil {
		return false
	}

	return key.Type == "service_account"
}

// tokensFile returns the default tokens file for a credentials file e.g. <workdir>/credentials.tokens
func tokensFile(workdir, credentials string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(workdir, fmt.Sprintf("%s.tokens", name))
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%v)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
