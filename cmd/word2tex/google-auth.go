package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// readCredentials reads an oauth client secret file as downloaded from the
// google cloud console. Files ending in .encrypted are decrypted with a
// password read from the terminal.
func readCredentials(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no oauth client credentials given, use --credentials or WORD2TEX_CREDENTIALS")
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading oauth credentials: %w", err)
	}

	if strings.HasSuffix(path, encryptedSuffix) {
		key, err := promptKey()
		if err != nil {
			return nil, err
		}
		buf, err = decrypt(buf, key)
		if err != nil {
			return nil, fmt.Errorf("error decrypting %s: %w", path, err)
		}
	}
	return buf, nil
}

// defaultTokenFile is where oauth tokens are cached between runs
func defaultTokenFile(name string) string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = ".cache"
	}
	return filepath.Join(dir, "word2tex", name)
}

// Read a token from a local file.
func readToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tok oauth2.Token
	err = json.NewDecoder(f).Decode(&tok)
	if err != nil {
		return nil, err
	}

	return &tok, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

// googleTokenSource runs the oauth flow in the user's browser, receiving the
// callback on a local port
type googleTokenSource struct {
	ctx     context.Context
	config  *oauth2.Config
	tokFile string
}

func (ts googleTokenSource) Token() (*oauth2.Token, error) {
	log := zerolog.Ctx(ts.ctx)

	// pick an unused port to listen on
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, fmt.Errorf("error opening a TCP port to receive the oauth callback: %w", err)
	}

	// the http server below will populate this with the authentication code from the callback
	var authCode string

	var server http.Server
	server = http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				log.Debug().Str("path", r.URL.Path).Msg("oauth server ignoring request")
				return
			}

			authCode = r.URL.Query().Get("code")
			fmt.Fprintf(w, "word2tex is authenticated. You may now close this page and return to the terminal.")

			// server.Serve below returns as soon as the shutdown begins
			go server.Shutdown(context.Background())
		}),
	}

	// open the user's browser to the oauth screen
	ts.config.RedirectURL = fmt.Sprintf("http://localhost:%d/", listener.Addr().(*net.TCPAddr).Port)
	authURL := ts.config.AuthCodeURL("state-token")
	err = browser.OpenURL(authURL)
	if err != nil {
		fmt.Println("Go to the following link in your browser:\n" + authURL)
	}

	err = server.Serve(listener)
	if err != nil && err != http.ErrServerClosed {
		return nil, fmt.Errorf("error running HTTP server to get oauth callback: %w", err)
	}

	if authCode == "" {
		return nil, errors.New("there was no auth code in the callback from oauth flow")
	}

	tok, err := ts.config.Exchange(ts.ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("error retrieving token from web: %w", err)
	}

	// save the token so that next time we might not have to go through the flow
	if ts.tokFile != "" {
		log.Debug().Str("token", ts.tokFile).Msg("storing token")
		err = saveToken(ts.tokFile, tok)
		if err != nil {
			return nil, fmt.Errorf("error saving token to file: %w", err)
		}
	}

	return tok, nil
}

// GoogleAuth authenticates with Google using oauth
func GoogleAuth(ctx context.Context, credentials []byte, tokFile string, scopes ...string) (oauth2.TokenSource, error) {
	config, err := google.ConfigFromJSON(credentials, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	var ts oauth2.TokenSource = googleTokenSource{
		ctx:     ctx,
		config:  config,
		tokFile: tokFile,
	}

	// a cached token is used while it is still valid
	tok, err := readToken(tokFile)
	if err == nil {
		zerolog.Ctx(ctx).Debug().Str("token", tokFile).Msg("reusing token")
		ts = oauth2.ReuseTokenSource(tok, ts)
	}

	return ts, nil
}
