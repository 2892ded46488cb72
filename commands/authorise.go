package commands

import (
	"crypto/rand"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/anki-tools/anki-sheets/cards"
)

var AuthoriseCmd = Authorise{
	command: command{
		config:      DEFAULT_CONFIG,
		workdir:     "",
		credentials: "",
		tokens:      "",
		url:         "",
		debug:       false,
	},
}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises anki-sheets to access Google Sheets with an OAuth2 client ID"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises anki-sheets to access Google Sheets and Google Drive, saving the OAuth2 tokens")
	fmt.Println("  to the working directory. Not required when the credentials are a service account key.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    anki-sheets authorise --credentials "credentials.json" --workdir ".google"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	config, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	cmd.merge(config)

	b, err := os.ReadFile(cmd.credentials)
	if err != nil {
		return fmt.Errorf("%w: unable to read credentials file (%v)", cards.ErrAuthentication, err)
	}

	if isServiceAccount(b) {
		infof("%s is a service account key - no authorisation required", cmd.credentials)
		return nil
	}

	oauth, err := google.ConfigFromJSON(b, SHEETS, DRIVE)
	if err != nil {
		return fmt.Errorf("%w: invalid OAuth2 credentials (%v)", cards.ErrAuthentication, err)
	}

	tokens := cmd.tokens
	if tokens == "" {
		tokens = tokensFile(cmd.workdir, cmd.credentials)
	}

	token, err := cmd.getTokenFromWeb(oauth)
	if err != nil {
		return fmt.Errorf("%w: %v", cards.ErrAuthentication, err)
	}

	if err := saveToken(tokens, token); err != nil {
		return err
	}

	infof("Saved OAuth2 tokens to %s", tokens)

	return nil
}

// getTokenFromWeb starts an HTTP server on a loopback port to receive the OAuth2 redirect,
// waits for the user to authorise access in a browser and exchanges the authorisation code
// for a token.
func (cmd *Authorise) getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("unable to start local HTTP server (%v)", err)
	}

	state := rand.Text()
	authorised := make(chan string, 1)

	config.RedirectURL = fmt.Sprintf("http://localhost:%d/", listener.Addr().(*net.TCPAddr).Port)

	srv := &http.Server{
		Handler: callback(state, authorised),
	}

	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Printf("Go to the following link in your browser to authorise %s:\n%v\n", APP, config.AuthCodeURL(state, oauth2.AccessTypeOffline))

	select {
	case <-interrupt:
		return nil, fmt.Errorf("authorisation cancelled")

	case code := <-authorised:
		token, err := config.Exchange(context.TODO(), code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from web (%v)", err)
		}

		return token, nil
	}
}

// callback handles the OAuth2 redirect, passing on the authorisation code if the state matches.
func callback(state string, authorised chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "invalid OAuth2 state", http.StatusBadRequest)
			return
		}

		if e := rq.FormValue("error"); e != "" {
			warnf("authorisation declined (%v)", e)
			http.Error(w, fmt.Sprintf("authorisation declined (%v)", e), http.StatusForbidden)
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, "missing authorisation code", http.StatusBadRequest)
			return
		}

		select {
		case authorised <- code:
		default:
		}

		fmt.Fprintf(w, "%s authorised - you can close this window\n", APP)
	}
}
