package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"adminhub/internal/logging"
)

const defaultBaseURL = "http://localhost:8080"

var log = logging.New(os.Stderr, zerolog.InfoLevel, true)

type tokenData struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func main() {
	global := flag.NewFlagSet("adminhub", flag.ExitOnError)
	baseURL := global.String("api", envOr("ADMINHUB_API_URL", defaultBaseURL), "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("parse flags")
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "taxonomy":
		handleTaxonomy(ctx, client, *baseURL, *tokenPath, sub)
	case "normalize":
		handleNormalize(ctx, client, *baseURL, *tokenPath, args[1:])
	case "export":
		handleExport(ctx, client, *baseURL, *tokenPath, args[1:])
	case "exports":
		handleExports(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "live":
		handleLive(*baseURL, *tokenPath, sub)
	case "health":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, *baseURL+"/ready", "", nil, &resp); err != nil {
			log.Fatal().Err(err).Msg("health check failed")
		}
		printJSON(resp)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", os.Getenv("ADMINHUB_OPERATOR_PASSWORD"), "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal().Msg("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp tokenData
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		if err := saveToken(tokenPath, resp); err != nil {
			log.Fatal().Err(err).Msg("save token")
		}
		fmt.Printf("logged in, token valid until %s\n", resp.ExpiresAt)
	case "logout":
		if token, err := readToken(tokenPath); err == nil && token != "" {
			if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/logout", token, nil, nil); err != nil {
				log.Warn().Err(err).Msg("server logout failed, removing local token anyway")
			}
		}
		if err := clearToken(tokenPath); err != nil {
			log.Fatal().Err(err).Msg("logout failed")
		}
		fmt.Println("logged out")
	case "me":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/auth/me", mustToken(tokenPath), nil, &resp); err != nil {
			log.Fatal().Err(err).Msg("me failed")
		}
		printJSON(resp)
	default:
		log.Fatal().Msg("usage: adminhub auth <login|logout|me>")
	}
}

func handleTaxonomy(ctx context.Context, client *http.Client, baseURL, tokenPath, domain string) {
	if domain == "" {
		log.Fatal().Msg("usage: adminhub taxonomy <orders|disputes|reviews>")
	}
	var resp map[string]any
	endpoint := baseURL + "/api/taxonomy/" + url.PathEscape(domain)
	if err := doJSON(ctx, client, http.MethodGet, endpoint, mustToken(tokenPath), nil, &resp); err != nil {
		log.Fatal().Err(err).Msg("taxonomy failed")
	}
	printJSON(resp)
}

type screenFlags struct {
	domain *string
	in     *string
	period *string
	tab    *string
}

func newScreenFlags(fs *flag.FlagSet) screenFlags {
	return screenFlags{
		domain: fs.String("domain", "orders", "orders, disputes or reviews"),
		in:     fs.String("in", "", "raw JSON payload file"),
		period: fs.String("period", "", `period label, e.g. "Last Month"`),
		tab:    fs.String("tab", "", "status tab"),
	}
}

func (f screenFlags) endpoint(baseURL, action string) string {
	qv := url.Values{}
	if *f.period != "" {
		qv.Set("period", *f.period)
	}
	if *f.tab != "" {
		qv.Set("tab", *f.tab)
	}
	u := baseURL + "/api/" + url.PathEscape(*f.domain) + "/" + action
	if len(qv) > 0 {
		u += "?" + qv.Encode()
	}
	return u
}

func (f screenFlags) payload() json.RawMessage {
	if *f.in == "" {
		log.Fatal().Msg("-in is required")
	}
	b, err := os.ReadFile(*f.in)
	if err != nil {
		log.Fatal().Err(err).Msg("read payload")
	}
	if !json.Valid(b) {
		log.Fatal().Str("file", *f.in).Msg("payload is not valid JSON")
	}
	return b
}

func handleNormalize(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	sf := newScreenFlags(fs)
	_ = fs.Parse(args)

	var resp map[string]any
	if err := doJSON(ctx, client, http.MethodPost, sf.endpoint(baseURL, "normalize"), mustToken(tokenPath), sf.payload(), &resp); err != nil {
		log.Fatal().Err(err).Msg("normalize failed")
	}
	printJSON(resp)
}

func handleExport(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	sf := newScreenFlags(fs)
	headers := fs.String("headers", "", "comma-separated column titles")
	out := fs.String("out", "", "output CSV path (default: the server's file name)")
	_ = fs.Parse(args)

	body := map[string]any{"payload": sf.payload()}
	if *headers != "" {
		var hs []string
		for _, h := range strings.Split(*headers, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hs = append(hs, h)
			}
		}
		body["headers"] = hs
	}

	csvData, filename, err := postForFile(ctx, client, sf.endpoint(baseURL, "export"), mustToken(tokenPath), body)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	path := *out
	if path == "" {
		path = filename
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir")
	}
	if err := os.WriteFile(path, csvData, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write csv")
	}
	fmt.Printf("wrote %s\n", path)
}

func handleExports(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "list", "":
		fs := flag.NewFlagSet("exports list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "max rows")
		_ = fs.Parse(args)

		var resp map[string]any
		endpoint := fmt.Sprintf("%s/api/exports?limit=%d", baseURL, *limit)
		if err := doJSON(ctx, client, http.MethodGet, endpoint, mustToken(tokenPath), nil, &resp); err != nil {
			log.Fatal().Err(err).Msg("list exports failed")
		}
		printJSON(resp)
	default:
		log.Fatal().Msg("usage: adminhub exports list [-limit N]")
	}
}

func handleLive(baseURL, tokenPath, sub string) {
	if sub != "listen" {
		log.Fatal().Msg("usage: adminhub live listen")
	}
	wsURL, err := websocketURL(baseURL, "/ws")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid base url")
	}
	header := http.Header{"Authorization": []string{"Bearer " + mustToken(tokenPath)}}
	for {
		if err := runWebSocket(wsURL, header); err != nil {
			log.Warn().Err(err).Msg("live feed disconnected")
		}
		time.Sleep(time.Second) // reconnect
	}
}

func runWebSocket(wsURL string, header http.Header) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info().Str("url", wsURL).Msg("connected to live feed")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var v any
		if json.Unmarshal(msg, &v) == nil {
			printJSON(v)
			continue
		}
		fmt.Println(string(msg))
	}
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	data, _, err := do(ctx, client, method, endpoint, token, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// postForFile returns the response body and the file name the server
// suggested in Content-Disposition.
func postForFile(ctx context.Context, client *http.Client, endpoint, token string, payload any) ([]byte, string, error) {
	data, header, err := do(ctx, client, http.MethodPost, endpoint, token, payload)
	if err != nil {
		return nil, "", err
	}
	filename := "export.csv"
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, after, ok := strings.Cut(cd, `filename="`); ok {
			filename = filepath.Base(strings.TrimSuffix(after, `"`))
		}
	}
	return data, filename, nil
}

func do(ctx context.Context, client *http.Client, method, endpoint, token string, payload any) ([]byte, http.Header, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	return data, resp.Header, nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("json")
	}
	fmt.Println(string(b))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.adminhub-token.json"
	}
	return filepath.Join(home, ".adminhub", "token.json")
}

func saveToken(path string, td tokenData) error {
	if td.Token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(td, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatal().Err(err).Msg("token not found, please login")
	}
	if token == "" {
		log.Fatal().Msg("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("adminhub [-api URL] [-token PATH] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout|me")
	fmt.Println("  taxonomy <orders|disputes|reviews>")
	fmt.Println("  normalize -domain D -in FILE [-period P] [-tab T]")
	fmt.Println("  export -domain D -in FILE [-period P] [-tab T] [-headers H] [-out FILE]")
	fmt.Println("  exports list [-limit N]")
	fmt.Println("  live listen")
	fmt.Println("  health")
}
