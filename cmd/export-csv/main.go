package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/internal/exports"
	"adminhub/internal/logging"
	"adminhub/internal/normalize"
	"adminhub/internal/storage"
	"adminhub/pkg/database"
	"adminhub/pkg/models"
	"adminhub/pkg/utils"
)

type options struct {
	domain   string
	in       string
	period   string
	tab      string
	headers  string
	out      string
	operator string
}

func main() {
	var opts options
	flag.StringVar(&opts.domain, "domain", "orders", "orders, disputes or reviews")
	flag.StringVar(&opts.in, "in", "", "raw JSON dump (array or API envelope)")
	flag.StringVar(&opts.period, "period", "All time", `period label, e.g. "Last Month"`)
	flag.StringVar(&opts.tab, "tab", "", "status tab (default all)")
	flag.StringVar(&opts.headers, "headers", "", "comma-separated column titles (default: the domain's columns)")
	flag.StringVar(&opts.out, "out", "", "write to this file instead of the configured storage")
	flag.StringVar(&opts.operator, "operator", "", "operator email recorded in the export ledger")
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		l := logging.Init(logging.ParseLevel("info"), false)
		l.Fatal().Err(err).Msg("load config")
	}
	log := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Pretty)

	if opts.in == "" {
		log.Fatal().Msg("-in is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	job, err := run(ctx, cfg, opts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	fmt.Printf("exported %d %s to %s\n", job.Rows, job.Domain, job.Location)
}

func run(ctx context.Context, cfg utils.Config, opts options, log zerolog.Logger) (models.ExportJob, error) {
	q, err := dashboard.ParseQuery(opts.domain, opts.period, opts.tab)
	if err != nil {
		return models.ExportJob{}, err
	}
	if _, ok := normalize.ParsePeriod(opts.period); !ok && opts.period != "" {
		log.Warn().Str("period", opts.period).Msg("unknown period, exporting all time")
	}

	raw, err := os.ReadFile(opts.in)
	if err != nil {
		return models.ExportJob{}, fmt.Errorf("read input: %w", err)
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.ExportJob{}, fmt.Errorf("decode %s: %w", opts.in, err)
	}

	normalizer := normalize.New(
		normalize.WithCurrency(cfg.Normalize.Currency),
		normalize.WithDateLayout(cfg.Normalize.DateLayout),
		normalize.WithLocation(cfg.Normalize.Location()),
	)
	view, err := dashboard.NewService(normalizer).View(q, payload)
	if err != nil {
		return models.ExportJob{}, err
	}

	var buf bytes.Buffer
	if err := view.WriteCSV(&buf, splitHeaders(opts.headers)); err != nil {
		return models.ExportJob{}, fmt.Errorf("write csv: %w", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return models.ExportJob{}, err
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return models.ExportJob{}, err
	}

	// before store: an unknown operator must not leave a file behind
	var operatorID string
	if opts.operator != "" {
		op, err := auth.NewRepo(db).GetByEmail(ctx, opts.operator)
		if err != nil {
			return models.ExportJob{}, err
		}
		if op == nil {
			return models.ExportJob{}, fmt.Errorf("unknown operator %q", opts.operator)
		}
		operatorID = op.ID
	}

	location, err := store(ctx, cfg, opts.out, view.Filename(), &buf)
	if err != nil {
		return models.ExportJob{}, err
	}
	log.Info().Str("domain", string(view.Domain)).Int("rows", view.Total).Str("location", location).Msg("export written")

	job := models.ExportJob{
		OperatorID: operatorID,
		Domain:     string(view.Domain),
		Period:     string(view.Period),
		Tab:        view.Tab,
		Rows:       view.Total,
		Location:   location,
	}
	return exports.NewRepo(db).Record(ctx, job)
}

func store(ctx context.Context, cfg utils.Config, out, filename string, buf *bytes.Buffer) (string, error) {
	if out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", out, err)
		}
		return out, nil
	}

	sink, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		return "", err
	}
	res, err := sink.Storage.Put(ctx, bytes.NewReader(buf.Bytes()), storage.PutInput{Filename: filename, ContentType: "text/csv"})
	if err != nil {
		return "", fmt.Errorf("store export (%s): %w", sink.Driver, err)
	}
	return res.URL, nil
}

func splitHeaders(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
