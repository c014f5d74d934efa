package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minsulander/vatiris/pkg/aup"
)

type Config struct {
	FIR         string
	ReportURL   string
	PeerURL     string
	DatabaseURL string
	Addr        string
	PlanTTL     time.Duration
	MergeTTL    time.Duration
}

func ConfigFromEnv() Config {
	config := Config{
		FIR:         "esaa",
		ReportURL:   os.Getenv("VATIRIS_AUP_REPORT_URL"),
		PeerURL:     "https://lara-backend.lusep.fi",
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Addr:        ":8000",
		PlanTTL:     60 * time.Minute,
		MergeTTL:    5 * time.Minute,
	}

	if v := os.Getenv("VATIRIS_FIR"); v != "" {
		config.FIR = v
	}
	if v := os.Getenv("VATIRIS_VLARA_URL"); v != "" {
		config.PeerURL = v
	}
	if v := os.Getenv("VATIRIS_HTTP_ADDR"); v != "" {
		config.Addr = v
	}
	if v, err := strconv.Atoi(os.Getenv("VATIRIS_AUP_TTL_MINUTES")); err == nil && v > 0 {
		config.PlanTTL = time.Duration(v) * time.Minute
	}
	if v, err := strconv.Atoi(os.Getenv("VATIRIS_MERGE_TTL_MINUTES")); err == nil && v > 0 {
		config.MergeTTL = time.Duration(v) * time.Minute
	}

	return config
}

// UsePlan is one parsed daily use plan publication.
type UsePlan struct {
	Restrictions []aup.Restriction `json:"restrictions"`
	ReportDate   string            `json:"reportDate,omitempty"`
	FetchedAt    time.Time         `json:"fetchedAt"`
}

type Service struct {
	config  Config
	client  *http.Client
	store   *OverrideStore
	health  *Health
	reports ReportSource
	plan    *cache[*UsePlan]
	merged  *cache[string]
	now     func() time.Time
}

func NewService(config Config, store *OverrideStore) *Service {
	client := &http.Client{Timeout: 15 * time.Second}

	return &Service{
		config:  config,
		client:  client,
		store:   store,
		health:  NewHealth(),
		reports: &httpReportSource{url: config.ReportURL, client: client},
		plan:    newCache[*UsePlan](config.PlanTTL),
		merged:  newCache[string](config.MergeTTL),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var reportDateRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Plan returns the parsed use plan, refetching when the cached one has gone
// stale. The report is published once per operational day, hence the long
// TTL.
func (s *Service) Plan(ctx context.Context) (*UsePlan, error) {
	now := s.now()
	if plan, ok := s.plan.fresh(now); ok {
		return plan, nil
	}

	text, err := s.reports.FetchReport(ctx)
	if err != nil {
		s.health.ReportFetchErrors.Inc()
		return nil, fmt.Errorf("failed to fetch use plan report: %w", err)
	}
	s.health.ReportFetches.Inc()

	restrictions := aup.ParseRestrictionsAt(text, now)
	s.health.Restrictions.Set(float64(len(restrictions)))

	reportDate := reportDateRegex.FindString(text)
	if reportDate != "" && reportDate != now.Format("2006-01-02") {
		log.Warn().Str("report_date", reportDate).Msg("use plan report date is not today")
	}

	plan := &UsePlan{
		Restrictions: restrictions,
		ReportDate:   reportDate,
		FetchedAt:    now,
	}
	s.plan.store(plan, now)

	return plan, nil
}

// PeerFeed returns the raw vLARA TopSky document for the configured FIR.
func (s *Service) PeerFeed(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/topsky/%s.txt", s.config.PeerURL, s.config.FIR)

	text, err := httpGetText(ctx, s.client, url)
	if err != nil {
		s.health.PeerFetchErrors.Inc()
		return "", fmt.Errorf("failed to fetch vLARA feed: %w", err)
	}
	s.health.PeerFetches.Inc()

	return text, nil
}

// Overrides reads today's operator overrides, treating any storage failure
// as "no overrides". The feed must keep publishing without them.
func (s *Service) Overrides(ctx context.Context) map[string]bool {
	overrides, err := s.store.Overrides(ctx, s.config.FIR)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read overrides")
		return map[string]bool{}
	}
	return overrides
}
