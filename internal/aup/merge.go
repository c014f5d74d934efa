package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/minsulander/vatiris/pkg/aup"
)

// Refresh hint for TopSky consumers, in seconds.
const refreshHeader = "REFRESH_INTERVAL:45"

// MergedTopSky returns the unified TopSky document: the vLARA peer feed plus
// the locally parsed use plan filtered by operator overrides. Either upstream
// may be down; the document degrades rather than fails. Only a total outage
// with nothing cached surfaces as an error.
func (s *Service) MergedTopSky(ctx context.Context) (string, error) {
	now := s.now()
	if text, ok := s.merged.fresh(now); ok {
		s.health.MergeCacheHits.Inc()
		return text, nil
	}
	s.health.MergeCacheMisses.Inc()

	var (
		peerLines    []string
		restrictions []aup.Restriction
		overrides    map[string]bool
		peerErr      error
		planErr      error
	)

	// The peer feed and the plan/override reads are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.PeerFeed(gctx)
		if err != nil {
			peerErr = err
			return nil
		}
		peerLines = aup.SplitFeedLines(text)
		return nil
	})
	g.Go(func() error {
		plan, err := s.Plan(gctx)
		if err != nil {
			planErr = err
			return nil
		}
		restrictions = plan.Restrictions
		return nil
	})
	g.Go(func() error {
		overrides = s.Overrides(gctx)
		return nil
	})
	g.Wait()

	if peerErr != nil {
		log.Warn().Err(peerErr).Msg("merging without vLARA feed")
	}
	if planErr != nil {
		log.Warn().Err(planErr).Msg("merging without LFV use plan")
	}
	if peerErr != nil && planErr != nil {
		if text, ok := s.merged.last(); ok {
			return text, nil
		}
		return "", fmt.Errorf("no upstream feed available: %v", peerErr)
	}

	text := mergeFeeds(peerLines, restrictions, overrides)
	s.merged.store(text, now)

	return text, nil
}

// mergeFeeds assembles the output document. Peer lines come before local
// lines; downstream consumers rely on that order. A restriction overridden
// to inactive is suppressed, everything else is published.
func mergeFeeds(peerLines []string, restrictions []aup.Restriction, overrides map[string]bool) string {
	out := refreshHeader + "\n"

	data := aup.DataLines(peerLines)
	if len(data) == 0 {
		data = []string{aup.VLARADummyLine}
	}
	out += strings.Join(data, "\n") + "\n"

	local := []string{}
	for _, r := range restrictions {
		line := r.TopSkyLine()
		name := strings.SplitN(line, ":", 2)[0]
		if active, ok := overrides[name]; ok && !active {
			continue
		}
		local = append(local, line)
	}
	if len(local) > 0 {
		out += strings.Join(local, "\n") + "\n"
	}

	return strings.TrimRight(out, " \t\n")
}
