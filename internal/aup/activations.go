package internal

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minsulander/vatiris/pkg/aup"
)

// One feed entry as shown in the AUP window of the dashboard.
type ActivationItem struct {
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	From       string `json:"from"`
	To         string `json:"to"`
	FL         string `json:"fl"`
	Overridden bool   `json:"overridden"`
}

type Activations struct {
	Lara []ActivationItem `json:"lara"`
	LFV  []ActivationItem `json:"lfv"`
}

// ActivationsView summarizes both feeds for the dashboard. A failed side
// degrades to an empty list, never to an error.
func (s *Service) ActivationsView(ctx context.Context) Activations {
	activations := Activations{
		Lara: []ActivationItem{},
		LFV:  []ActivationItem{},
	}

	text, err := s.PeerFeed(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("activations without vLARA feed")
	} else {
		activations.Lara = peerItems(aup.SplitFeedLines(text))
	}

	plan, err := s.Plan(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("activations without LFV use plan")
	} else {
		activations.LFV = restrictionItems(plan.Restrictions, s.Overrides(ctx))
	}

	return activations
}

// peerItems decodes vLARA TopSky lines for display. The dummy placeholder is
// only shown when the feed carries no real entries.
func peerItems(lines []string) []ActivationItem {
	items := []ActivationItem{}
	for _, line := range aup.DataLines(lines) {
		parts := strings.Split(line, ":")
		if parts[0] == "VLARA" {
			continue
		}
		items = append(items, ActivationItem{
			Name:   parts[0],
			Active: true,
			From:   displayTime(field(parts, 4)),
			To:     displayTime(field(parts, 5)),
			FL:     field(parts, 7),
		})
	}

	if len(items) == 0 {
		for _, line := range lines {
			if strings.HasPrefix(line, "VLARA:") {
				items = append(items, ActivationItem{
					Name:   "VLARA",
					Active: true,
					FL:     field(strings.Split(line, ":"), 7),
				})
				break
			}
		}
	}

	return items
}

func restrictionItems(restrictions []aup.Restriction, overrides map[string]bool) []ActivationItem {
	items := make([]ActivationItem, 0, len(restrictions))
	for _, r := range restrictions {
		active := true
		overridden := false
		if v, ok := overrides[r.Name]; ok {
			active = v
			overridden = true
		}
		items = append(items, ActivationItem{
			Name:       r.Name,
			Active:     active,
			From:       r.From.UTC().Format(time.RFC3339),
			To:         r.To.UTC().Format(time.RFC3339),
			FL:         r.AltitudeString(),
			Overridden: overridden,
		})
	}
	return items
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// displayTime renders an HHmm feed field as HH:MM.
func displayTime(hhmm string) string {
	if len(hhmm) < 4 {
		return ""
	}
	return hhmm[:2] + ":" + hhmm[2:]
}
