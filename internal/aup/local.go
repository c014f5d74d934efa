package internal

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minsulander/vatiris/pkg/aup"
)

// Local parses an already-extracted use plan text file and prints the TopSky
// lines. No database or upstream needed.
func Local(path string, logLevel zerolog.Level) {
	zerolog.SetGlobalLevel(logLevel)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Msg("failed to read file")
		return
	}

	restrictions := aup.ParseRestrictions(string(data))
	log.Info().Int("restrictions", len(restrictions)).Str("path", path).Msg("parsed use plan")

	for _, r := range restrictions {
		fmt.Println(r.TopSkyLine())
	}
}
