package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverrideStoreWithoutDatabase(t *testing.T) {
	// The store degrades gracefully on reads but surfaces write failures.
	var store *OverrideStore

	_, err := store.Overrides(context.Background(), "esaa")
	assert.ErrorIs(t, err, errNoDatabase)

	err = store.SetOverrides(context.Background(), "esaa", map[string]bool{"ES D123": false})
	assert.ErrorIs(t, err, errNoDatabase)

	err = store.SetOverride(context.Background(), "esaa", "ES D123", true)
	assert.ErrorIs(t, err, errNoDatabase)
}
