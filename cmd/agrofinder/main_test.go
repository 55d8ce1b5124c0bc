package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofinder/agrofinder/internal/api"
)

func TestRootCommandSurface(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"tui", "search", "upload", "ingest", "health", "login", "logout", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := parseCategory("")
	require.NoError(t, err)
	assert.Empty(t, c)

	c, err = parseCategory("anuncio")
	require.NoError(t, err)
	assert.Equal(t, api.CategoryAnuncio, c)

	c, err = parseCategory("organico")
	require.NoError(t, err)
	assert.Equal(t, api.CategoryOrganico, c)

	_, err = parseCategory("relatorio")
	assert.Error(t, err)
}
