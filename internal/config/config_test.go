package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := Load()
		require.NoError(t, err)

		assert.False(t, conf.IsDataMocked)
		assert.Equal(t, ":8080", conf.ListenAddress)
		assert.Equal(t, "public/mock-data", conf.MockDataDir)
		assert.Equal(t, "org", conf.Github.Scope)
		assert.Equal(t, "https://api.github.com", conf.Github.APIBase)
		assert.Equal(t, "https://api.github.com/graphql", conf.Github.GraphQLUpstream)
		assert.Equal(t, "http://127.0.0.1:8080/api/graphql", conf.GraphQLURL)
	})

	t.Run("graphql url follows listen address", func(t *testing.T) {
		t.Setenv("CSA_LISTENADDRESS", ":9090")

		conf, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9090/api/graphql", conf.GraphQLURL)
	})

	t.Run("explicit graphql url wins", func(t *testing.T) {
		t.Setenv("CSA_LISTENADDRESS", ":9090")
		t.Setenv("CSA_GRAPHQLURL", "http://proxy.internal/api/graphql")

		conf, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://proxy.internal/api/graphql", conf.GraphQLURL)
	})

	t.Run("invalid listen address", func(t *testing.T) {
		t.Setenv("CSA_LISTENADDRESS", "8080")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid listen address")
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CSA_ISDATAMOCKED", "true")
		t.Setenv("CSA_GITHUB_ORG", "dfds")
		t.Setenv("CSA_GITHUB_SCOPE", "ent")
		t.Setenv("CSA_GITHUB_ENT", "dfds-ent")

		conf, err := Load()
		require.NoError(t, err)

		assert.True(t, conf.IsDataMocked)
		assert.Equal(t, "dfds", conf.Github.Org)
		assert.Equal(t, "ent", conf.Github.Scope)
		assert.Equal(t, "dfds-ent", conf.Github.Ent)
	})

	t.Run("invalid scope", func(t *testing.T) {
		t.Setenv("CSA_GITHUB_SCOPE", "galaxy")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid github scope")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("CSA_LOGLEVEL", "loud")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid log level")
	})
}

func TestLoopbackGraphQLURL(t *testing.T) {
	tests := []struct {
		listen string
		want   string
	}{
		{listen: ":8080", want: "http://127.0.0.1:8080/api/graphql"},
		{listen: "0.0.0.0:9000", want: "http://127.0.0.1:9000/api/graphql"},
		{listen: "[::]:9000", want: "http://127.0.0.1:9000/api/graphql"},
		{listen: "localhost:7000", want: "http://localhost:7000/api/graphql"},
	}

	for _, tt := range tests {
		t.Run(tt.listen, func(t *testing.T) {
			got, err := loopbackGraphQLURL(tt.listen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
