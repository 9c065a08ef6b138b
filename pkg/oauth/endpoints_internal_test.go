package oauth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("embedded table is complete", func(t *testing.T) {
		t.Parallel()
		table, err := loadEndpoints(providersYAML)
		require.NoError(t, err)
		require.Len(t, table, len(providerIDs))
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := loadEndpoints([]byte("bitbucket:\n  token_host: https://bitbucket.org\n"))
		require.ErrorIs(t, err, ErrUnsupportedProvider)
	})

	t.Run("missing provider row", func(t *testing.T) {
		t.Parallel()
		_, err := loadEndpoints([]byte(`
github:
  token_host: https://github.com
  client_id_key: A
  client_secret_key: B
`))
		require.ErrorContains(t, err, "no entry for netlify")
	})

	t.Run("incomplete row", func(t *testing.T) {
		t.Parallel()
		_, err := loadEndpoints([]byte("github:\n  token_host: https://github.com\n"))
		require.ErrorContains(t, err, "missing client_id_key, client_secret_key")
	})

	t.Run("unknown variant", func(t *testing.T) {
		t.Parallel()
		_, err := loadEndpoints([]byte(`
github:
  variant: implicit
  token_host: https://github.com
  client_id_key: A
  client_secret_key: B
`))
		require.ErrorContains(t, err, `unknown variant "implicit"`)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := loadEndpoints([]byte("github: ["))
		require.ErrorContains(t, err, "decode endpoint table")
	})
}

func TestJoinKeys(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", joinKeys(nil))
	require.Equal(t, "A", joinKeys([]string{"A"}))
	require.Equal(t, "A and B", joinKeys([]string{"A", "B"}))
	require.Equal(t, "A, B and C", joinKeys([]string{"A", "B", "C"}))
}
