package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 9, c.Len())
	assert.Len(t, c.Bonus, 6)

	for i := 1; i < c.Len(); i++ {
		assert.Less(t, c.Guided[i-1].Priority, c.Guided[i].Priority)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, c Catalog)
	}{
		{
			name: "sorted by priority",
			input: `
guided:
  - id: c
    name: Site C
    url: https://c.example/vote
    rewards: 100 Coins
    estimated_time: 40s
    priority: 3
  - id: a
    name: Site A
    url: https://a.example/vote
    estimated_time: 30s
    priority: 1
  - id: b
    name: Site B
    url: https://b.example/vote
    priority: 2
bonus:
  - name: Extra
    url: https://extra.example/vote
    rewards: 50 Coins
`,
			check: func(t *testing.T, c Catalog) {
				assert.Equal(t, []string{"a", "b", "c"}, c.IDs())
				assert.Equal(t, 30*time.Second, c.Guided[0].EstimatedTime)
				assert.Equal(t, "100 Coins", c.Guided[2].Rewards)
				require.Len(t, c.Bonus, 1)
				assert.Equal(t, "Extra", c.Bonus[0].Name)
			},
		},
		{
			name:  "empty catalog",
			input: "guided: []\n",
			check: func(t *testing.T, c Catalog) {
				assert.Equal(t, 0, c.Len())
			},
		},
		{
			name: "duplicate id",
			input: `
guided:
  - {id: a, url: https://a.example}
  - {id: a, url: https://b.example}
`,
			wantErr: true,
		},
		{
			name:    "missing url",
			input:   "guided:\n  - {id: a}\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			input:   "guided: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParseInvalidWrapsSentinel(t *testing.T) {
	_, err := Parse([]byte("guided:\n  - {url: https://a.example}\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().IDs(), c.IDs())

	path := filepath.Join(t.TempDir(), "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte("guided:\n  - {id: only, url: https://only.example}\n"), 0644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, c.IDs())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	c := Default()
	assert.Equal(t, 0, c.Index("minecraftservers-org"))
	assert.Equal(t, -1, c.Index("nope"))
}

func TestFormatEstimate(t *testing.T) {
	assert.Equal(t, "~30s", FormatEstimate(30*time.Second))
	assert.Equal(t, "~1m30s", FormatEstimate(90*time.Second))
	assert.Equal(t, "", FormatEstimate(0))
}

func TestEstimatedCoins(t *testing.T) {
	assert.Equal(t, 0, EstimatedCoins(0))
	assert.Equal(t, 1050, EstimatedCoins(3))
	assert.Equal(t, 0, EstimatedCoins(-2))
}
