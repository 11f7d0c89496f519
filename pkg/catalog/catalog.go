package catalog

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalid is returned when a catalog fails validation.
var ErrInvalid = errors.New("invalid catalog")

// Site is a vote page that can be presented inside the guided flow.
type Site struct {
	ID            string        `yaml:"id" json:"id"`
	Name          string        `yaml:"name" json:"name"`
	URL           string        `yaml:"url" json:"url"`
	Rewards       string        `yaml:"rewards" json:"rewards"`
	EstimatedTime time.Duration `yaml:"estimated_time" json:"estimated_time"`
	Priority      int           `yaml:"priority" json:"priority"`
}

// BonusSite is a vote page that has to be opened on its own.
// Bonus sites are not sequenced or tracked for completion.
type BonusSite struct {
	Name    string `yaml:"name" json:"name"`
	URL     string `yaml:"url" json:"url"`
	Rewards string `yaml:"rewards" json:"rewards"`
}

// Catalog holds the two ordered site lists.
type Catalog struct {
	Guided []Site      `yaml:"guided" json:"guided"`
	Bonus  []BonusSite `yaml:"bonus" json:"bonus"`
}

// Len returns the number of guided sites.
func (c Catalog) Len() int {
	return len(c.Guided)
}

// IDs returns the guided site ids in presentation order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c.Guided))
	for i, s := range c.Guided {
		ids[i] = s.ID
	}
	return ids
}

// Index returns the position of the guided site with the given id, or -1.
func (c Catalog) Index(id string) int {
	for i, s := range c.Guided {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that guided ids are present and unique and that every
// site has a URL.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Guided))
	for i, s := range c.Guided {
		if s.ID == "" {
			return fmt.Errorf("%w: guided site %d has no id", ErrInvalid, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate guided site id %q", ErrInvalid, s.ID)
		}
		seen[s.ID] = true
		if s.URL == "" {
			return fmt.Errorf("%w: guided site %q has no url", ErrInvalid, s.ID)
		}
	}
	for i, b := range c.Bonus {
		if b.URL == "" {
			return fmt.Errorf("%w: bonus site %d has no url", ErrInvalid, i)
		}
	}
	return nil
}

// sortByPriority orders guided sites by ascending priority, keeping the
// declared order for equal priorities.
func (c *Catalog) sortByPriority() {
	sort.SliceStable(c.Guided, func(i, j int) bool {
		return c.Guided[i].Priority < c.Guided[j].Priority
	})
}

// FormatEstimate renders an estimated time the way the site header shows it ("~30s").
func FormatEstimate(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d < time.Minute {
		return fmt.Sprintf("~%ds", int(d.Seconds()))
	}
	return "~" + d.Round(time.Second).String()
}

// CoinsPerVote is the coin reward counted for each guided site voted.
const CoinsPerVote = 350

// EstimatedCoins is the reward estimate shown for a number of guided votes.
func EstimatedCoins(votes int) int {
	return max(votes, 0) * CoinsPerVote
}
