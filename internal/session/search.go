package session

import (
	"strings"
	"time"

	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/models"
)

// SearchDelay is the quiet period after the last keystroke before a search is issued.
const SearchDelay = 300 * time.Millisecond

// OnInput records the raw search field contents and reschedules the search.
//
// Inputs shorter than [models.MinQueryLength] after trimming clear the panel immediately and issue nothing.
func (c *Controller) OnInput(text string) {
	c.state.Search.Input = text
	c.cancelPendingSearch()

	query, ok := models.NormalizeQuery(text)
	if !ok {
		c.searchSeq++
		c.state.Search.Open = false
		c.state.Search.Results = nil
		return
	}

	c.pendingSearch = c.sched.AfterFunc(SearchDelay, func() {
		c.pendingSearch = nil
		c.search(query)
	})
}

// SubmitSearch selects the trimmed search field contents. Empty input is ignored.
func (c *Controller) SubmitSearch() {
	name := strings.TrimSpace(c.state.Search.Input)
	if name == "" {
		return
	}
	c.SelectBook(name)
}

// ClosePanel hides the results panel without touching the pending search.
func (c *Controller) ClosePanel() {
	c.state.Search.Open = false
}

func (c *Controller) cancelPendingSearch() {
	if c.pendingSearch != nil {
		c.pendingSearch.Cancel()
		c.pendingSearch = nil
	}
}

func (c *Controller) search(query string) {
	c.searchSeq++
	seq := c.searchSeq
	live := c.live()

	eventloop.Go(c.loop, func() ([]string, error) {
		return c.svc.Search(c.ctx, query)
	}, func(books []string, err error) {
		if err != nil {
			c.logger.Error("search failed", "query", query, "error", err)
			return
		}
		if !live() || seq != c.searchSeq {
			c.logger.Debug("dropping stale search response", "query", query)
			return
		}

		c.state.Search.Results = books
		c.state.Search.Open = true
	})
}
