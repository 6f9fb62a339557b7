package session

import (
	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
	"github.com/desertthunder/bookx/internal/shared"
)

const (
	RecommendFailedMessage = "Failed to get recommendations"
	RecommendErrorMessage  = "An error occurred while fetching recommendations"
	OpenLinkFailedMessage  = "Could not open browser"
)

// SelectBook fetches recommendations for name.
//
// Each call supersedes the previous one: only the response to the most recent selection is rendered,
// and only that response releases the loading state.
func (c *Controller) SelectBook(name string) {
	c.cancelPendingSearch()
	c.searchSeq++
	c.state.Search.Open = false
	c.state.Search.Input = name

	c.recommendSeq++
	seq := c.recommendSeq
	live := c.live()
	c.state.Loading = true

	eventloop.Go(c.loop, func() (*services.RecommendResult, error) {
		return c.svc.Recommend(c.ctx, name, models.DefaultRecommendations)
	}, func(res *services.RecommendResult, err error) {
		if !live() || seq != c.recommendSeq {
			c.logger.Debug("dropping stale recommendations", "book", name)
			return
		}
		defer func() { c.state.Loading = false }()

		switch {
		case err != nil:
			c.logger.Error("recommend failed", "book", name, "error", err)
			c.showAlert(RecommendErrorMessage, nil)
		case res == nil || !res.Success:
			msg := RecommendFailedMessage
			var suggestions []string
			if res != nil {
				if res.Message != "" {
					msg = res.Message
				}
				suggestions = res.Suggestions
			}
			c.showAlert(msg, suggestions)
		default:
			set := res.Set()
			if len(set.Items) > models.DefaultRecommendations {
				set.Items = set.Items[:models.DefaultRecommendations]
			}
			c.state.Recommendations = &set
			c.state.Focus = SectionRecommendations
		}
	})
}

// ViewExternally opens a web search for b.
func (c *Controller) ViewExternally(b models.Book) {
	link := shared.SearchLink(b.Title, b.Author)
	if err := c.open(link); err != nil {
		c.logger.Error("failed to open link", "url", link, "error", err)
		c.Notify(OpenLinkFailedMessage, KindError)
	}
}

func (c *Controller) showAlert(msg string, suggestions []string) {
	c.state.Alert = msg
	c.state.Suggestions = suggestions
}
