package session

import (
	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/services"
)

const (
	AddedFavoriteMessage     = "Added to favorites! ❤️"
	AddFavoriteFailedMessage = "Failed to add to favorites"
)

// LoadFavorites fetches the whole collection and replaces the grid.
//
// Failures are logged and leave the previous grid in place. Only the most recently issued load may apply.
func (c *Controller) LoadFavorites() {
	live := c.live()
	c.favoritesSeq++
	seq := c.favoritesSeq

	eventloop.Go(c.loop, func() (*services.FavoritesResult, error) {
		return c.svc.Favorites(c.ctx)
	}, func(res *services.FavoritesResult, err error) {
		if !live() {
			return
		}
		if seq != c.favoritesSeq {
			c.logger.Debug("dropping stale favorites response", "seq", seq, "latest", c.favoritesSeq)
			return
		}

		switch {
		case err != nil:
			c.logger.Error("load favorites failed", "error", err)
		case res == nil || !res.Success:
			msg := ""
			if res != nil {
				msg = res.Message
			}
			c.logger.Warn("load favorites rejected", "message", msg)
		default:
			c.state.Favorites = FavoritesState{Loaded: true, Items: res.Favorites}
		}
	})
}

// AddFavorite stores title and, on success, reloads the collection exactly once.
func (c *Controller) AddFavorite(title string) {
	live := c.live()

	eventloop.Go(c.loop, func() (*services.StatusResult, error) {
		return c.svc.AddFavorite(c.ctx, title)
	}, func(res *services.StatusResult, err error) {
		if !live() {
			return
		}

		switch {
		case err != nil:
			c.logger.Error("add favorite failed", "title", title, "error", err)
			c.Notify(AddFavoriteFailedMessage, KindError)
		case res == nil || !res.Success:
			msg := AddFavoriteFailedMessage
			if res != nil && res.Message != "" {
				msg = res.Message
			}
			c.Notify(msg, KindError)
		default:
			c.Notify(AddedFavoriteMessage, KindSuccess)
			c.LoadFavorites()
		}
	})
}

// SelectFavorite requests recommendations for a favorite.
func (c *Controller) SelectFavorite(title string) {
	c.SelectBook(title)
}
