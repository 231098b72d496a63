package cli

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

const (
	stateQuery  = "query"
	stateParent = "parent"
)

// restoreState brings back the library filter and the active parent post of
// the previous run.
func (a *App) restoreState(ctx context.Context) {
	if a.state == nil {
		return
	}

	values, err := a.state.List(ctx, a.siteID)
	if err != nil {
		a.log.Warn(ctx, "failed to load saved state", "error", err)
		return
	}

	if raw, ok := values[stateQuery]; ok {
		var q models.Query
		if err := json.Unmarshal(raw, &q); err != nil {
			a.log.Warn(ctx, "ignoring saved query", "error", err)
		} else {
			a.actions.SetQuery(a.siteID, q)
		}
	}

	if raw, ok := values[stateParent]; ok {
		if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			a.session.SetActiveParent(id)
		}
	}
}

func (a *App) saveQuery(ctx context.Context, q models.Query) {
	if a.state == nil {
		return
	}

	q.Number, q.PageHandle = 0, ""
	raw, err := json.Marshal(q)
	if err != nil {
		a.log.Warn(ctx, "failed to encode query", "error", err)
		return
	}
	if err := a.state.Set(ctx, a.siteID, stateQuery, raw); err != nil {
		a.log.Warn(ctx, "failed to save query", "error", err)
	}
}

func (a *App) saveParent(ctx context.Context, id int64) {
	if a.state == nil {
		return
	}

	var err error
	if id == 0 {
		err = a.state.Delete(ctx, a.siteID, stateParent)
	} else {
		err = a.state.Set(ctx, a.siteID, stateParent, []byte(strconv.FormatInt(id, 10)))
	}
	if err != nil {
		a.log.Warn(ctx, "failed to save parent", "error", err)
	}
}
