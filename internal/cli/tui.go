package cli

import (
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	q := live.NewQueue(64)
	defer q.Close()

	e := ctx.NewEngine(live.WithDispatcher(q))
	return tui.Run(ctx.Store, e, ctx.Analytics, ctx.clock())
}
