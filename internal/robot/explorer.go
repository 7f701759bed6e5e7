package robot

import (
	"github.com/samdwyer/forageband/internal/board"
	"github.com/samdwyer/forageband/internal/world"
)

// stepExplorer walks one random step, then reports whatever deposit it
// is standing on. The post is idempotent, so revisiting a known
// deposit just refreshes its quantity.
func (r *Robot) stepExplorer(w *world.World, b *board.Board) {
	r.stepRandom(w)

	cell := w.CellAt(r.pos)
	if cell.Kind != world.CellResource || cell.Quantity <= 0 {
		return
	}
	if b.Post(r.pos, cell.Resource, cell.Quantity) {
		r.log.Info("found deposit",
			"kind", cell.Resource.String(),
			"quantity", cell.Quantity,
			"x", r.pos.X, "y", r.pos.Y,
		)
	}
}
