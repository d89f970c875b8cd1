package engine

// resolveCollisions detects and resolves player overlaps for the current
// tick. It is a pure dispatcher: every score or liveness mutation happens
// inside the reward/enemy hooks, never here.
//
// Ordering invariant: rewards resolve strictly before enemies, so a tile
// holding both a reward and a hazard yields the reward's effect first.
func (g *Game) resolveCollisions(res *TickResult) {
	playerPos := g.player.Position()

	for _, r := range g.rewards {
		if r.Position() != playerPos {
			continue
		}
		// Already-collected and inactive rewards decline inside OnCollect;
		// the resolver does not pre-filter.
		if g.player.Collect(g, r) {
			res.RewardsCollected++
		}
	}

	for _, e := range g.enemies {
		if e.Position() != playerPos {
			continue
		}
		e.OnContact(g)
	}

	if g.score < g.scoreFloor {
		g.setMessage("%s", g.messages.Defeat)
		g.End()
	}
}
