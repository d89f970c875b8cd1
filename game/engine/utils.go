package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// FindNearestUncollectedReward finds the closest live reward and returns it with its distance.
// Inactive bonus rewards and anything already collected are skipped.
func FindNearestUncollectedReward(g *Game) (Reward, int, bool) {
	minDistance := -1
	var nearest Reward
	found := false

	playerPos := g.Player().Position()
	for _, r := range g.Rewards() {
		if r.Collected() {
			continue
		}
		if b, ok := r.(*BonusReward); ok && !b.Active() {
			continue
		}
		distance := ManhattanDistance(playerPos, r.Position())
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
			nearest = r
			found = true
		}
	}

	return nearest, minDistance, found
}

// FindNearestEnemy finds the closest enemy and returns it with its distance.
func FindNearestEnemy(g *Game) (Enemy, int, bool) {
	minDistance := -1
	var nearest Enemy
	found := false

	playerPos := g.Player().Position()
	for _, e := range g.Enemies() {
		distance := ManhattanDistance(playerPos, e.Position())
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
			nearest = e
			found = true
		}
	}

	return nearest, minDistance, found
}

// AnalyzeThreat assesses the danger posed by enemies relative to the player's position.
// Mobile enemies weigh heavier than stationary ones because they close distance.
func AnalyzeThreat(g *Game) string {
	if !g.Player().Alive() {
		return "CRITICAL: Player is down!"
	}

	nearest, distance, found := FindNearestEnemy(g)
	if !found {
		return "SAFE: No enemies on the map"
	}

	if nearest.Kind() == EnemyMobile {
		if distance <= 1 {
			return "CRITICAL: Stalker adjacent!"
		} else if distance <= 3 {
			return "DANGER: Stalker closing in"
		}
		return "CAUTION: Stalker on the map"
	}

	if distance <= 1 {
		return "DANGER: Standing next to a spike"
	}
	return "SAFE: Hazards at a distance"
}

// CountRemainingBasic counts basic rewards not yet collected.
func CountRemainingBasic(g *Game) int {
	count := 0
	for _, r := range g.Rewards() {
		if r.Kind() == RewardBasic && !r.Collected() {
			count++
		}
	}
	return count
}
