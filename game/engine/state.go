package engine

// SurroundingTile describes one of the tiles adjacent to the player.
type SurroundingTile struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Passable bool   `json:"passable"`
	Contents string `json:"contents"`
}

// EnemyState is the transport view of one enemy.
type EnemyState struct {
	Position Position  `json:"position"`
	Kind     EnemyKind `json:"kind"`
}

// RewardState is the transport view of one reward.
type RewardState struct {
	Position  Position   `json:"position"`
	Kind      RewardKind `json:"kind"`
	Value     int        `json:"value"`
	Collected bool       `json:"collected"`
	Active    bool       `json:"active"`
}

// GameState is the complete read-only snapshot handed to the service and
// transport layers. The engine never consumes one of these; mutation goes
// through Tick.
type GameState struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Layout         []string      `json:"layout"`
	PlayerPos      Position      `json:"player_pos"`
	PlayerAlive    bool          `json:"player_alive"`
	Enemies        []EnemyState  `json:"enemies"`
	Rewards        []RewardState `json:"rewards"`
	Score          int           `json:"score"`
	Status         Status        `json:"status"`
	GameOver       bool          `json:"game_over"`
	Victory        bool          `json:"victory"`
	BasicCollected int           `json:"basic_collected"`
	BasicToCollect int           `json:"basic_to_collect"`
	Ticks          int64         `json:"ticks"`
	ElapsedMillis  int64         `json:"elapsed_millis"`
	Message        string        `json:"message"`
	ConfigName     string        `json:"config_name,omitempty"`

	// Computed helper views (not required for core game logic)
	LocalView    []SurroundingTile `json:"local_view,omitempty"`
	LocalView3x3 []string          `json:"local_view_3x3,omitempty"`
	ThreatLevel  string            `json:"threat_level,omitempty"`
}

// Snapshot builds the transport view of the current game. The layout strings
// overlay live entities on the static map, so a client can render the board
// without consulting the entity lists.
func (g *Game) Snapshot() *GameState {
	state := &GameState{
		Width:          g.grid.Width(),
		Height:         g.grid.Height(),
		Layout:         g.renderLayout(),
		PlayerPos:      g.player.Position(),
		PlayerAlive:    g.player.Alive(),
		Enemies:        make([]EnemyState, 0, len(g.enemies)),
		Rewards:        make([]RewardState, 0, len(g.rewards)),
		Score:          g.score,
		Status:         g.status,
		GameOver:       g.status == StatusOver,
		Victory:        g.won,
		BasicCollected: g.basicCollected,
		BasicToCollect: g.basicToCollect,
		Ticks:          g.ticks,
		ElapsedMillis:  g.elapsed.Milliseconds(),
		Message:        g.message,
	}

	for _, e := range g.enemies {
		state.Enemies = append(state.Enemies, EnemyState{
			Position: e.Position(),
			Kind:     e.Kind(),
		})
	}

	for _, r := range g.rewards {
		rs := RewardState{
			Position:  r.Position(),
			Kind:      r.Kind(),
			Value:     r.Value(),
			Collected: r.Collected(),
			Active:    !r.Collected(),
		}
		if b, ok := r.(*BonusReward); ok {
			rs.Active = b.Active()
		}
		state.Rewards = append(state.Rewards, rs)
	}

	state.LocalView = g.generateLocalView()
	state.LocalView3x3 = g.generateLocalView3x3()
	state.ThreatLevel = AnalyzeThreat(g)

	return state
}

// renderLayout produces the board as ASCII rows. Entities shadow the static
// tile beneath them; the player shadows everything.
func (g *Game) renderLayout() []string {
	height := g.grid.Height()
	width := g.grid.Width()

	rows := make([][]byte, height)
	for row := 0; row < height; row++ {
		rows[row] = make([]byte, width)
		for col := 0; col < width; col++ {
			pos := Position{Row: row, Col: col}
			switch {
			case g.grid.IsBlocked(pos):
				rows[row][col] = charWall
			case g.grid.IsEntry(pos):
				rows[row][col] = charEntry
			case g.grid.IsExit(pos):
				rows[row][col] = charExit
			default:
				rows[row][col] = charFloor
			}
		}
	}

	place := func(pos Position, c byte) {
		if pos.Row >= 0 && pos.Row < height && pos.Col >= 0 && pos.Col < width {
			rows[pos.Row][pos.Col] = c
		}
	}

	for _, r := range g.rewards {
		if r.Collected() {
			continue
		}
		if b, ok := r.(*BonusReward); ok && !b.Active() {
			continue
		}
		switch r.Kind() {
		case RewardBasic:
			place(r.Position(), charBasic)
		case RewardBonus:
			place(r.Position(), charBonus)
		case RewardFinal:
			place(r.Position(), charFinal)
		}
	}

	for _, e := range g.enemies {
		switch e.Kind() {
		case EnemyStationary:
			place(e.Position(), charStationary)
		case EnemyMobile:
			place(e.Position(), charMobile)
		}
	}

	place(g.player.Position(), 'P')

	layout := make([]string, height)
	for row := 0; row < height; row++ {
		layout[row] = string(rows[row])
	}
	return layout
}

// generateLocalView lists the 8 tiles around the player with their contents.
func (g *Game) generateLocalView() []SurroundingTile {
	playerPos := g.player.Position()
	view := make([]SurroundingTile, 0, 8)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			pos := Position{Row: playerPos.Row + dr, Col: playerPos.Col + dc}
			view = append(view, SurroundingTile{
				Row:      pos.Row,
				Col:      pos.Col,
				Passable: g.grid.IsPassable(pos),
				Contents: g.describeTile(pos),
			})
		}
	}

	return view
}

// generateLocalView3x3 renders the 3x3 neighborhood around the player.
func (g *Game) generateLocalView3x3() []string {
	layout := g.renderLayout()
	playerPos := g.player.Position()

	view := make([]string, 0, 3)
	for dr := -1; dr <= 1; dr++ {
		row := playerPos.Row + dr
		line := make([]byte, 0, 3)
		for dc := -1; dc <= 1; dc++ {
			col := playerPos.Col + dc
			if row < 0 || row >= len(layout) || col < 0 || col >= len(layout[row]) {
				line = append(line, charWall)
				continue
			}
			line = append(line, layout[row][col])
		}
		view = append(view, string(line))
	}
	return view
}

// describeTile names what occupies a position, in priority order:
// enemy, then live reward, then the static tile.
func (g *Game) describeTile(pos Position) string {
	for _, e := range g.enemies {
		if e.Position() == pos {
			if e.Kind() == EnemyMobile {
				return "stalker"
			}
			return "spike"
		}
	}

	for _, r := range g.rewards {
		if r.Position() != pos || r.Collected() {
			continue
		}
		if b, ok := r.(*BonusReward); ok && !b.Active() {
			continue
		}
		switch r.Kind() {
		case RewardBonus:
			return "bonus reward"
		case RewardFinal:
			return "final treasure"
		default:
			return "reward"
		}
	}

	switch {
	case !g.grid.InBounds(pos):
		return "void"
	case g.grid.IsBlocked(pos):
		return "wall"
	case g.grid.IsEntry(pos):
		return "entry"
	case g.grid.IsExit(pos):
		return "exit"
	default:
		return "floor"
	}
}
