// Command analyze prints quick, human-readable heuristics about arena
// configuration files in the project's configs directory. It summarizes
// dimensions, reward totals, enemy placement, and uses the engine's A*
// pathfinder to measure route lengths and highlight unreachable rewards.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpontes/gridraider/game/engine"
)

// AnalysisPoint denotes a grid coordinate used during analysis output.
type AnalysisPoint struct {
	Row, Col int
}

func main() {
	configs := []string{
		"classic.json",
		"arena.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Grid Size: %d x %d\n", config.Width, config.Height)

	// Collect points of interest from the layout
	var entry, exit AnalysisPoint
	foundEntry, foundExit := false, false
	var basics, bonuses, finals []AnalysisPoint
	var spikes, stalkers []AnalysisPoint

	for row, line := range config.Layout {
		for col, cell := range line {
			p := AnalysisPoint{Row: row, Col: col}
			switch cell {
			case 'E':
				entry = p
				foundEntry = true
			case 'X':
				exit = p
				foundExit = true
			case 'C':
				basics = append(basics, p)
			case 'B':
				bonuses = append(bonuses, p)
			case 'F':
				finals = append(finals, p)
			case 'S':
				spikes = append(spikes, p)
			case 'M':
				stalkers = append(stalkers, p)
			}
		}
	}

	fmt.Printf("Entry: (%d, %d)\n", entry.Row, entry.Col)
	fmt.Printf("Exit: (%d, %d)\n", exit.Row, exit.Col)
	fmt.Printf("Basic Rewards: %d (worth %d each)\n", len(basics), config.BasicValue)
	fmt.Printf("Bonus Rewards: %d (worth %d each)\n", len(bonuses), config.BonusValue)
	fmt.Printf("Final Treasures: %d (worth %d each)\n", len(finals), config.FinalValue)
	fmt.Printf("Max Score: %d\n", len(basics)*config.BasicValue+len(bonuses)*config.BonusValue+len(finals)*config.FinalValue)
	fmt.Printf("Enemies: %d spikes, %d stalkers\n", len(spikes), len(stalkers))

	if !foundEntry || !foundExit {
		fmt.Printf("⚠️  WARNING: layout is missing entry or exit, skipping route analysis\n")
		return
	}

	grid, err := buildGrid(&config)
	if err != nil {
		fmt.Printf("Error building grid: %v\n", err)
		return
	}

	pathfinder := engine.NewAStarPathfinder()

	// Route analysis: every reward must be reachable from the entry
	unreachable := []AnalysisPoint{}
	totalRouteTicks := 0
	targets := append(append(append([]AnalysisPoint{}, basics...), bonuses...), finals...)
	for _, target := range targets {
		path := pathfinder.FindPath(grid,
			engine.Position{Row: entry.Row, Col: entry.Col},
			engine.Position{Row: target.Row, Col: target.Col})
		if path == nil {
			unreachable = append(unreachable, target)
			continue
		}
		totalRouteTicks += len(path) - 1
	}

	if len(unreachable) > 0 {
		fmt.Printf("⚠️  CRITICAL: %d rewards are unreachable from the entry!\n", len(unreachable))
		for i, p := range unreachable {
			if i < 5 { // Show first 5 unreachable points
				fmt.Printf("   Unreachable: (%d, %d) - '%c'\n", p.Row, p.Col, config.Layout[p.Row][p.Col])
			}
		}
		if len(unreachable) > 5 {
			fmt.Printf("   ... and %d more\n", len(unreachable)-5)
		}
	} else {
		fmt.Printf("✅ All %d rewards reachable from the entry\n", len(targets))
	}

	// Exit route
	exitPath := pathfinder.FindPath(grid,
		engine.Position{Row: entry.Row, Col: entry.Col},
		engine.Position{Row: exit.Row, Col: exit.Col})
	if exitPath == nil {
		fmt.Printf("⚠️  CRITICAL: exit is unreachable from the entry!\n")
	} else {
		fmt.Printf("Entry→Exit shortest route: %d ticks\n", len(exitPath)-1)
	}

	// Rough difficulty estimate: sum of entry→reward distances plus
	// stalker pressure. Not a tour solution, just a comparison number.
	difficulty := totalRouteTicks + len(stalkers)*20 + len(spikes)*5
	fmt.Printf("Difficulty estimate: %d\n", difficulty)
}

// buildGrid constructs a pathfinding grid with walls blocked from the layout.
func buildGrid(config *engine.GameConfig) (*engine.Grid, error) {
	grid, err := engine.NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	for row, line := range config.Layout {
		for col, cell := range line {
			if cell == '#' {
				grid.SetBlocked(engine.Position{Row: row, Col: col}, true)
			}
		}
	}

	return grid, nil
}
