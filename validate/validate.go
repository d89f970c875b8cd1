// Command validate provides a small CLI that validates arena configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields (via the engine's config validation)
//   - Grid consistency and allowed characters (#, ., E, X, C, B, F, S, M)
//   - Exactly one entry (E) and one exit (X), at least one basic reward (C)
//   - Reward values and enemy damage constraints
//   - Connectivity: every reward and the exit are reachable from the entry
//     via passable cells
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpontes/gridraider/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It delegates structural checks to the engine and adds reachability
// analysis for rewards and the exit.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	basicCount := 0
	bonusCount := 0
	finalCount := 0
	spikeCount := 0
	stalkerCount := 0
	for _, row := range config.Layout {
		for _, char := range row {
			switch char {
			case 'C':
				basicCount++
			case 'B':
				bonusCount++
			case 'F':
				finalCount++
			case 'S':
				spikeCount++
			case 'M':
				stalkerCount++
			}
		}
	}

	// Connectivity validation - check if all rewards and the exit are reachable
	reachabilityResult := validateConnectivity(config.Layout)
	if !reachabilityResult.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, reachabilityResult.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.Width, config.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Basic rewards: %d (worth %d each)", basicCount, config.BasicValue))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Bonus rewards: %d", bonusCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Final treasures: %d", finalCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Enemies: %d spikes, %d stalkers", spikeCount, stalkerCount))
	}

	return result
}

// validateConnectivity ensures every reward and the exit are reachable from the
// entry using 4-directional movement over passable cells (everything except
// walls). It reports any unreachable targets and returns an aggregated
// ValidationResult.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	// Find entry and all targets that must be reachable
	var entry []int
	var targets [][]int
	targetNames := map[string]string{}

	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			cell := rune(layout[y][x])
			switch cell {
			case 'E':
				entry = []int{x, y}
			case 'C', 'B', 'F', 'X':
				targets = append(targets, []int{x, y})
				name := "Reward"
				switch cell {
				case 'B':
					name = "Bonus"
				case 'F':
					name = "Final treasure"
				case 'X':
					name = "Exit"
				}
				targetNames[fmt.Sprintf("%d,%d", x, y)] = name
			}
		}
	}

	if entry == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No entry position found for connectivity test")
		return result
	}

	// Flood fill from the entry to find all reachable cells
	visited := make(map[string]bool)
	queue := [][]int{entry}

	// Helper function to check if a cell is passable
	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != '#'
	}

	// Flood fill algorithm
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		// Check all 4 directions
		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	// Check if all targets are reachable
	unreachable := []string{}
	for _, target := range targets {
		tx, ty := target[0], target[1]
		key := fmt.Sprintf("%d,%d", tx, ty)
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("%s at (%d,%d)", targetNames[key], ty, tx))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d targets unreachable from entry", len(unreachable), len(targets)))
		for _, target := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", target))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d rewards and the exit reachable from entry", len(targets)-1))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
