package schema

import (
	"fmt"
	"strings"
)

// TablesByDependencyLevel returns tables grouped by dependency level.
// Level 0 = no dependencies, Level 1 = depends on Level 0, etc.
func TablesByDependencyLevel(tables []Table) ([][]Table, error) {
	names := make([]string, len(tables))
	byName := make(map[string]Table, len(tables))
	dependencies := make(map[string][]string, len(tables))
	for i, t := range tables {
		lower := strings.ToLower(t.Name)
		names[i] = t.Name
		byName[lower] = t
		for _, dep := range t.DependsOn {
			dependencies[lower] = append(dependencies[lower], strings.ToLower(dep))
		}
	}

	for table, deps := range dependencies {
		for _, dep := range deps {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("table %s depends on unknown table %s", table, dep)
			}
		}
	}

	ordered, err := topologicalSort(names, dependencies)
	if err != nil {
		return nil, err
	}

	// Calculate dependency levels
	levels := make(map[string]int)
	maxLevel := 0
	for _, table := range ordered {
		level := calculateLevel(strings.ToLower(table), dependencies, levels)
		if level > maxLevel {
			maxLevel = level
		}
	}

	result := make([][]Table, maxLevel+1)
	for _, table := range ordered {
		lower := strings.ToLower(table)
		result[levels[lower]] = append(result[levels[lower]], byName[lower])
	}
	return result, nil
}

// calculateLevel recursively calculates the dependency level of a table
func calculateLevel(table string, dependencies map[string][]string, cache map[string]int) int {
	if level, exists := cache[table]; exists {
		return level
	}

	deps := dependencies[table]
	if len(deps) == 0 {
		cache[table] = 0
		return 0
	}

	maxDepLevel := -1
	for _, dep := range deps {
		depLevel := calculateLevel(dep, dependencies, cache)
		if depLevel > maxDepLevel {
			maxDepLevel = depLevel
		}
	}

	level := maxDepLevel + 1
	cache[table] = level
	return level
}

// topologicalSort orders tables so every table follows the tables it
// references. Ties keep the declaration order.
func topologicalSort(tables []string, dependencies map[string][]string) ([]string, error) {
	inDegree := make(map[string]int)
	adjList := make(map[string][]string)
	originalNameMap := make(map[string]string)

	for _, table := range tables {
		lowerTable := strings.ToLower(table)
		inDegree[lowerTable] = 0
		originalNameMap[lowerTable] = table
	}

	// Walk tables in declaration order so the result is stable
	for _, table := range tables {
		dependent := strings.ToLower(table)
		for _, referenced := range dependencies[dependent] {
			// referenced must come before dependent
			adjList[referenced] = append(adjList[referenced], dependent)
			inDegree[dependent]++
		}
	}

	queue := []string{}
	for _, table := range tables {
		if inDegree[strings.ToLower(table)] == 0 {
			queue = append(queue, table)
		}
	}

	result := []string{}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range adjList[strings.ToLower(current)] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, originalNameMap[dependent])
			}
		}
	}

	if len(result) != len(tables) {
		return nil, fmt.Errorf("circular dependency detected: got %d tables, expected %d", len(result), len(tables))
	}
	return result, nil
}
