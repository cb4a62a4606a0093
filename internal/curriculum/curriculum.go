// Package curriculum holds the skill levels and the fixed topic list
// taught at each level.
package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownLevel is returned for a level name that is not recognised.
var ErrUnknownLevel = errors.New("unknown level")

// Level is a learner's self-selected skill level.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Pro          Level = "Pro"
)

// AllLevels returns all levels in display order.
func AllLevels() []Level {
	return []Level{Beginner, Intermediate, Pro}
}

// Blurb returns the one-line description shown next to a level.
func (l Level) Blurb() string {
	switch l {
	case Beginner:
		return "New to data structures. Start from the fundamentals."
	case Intermediate:
		return "Comfortable with the basics. Move on to trees, hashing and graphs."
	case Pro:
		return "Ready for balanced trees, advanced graphs and competitive techniques."
	default:
		return ""
	}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return slices.Contains(AllLevels(), l)
}

// ParseLevel resolves a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels() {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w %q (want Beginner, Intermediate or Pro)", ErrUnknownLevel, s)
}

var topics = map[Level][]string{
	Beginner: {
		"What are Data Structures?",
		"Big O Notation (Introduction)",
		"Arrays (Static vs Dynamic)",
		"Strings",
		"Stacks (LIFO)",
		"Queues (FIFO)",
		"Singly Linked Lists",
	},
	Intermediate: {
		"Doubly Linked Lists",
		"Circular Linked Lists",
		"Hash Tables (Hashing & Collisions)",
		"Sets",
		"Introduction to Trees",
		"Binary Search Trees (BST)",
		"Heaps (Min/Max Heap)",
		"Introduction to Graphs (Representation)",
		"Graph Traversal (BFS & DFS)",
	},
	Pro: {
		"Self-Balancing Trees (AVL Trees)",
		"Red-Black Trees",
		"Tries (Prefix Trees)",
		"Advanced Graph Algorithms (Dijkstra's)",
		"Advanced Graph Algorithms (A* Search)",
		"Disjoint Set Union (DSU) / Union-Find",
		"Segment Trees",
		"Bit Manipulation",
	},
}

// Topics returns a copy of the ordered topic list for a level.
// Unknown levels have no topics.
func Topics(l Level) []string {
	return slices.Clone(topics[l])
}

// TopicAt returns the i-th topic of a level's guided path. ok is false
// once the path is exhausted.
func TopicAt(l Level, i int) (topic string, ok bool) {
	list := topics[l]
	if i < 0 || i >= len(list) {
		return "", false
	}
	return list[i], true
}

// HasTopic reports whether topic is taught at level l.
func HasTopic(l Level, topic string) bool {
	return slices.Contains(topics[l], topic)
}
