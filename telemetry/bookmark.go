package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstGoal    BookmarkType = "first_goal"
	BookmarkBreakthrough BookmarkType = "breakthrough"
	BookmarkRegression   BookmarkType = "regression"
	BookmarkConverged    BookmarkType = "converged"
)

// Bookmark marks a notable moment in training.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Episode     int          `csv:"episode"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"episode", b.Episode,
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Detector thresholds.
const (
	breakthroughFactor  = 2.0 // goal rate multiple of the rolling average
	breakthroughMinRate = 0.3
	regressionDrop      = 0.5 // fraction lost from the recent peak
	regressionMinPeak   = 0.4
	convergedRate       = 0.8
	convergedWindows    = 5
)

// BookmarkDetector detects interesting moments in the learning curve.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	seenGoal       bool
	peakGoalRate   float64
	convergedCount int // consecutive windows at or above convergedRate
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.seenGoal && stats.Goals > 0 {
		bd.seenGoal = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstGoal,
			Episode:     stats.LastEpisode,
			Tick:        stats.EndTick,
			Description: fmt.Sprintf("First goals reached: %d in episodes %d-%d", stats.Goals, stats.FirstEpisode, stats.LastEpisode),
		})
	}
	if b := bd.checkBreakthrough(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkRegression(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkConverged(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.GoalRate > bd.peakGoalRate {
		bd.peakGoalRate = stats.GoalRate
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.GoalRate
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.GoalRate > avg*breakthroughFactor && stats.GoalRate >= breakthroughMinRate {
		return &Bookmark{
			Type:        BookmarkBreakthrough,
			Episode:     stats.LastEpisode,
			Tick:        stats.EndTick,
			Description: fmt.Sprintf("Goal rate %.2f is %.1fx average (%.2f)", stats.GoalRate, stats.GoalRate/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkRegression(stats WindowStats) *Bookmark {
	if bd.peakGoalRate < regressionMinPeak {
		return nil
	}

	drop := 1 - stats.GoalRate/bd.peakGoalRate
	if drop <= regressionDrop {
		return nil
	}
	// Reset the peak so one collapse fires once
	oldPeak := bd.peakGoalRate
	bd.peakGoalRate = stats.GoalRate
	return &Bookmark{
		Type:        BookmarkRegression,
		Episode:     stats.LastEpisode,
		Tick:        stats.EndTick,
		Description: fmt.Sprintf("Goal rate fell %.0f%% from peak %.2f to %.2f", drop*100, oldPeak, stats.GoalRate),
	}
}

func (bd *BookmarkDetector) checkConverged(stats WindowStats) *Bookmark {
	if stats.GoalRate >= convergedRate {
		bd.convergedCount++
	} else {
		bd.convergedCount = 0
	}

	if bd.convergedCount == convergedWindows { // trigger exactly once per streak
		return &Bookmark{
			Type:        BookmarkConverged,
			Episode:     stats.LastEpisode,
			Tick:        stats.EndTick,
			Description: fmt.Sprintf("Goal rate at or above %.0f%% for %d windows", convergedRate*100, convergedWindows),
		}
	}
	return nil
}
