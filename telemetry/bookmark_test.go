package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FirstGoal(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{LastEpisode: 20}); len(bms) != 0 {
		t.Errorf("unexpected bookmarks %v", bms)
	}
	if !hasBookmark(bd.Check(WindowStats{LastEpisode: 40, Goals: 1, GoalRate: 0.05}), BookmarkFirstGoal) {
		t.Error("expected first_goal bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{LastEpisode: 60, Goals: 2, GoalRate: 0.1}), BookmarkFirstGoal) {
		t.Error("first_goal fired twice")
	}
}

func TestBookmarkDetector_Breakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{LastEpisode: i * 20, Goals: 2, GoalRate: 0.1})
	}

	if !hasBookmark(bd.Check(WindowStats{LastEpisode: 120, Goals: 10, GoalRate: 0.5}), BookmarkBreakthrough) {
		t.Error("expected breakthrough bookmark")
	}
}

func TestBookmarkDetector_Regression(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{LastEpisode: i * 20, Goals: 12, GoalRate: 0.6})
	}

	bms := bd.Check(WindowStats{LastEpisode: 120, Goals: 2, GoalRate: 0.1})
	if !hasBookmark(bms, BookmarkRegression) {
		t.Error("expected regression bookmark")
	}
	// Peak was reset, the same level does not fire again
	if hasBookmark(bd.Check(WindowStats{LastEpisode: 140, Goals: 2, GoalRate: 0.1}), BookmarkRegression) {
		t.Error("regression fired twice for one collapse")
	}
}

func TestBookmarkDetector_ConvergedOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	fired := 0
	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(WindowStats{LastEpisode: i * 20, Goals: 18, GoalRate: 0.9}), BookmarkConverged) {
			fired++
			if i != convergedWindows-1 {
				t.Errorf("converged fired at window %d, want %d", i, convergedWindows-1)
			}
		}
	}
	if fired != 1 {
		t.Errorf("converged fired %d times, want 1", fired)
	}
}
