package game

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// DefaultModelPath returns the save path used when SaveModel gets an empty path.
func (g *Game) DefaultModelPath() string {
	dir := g.opts.ModelDir
	if dir == "" {
		dir = "models"
	}
	return filepath.Join(dir, fmt.Sprintf("seeker-episode-%d.json", g.ctx.Episode))
}

// SaveModel writes the current network to path, or to DefaultModelPath if
// path is empty. It returns the path written.
func (g *Game) SaveModel(path string) (string, error) {
	if path == "" {
		path = g.DefaultModelPath()
	}
	if g.trainer != nil {
		g.trainer.wait()
	}
	if err := g.brain.SaveFile(path); err != nil {
		slog.Error("failed to save model", "path", path, "error", err)
		return "", fmt.Errorf("saving model: %w", err)
	}
	slog.Info("model saved", "path", path, "episode", g.ctx.Episode, "version", g.brain.Version())
	return path, nil
}

// LoadModel replaces the network with the one stored at path. On success
// epsilon drops to the after-load value and a new episode starts. On failure
// the current network keeps running unchanged.
func (g *Game) LoadModel(path string) error {
	if g.trainer != nil {
		g.trainer.wait()
	}
	if err := g.brain.LoadFile(path); err != nil {
		slog.Error("failed to load model", "path", path, "error", err)
		return fmt.Errorf("loading model: %w", err)
	}
	g.Reset()
	slog.Info("model loaded", "path", path, "epsilon", g.brain.Epsilon(), "episode", g.ctx.Episode)
	return nil
}
