package systems

import "github.com/pthm-cable/seeker/telemetry"

// SystemInfo describes one phase of the tick for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (matches the perf phase name)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "ai")
}

// SystemRegistry holds metadata about all tick phases.
// This centralizes naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases, in tick order.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new phases to the perf collector.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseSense, Name: "Sense", Description: "Casts sensor rays against the walls", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseAct, Name: "Act", Description: "Epsilon-greedy action selection", Category: "ai"})
	r.Register(SystemInfo{ID: telemetry.PhasePhysics, Name: "Physics", Description: "Applies the action to the pose", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseLearn, Name: "Learn", Description: "Stores the transition and trains on a batch", Category: "ai"})
	r.Register(SystemInfo{ID: telemetry.PhaseReset, Name: "Reset", Description: "Starts a new episode", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Window stats and CSV output", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
