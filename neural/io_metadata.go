package neural

import (
	"fmt"

	"github.com/pthm-cable/seeker/components"
)

// IODescriptor describes a network input or output for UI display.
type IODescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Min        float64 // Minimum value
	Max        float64 // Maximum value
	IsCentered bool    // True for centered bar display (e.g., -1 to +1)
	Group      string  // Logical grouping ("sensor", "target", "action")
}

// InputDescriptors returns metadata for every state input.
// Order matches the state vector: readings, distance, bearing.
func InputDescriptors(sensorCount int) []IODescriptor {
	descs := make([]IODescriptor, 0, sensorCount+2)
	for i := 0; i < sensorCount; i++ {
		descs = append(descs, IODescriptor{
			ID:    fmt.Sprintf("ray_%d", i),
			Label: fmt.Sprintf("Ray %d", i),
			Min:   0, Max: 1,
			Group: "sensor",
		})
	}
	return append(descs,
		IODescriptor{ID: "target_dist", Label: "Dist", Min: 0, Max: 1, Group: "target"},
		IODescriptor{ID: "target_bearing", Label: "Bearing", Min: -1, Max: 1, IsCentered: true, Group: "target"},
	)
}

// OutputDescriptors returns metadata for every action value, in action order.
func OutputDescriptors() []IODescriptor {
	descs := make([]IODescriptor, components.NumActions)
	for a := range descs {
		name := components.Action(a).String()
		descs[a] = IODescriptor{ID: "q_" + name, Label: name, Group: "action", IsCentered: true}
	}
	return descs
}
