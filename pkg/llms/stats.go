package llms

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PhaseStats captures what one pipeline stage did.
type PhaseStats struct {
	Name      string        `json:"name"`
	Removed   int           `json:"removed"`   // nodes detached (with their subtree)
	Rewritten int           `json:"rewritten"` // nodes modified in place
	Duration  time.Duration `json:"duration_ns"`
}

// Stats captures metrics about one conversion.
type Stats struct {
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// ElementsRemoved counts removed elements by tag name.
	ElementsRemoved map[string]int `json:"elements_removed"`

	// Phases in execution order.
	Phases []*PhaseStats `json:"phases"`

	ParseDuration       time.Duration `json:"parse_duration_ns"`
	TransformDuration   time.Duration `json:"transform_duration_ns"`
	SerializeDuration   time.Duration `json:"serialize_duration_ns"`
	PostProcessDuration time.Duration `json:"postprocess_duration_ns"`
	TotalDuration       time.Duration `json:"total_duration_ns"`
}

// NewStats creates a Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
	}
}

// Phase returns the stats for the named stage, creating it on first use.
func (s *Stats) Phase(name string) *PhaseStats {
	if p := s.GetPhase(name); p != nil {
		return p
	}
	p := &PhaseStats{Name: name}
	s.Phases = append(s.Phases, p)
	return p
}

// GetPhase returns the stats for the named stage, or nil if it never ran.
func (s *Stats) GetPhase(name string) *PhaseStats {
	for _, p := range s.Phases {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// RecordRemoval records that a node with the given tag was removed.
func (s *Stats) RecordRemoval(phase, tag string) {
	s.Phase(phase).Removed++
	if tag != "" {
		s.ElementsRemoved[strings.ToLower(tag)]++
	}
}

// RecordRewrite records an in-place modification.
func (s *Stats) RecordRewrite(phase string) {
	s.Phase(phase).Rewritten++
}

// TotalRemoved returns the number of nodes removed across all phases.
func (s *Stats) TotalRemoved() int {
	total := 0
	for _, p := range s.Phases {
		total += p.Removed
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())

	for _, p := range s.Phases {
		if p.Removed == 0 && p.Rewritten == 0 {
			continue
		}
		fmt.Fprintf(&sb, "Stage %s: %d removed, %d rewritten\n", p.Name, p.Removed, p.Rewritten)
	}

	if len(s.ElementsRemoved) > 0 {
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString("Removed by tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Timing: parse=%v, transform=%v, serialize=%v, postprocess=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.TransformDuration.Round(time.Microsecond),
		s.SerializeDuration.Round(time.Microsecond),
		s.PostProcessDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

// Warning is a skipped optional enhancement. Warnings never change whether a
// conversion succeeds.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the outcome of ConvertWithStats.
type Result struct {
	// Content is the Markdown output; empty when Error is set.
	Content string `json:"content"`

	Stats    *Stats    `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`

	// Error is a parse or serialization failure, propagated unchanged.
	Error error `json:"-"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
