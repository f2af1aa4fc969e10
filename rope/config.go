package rope

import (
	"errors"
	"fmt"
)

const (
	DefaultLength   = 1024.0
	DefaultSegments = 8
	DefaultMaterial = "cable/cable.vmt"

	// Slack is added to the configured length before it is split into
	// segments. SlackFudge is the engine-wide correction applied on top.
	Slack      = 32.0
	SlackFudge = -70.0

	// MaxUseRadius is how close a point must be to a node to grab it.
	MaxUseRadius = 36.0

	// WarmupSeconds is simulated once at spawn so the rope starts hanging.
	WarmupSeconds = 3.0
	// MaxThinkElapsed caps the frame time fed to the engine per tick.
	MaxThinkElapsed = 0.25
)

var (
	ErrTooFewSegments = errors.New("rope: at least 2 segments are required")
	ErrBadLength      = errors.New("rope: length leaves no positive rest length")
)

// Config is the construction-time description of a rope. Material is
// opaque to the simulation.
type Config struct {
	Length   float64 `yaml:"length"`
	Segments int     `yaml:"segments"`
	Material string  `yaml:"material"`
}

func DefaultConfig() Config {
	return Config{
		Length:   DefaultLength,
		Segments: DefaultSegments,
		Material: DefaultMaterial,
	}
}

// RestLength is the distance each spring tries to keep.
func (c Config) RestLength() float64 {
	return (c.Length + Slack + SlackFudge) / float64(c.Segments-1)
}

// Validate rejects configurations the engine cannot be built from.
func (c Config) Validate() error {
	if c.Segments < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSegments, c.Segments)
	}
	if !(c.RestLength() > 0) {
		return fmt.Errorf("%w: length %.2f", ErrBadLength, c.Length)
	}
	return nil
}
