package config

import "fmt"

// DomainConfig holds all configurable editing rules for journeys and segments
type DomainConfig struct {
	// Node duplication
	DuplicateOffsetX float64
	DuplicateOffsetY float64

	// Journey lifecycle
	InitialJourneyVersion int
	BumpVersionOnPublish  bool

	// Soft limits, enforced only at the HTTP boundary
	MaxNodesPerJourney   int
	MaxConditionDepth    int
	MaxJourneyNameLength int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		DuplicateOffsetX: 50,
		DuplicateOffsetY: 50,

		InitialJourneyVersion: 1,
		BumpVersionOnPublish:  true,

		MaxNodesPerJourney:   500,
		MaxConditionDepth:    8,
		MaxJourneyNameLength: 120,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxNodesPerJourney = 250
	config.MaxConditionDepth = 5

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxNodesPerJourney = 5000
	config.MaxConditionDepth = 32

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.InitialJourneyVersion < 1 {
		return fmt.Errorf("initial journey version must be at least 1, got %d", c.InitialJourneyVersion)
	}
	if c.MaxNodesPerJourney < 1 {
		return fmt.Errorf("max nodes per journey must be positive, got %d", c.MaxNodesPerJourney)
	}
	if c.MaxConditionDepth < 1 {
		return fmt.Errorf("max condition depth must be positive, got %d", c.MaxConditionDepth)
	}
	return nil
}
