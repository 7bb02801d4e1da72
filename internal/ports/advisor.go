package ports

import "debloat/internal/domain"

// Advice is the assistant's safety assessment for one package
type Advice struct {
	PackageID      string
	Category       domain.Category
	Summary        string // what the package does
	Recommendation string // e.g. "keep", "remove if unused"
}

// Advisor defines the interface for AI-powered removal advice
type Advisor interface {
	// Advise analyzes packages and returns a safety assessment per package
	Advise(pkgs []domain.Package) ([]Advice, error)

	// IsAvailable returns true if the advisor backend (e.g. Claude CLI) is available
	IsAvailable() bool
}
