// Package provider defines the capability interface for external address
// validation services. The orchestrator is polymorphic over any vendor that
// can look up a structured address and return standardized candidates.
package provider

import "context"

// Query is the structured input for a lookup. Street is the only required
// field; the rest enrich the query when the local parser could fill them.
type Query struct {
	Street        string
	City          string
	State         string
	Zip           string
	MaxCandidates int
}

// Candidate is one proposed standardized address returned by a provider.
type Candidate struct {
	DeliveryLine string
	City         string
	State        string
	Zip5         string
	Plus4        string

	// ConfidenceCode is the provider's delivery-point-validation indicator.
	// "Y" means a confident deliverable match.
	ConfidenceCode string
}

// Confident reports whether the candidate is a confident deliverable match.
func (c Candidate) Confident() bool {
	return c.ConfidenceCode == "Y"
}

// ZipCode formats the candidate zip as ZIP5-ZIP4, or ZIP5 alone when no
// plus-four code exists.
func (c Candidate) ZipCode() string {
	if c.Plus4 == "" {
		return c.Zip5
	}
	return c.Zip5 + "-" + c.Plus4
}

// Provider looks up address candidates from an external service. Lookup must
// honor context cancellation; an empty candidate slice with a nil error means
// the address is not deliverable.
type Provider interface {
	Lookup(ctx context.Context, q Query) ([]Candidate, error)
}
