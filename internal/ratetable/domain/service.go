package domain

// Service is the read-only rate lookup used by the fee calculator.
// The snapshot is loaded once at startup and never mutated.
type Service interface {
	// Resolve returns the base rate for (region, materialType) with a tag
	// describing any fallback that was applied.
	Resolve(region, materialType string) Lookup

	// Region returns the regional snapshot. The bool reports whether the
	// requested region was unknown and the default region was substituted.
	Region(region string) (RegionalRates, bool)

	// Regions lists the supported region identifiers.
	Regions() []string
}
