package domain

// DefaultRegion is the reference jurisdiction used when an unknown region
// is requested.
const DefaultRegion = "oregon"

// DefaultRateTables is the compiled-in reference rate card. It seeds the
// database on first start and serves as the fallback snapshot when the
// backing store is unavailable.
func DefaultRateTables() []RateTable {
	return []RateTable{
		{Region: "oregon", CurrencyCode: "USD", RecyclabilityDiscount: 0.25, PostconsumerDiscount: 0.15, ReusabilityDiscount: 0.30},
		{Region: "california", CurrencyCode: "USD", RecyclabilityDiscount: 0.20, PostconsumerDiscount: 0.18, ReusabilityDiscount: 0.25},
		{Region: "colorado", CurrencyCode: "USD", RecyclabilityDiscount: 0.22, PostconsumerDiscount: 0.12, ReusabilityDiscount: 0.28},
		{Region: "maine", CurrencyCode: "USD", RecyclabilityDiscount: 0.18, PostconsumerDiscount: 0.10, ReusabilityDiscount: 0.20},
		{Region: "maryland", CurrencyCode: "USD", RecyclabilityDiscount: 0.20, PostconsumerDiscount: 0.10, ReusabilityDiscount: 0.22},
		{Region: "minnesota", CurrencyCode: "USD", RecyclabilityDiscount: 0.24, PostconsumerDiscount: 0.14, ReusabilityDiscount: 0.26},
		{Region: "washington", CurrencyCode: "USD", RecyclabilityDiscount: 0.23, PostconsumerDiscount: 0.16, ReusabilityDiscount: 0.27},
		{Region: "quebec", CurrencyCode: "CAD", RecyclabilityDiscount: 0.26, PostconsumerDiscount: 0.15, ReusabilityDiscount: 0.30},
	}
}

// DefaultMaterialRates returns the compiled-in per-region material rates,
// in currency per kg.
func DefaultMaterialRates() []MaterialRate {
	type entry struct {
		name string
		rate float64
	}
	regions := map[string][]entry{
		"oregon": {
			{"Plastic (PET)", 0.45}, {"Plastic (HDPE)", 0.42}, {"Plastic (LDPE)", 0.58},
			{"Plastic (PP)", 0.48}, {"Plastic (PS)", 0.72}, {"Glass", 0.12},
			{"Aluminum", 0.18}, {"Steel", 0.15}, {"Paper", 0.22},
			{"Cardboard", 0.16}, {"Flexible Film", 0.65}, {"Composite Carton", 0.55},
		},
		"california": {
			{"Plastic (PET)", 0.52}, {"Plastic (HDPE)", 0.47}, {"Plastic (LDPE)", 0.64},
			{"Plastic (PP)", 0.53}, {"Plastic (PS)", 0.80}, {"Glass", 0.14},
			{"Aluminum", 0.20}, {"Steel", 0.17}, {"Paper", 0.25},
			{"Cardboard", 0.18}, {"Flexible Film", 0.72}, {"Composite Carton", 0.61},
		},
		"colorado": {
			{"Plastic (PET)", 0.40}, {"Plastic (HDPE)", 0.38}, {"Plastic (LDPE)", 0.54},
			{"Plastic (PP)", 0.44}, {"Plastic (PS)", 0.68}, {"Glass", 0.11},
			{"Aluminum", 0.16}, {"Steel", 0.14}, {"Paper", 0.20},
			{"Cardboard", 0.15}, {"Flexible Film", 0.60}, {"Composite Carton", 0.50},
		},
		"maine": {
			{"Plastic (PET)", 0.48}, {"Plastic (HDPE)", 0.44}, {"Plastic (LDPE)", 0.60},
			{"Plastic (PP)", 0.50}, {"Plastic (PS)", 0.75}, {"Glass", 0.13},
			{"Aluminum", 0.19}, {"Steel", 0.16}, {"Paper", 0.23},
			{"Cardboard", 0.17}, {"Flexible Film", 0.68}, {"Composite Carton", 0.57},
		},
		"maryland": {
			{"Plastic (PET)", 0.43}, {"Plastic (HDPE)", 0.40}, {"Plastic (LDPE)", 0.56},
			{"Plastic (PP)", 0.46}, {"Plastic (PS)", 0.70}, {"Glass", 0.12},
			{"Aluminum", 0.17}, {"Steel", 0.15}, {"Paper", 0.21},
			{"Cardboard", 0.16}, {"Flexible Film", 0.62}, {"Composite Carton", 0.52},
		},
		"minnesota": {
			{"Plastic (PET)", 0.44}, {"Plastic (HDPE)", 0.41}, {"Plastic (LDPE)", 0.57},
			{"Plastic (PP)", 0.47}, {"Plastic (PS)", 0.71}, {"Glass", 0.12},
			{"Aluminum", 0.18}, {"Steel", 0.15}, {"Paper", 0.22},
			{"Cardboard", 0.16}, {"Flexible Film", 0.63}, {"Composite Carton", 0.53},
		},
		"washington": {
			{"Plastic (PET)", 0.46}, {"Plastic (HDPE)", 0.43}, {"Plastic (LDPE)", 0.59},
			{"Plastic (PP)", 0.49}, {"Plastic (PS)", 0.73}, {"Glass", 0.13},
			{"Aluminum", 0.18}, {"Steel", 0.16}, {"Paper", 0.22},
			{"Cardboard", 0.17}, {"Flexible Film", 0.66}, {"Composite Carton", 0.56},
		},
		"quebec": {
			{"Plastic (PET)", 0.58}, {"Plastic (HDPE)", 0.54}, {"Plastic (LDPE)", 0.74},
			{"Plastic (PP)", 0.61}, {"Plastic (PS)", 0.92}, {"Glass", 0.16},
			{"Aluminum", 0.23}, {"Steel", 0.20}, {"Paper", 0.28},
			{"Cardboard", 0.21}, {"Flexible Film", 0.82}, {"Composite Carton", 0.70},
		},
	}

	var out []MaterialRate
	for region, entries := range regions {
		for _, e := range entries {
			out = append(out, MaterialRate{
				Region:       region,
				MaterialCode: NormalizeMaterialCode(e.name),
				MaterialName: e.name,
				RatePerKg:    e.rate,
			})
		}
	}
	return out
}
