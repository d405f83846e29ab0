package domain

// TemperatureReading is one year of global mean surface temperature anomaly,
// in degrees Celsius relative to the source baseline.
type TemperatureReading struct {
	Year    int
	Anomaly float64
}

// CO2Reading is the annual mean atmospheric CO2 concentration in ppm.
type CO2Reading struct {
	Year int
	PPM  float64
}

// DisasterCount is the number of climate-related disaster events recorded in
// a year for the selected country and disaster type.
type DisasterCount struct {
	Year  int
	Count int
}

// AnnualRecord joins all measured series for a single year.
// Disasters is only meaningful when the containing series has disaster data.
type AnnualRecord struct {
	Year      int
	Anomaly   float64
	PPM       float64
	Disasters int
}

// SourceCounts reports how many distinct years each input contributed before
// the merge, and how many raw rows each loader discarded as unusable.
// Useful for logging and run metrics.
type SourceCounts struct {
	TemperatureYears int
	CO2Years         int
	DisasterYears    int

	TemperatureDropped int
	CO2Dropped         int
	DisastersDropped   int
}

// AnnualSeries is the year-aligned merged dataset, sorted by ascending year.
type AnnualSeries struct {
	Records      []AnnualRecord
	HasDisasters bool
	Sources      SourceCounts
}

// Years returns the record years in order.
func (s AnnualSeries) Years() []int {
	years := make([]int, len(s.Records))
	for i, r := range s.Records {
		years[i] = r.Year
	}
	return years
}

// Decade returns the decade a year belongs to, e.g. 1987 -> 1980.
func Decade(year int) int {
	return year - year%10
}
