// Package domain models the three historical climate datasets the analyzer
// consumes and the year-aligned records produced by merging them.
//
// # Temperature anomalies
//
// Annual global mean surface temperature anomalies, e.g. the Berkeley Earth /
// GISTEMP "annual.csv" distribution:
//
//	Source,Year,Mean
//	GCAG,2016,0.9363
//	GISTEMP,2016,0.99
//
// Anomalies are degrees Celsius relative to the publisher's baseline period.
// A year may appear once per source; sources are averaged to a single reading
// per year. Rows with a missing or unparseable Year or Mean are dropped.
//
// # CO2 concentration
//
// Monthly globally averaged marine surface CO2, NOAA GML "co2-mm-gl.csv" layout:
//
//	Date,Decimal Date,Average,Trend
//	1980-01,1980.042,338.45,338.24
//
// Date is YYYY-MM. Average is ppm. NOAA marks missing months with the sentinel
// -99.99; any value <= 0 is treated as missing. Months are averaged to an
// annual mean per calendar year.
//
// # Climate-related disasters
//
// IMF Climate-Related Disasters Frequency dataset, wide format: one row per
// (Country, Indicator) pair with one column per year:
//
//	Country,Indicator,...,1980,1981,...,2023
//
// Indicator strings end in the disaster type, e.g.
// "Climate related disasters frequency, Number of Disasters: TOTAL" or
// ": Drought", ": Flood", ": Storm", ": Wildfire", ": Landslide",
// ": Extreme temperature". The aggregate series for the whole world is the
// country row "All Countries and International Organizations". Empty year
// cells mean no events were recorded.
//
// # Merging
//
// Datasets are inner-joined on year: the merged series contains exactly the
// years present in every loaded input, in ascending order. An empty
// intersection is an error, never an empty output.
package domain
