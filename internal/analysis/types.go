package analysis

// ArtistPopularity is one row of a top-artists result.
type ArtistPopularity struct {
	Artist         string
	MeanPopularity float64
}

// Song is one track row of a query result. URI is empty unless the merged
// dataset carries a track_uri column.
type Song struct {
	Title      string
	Artist     string
	Popularity float64
	URI        string
}

// ComparisonRow is one (year, artist) mean-popularity pair from an artist
// comparison.
type ComparisonRow struct {
	Year           int
	Artist         string
	MeanPopularity float64
}
