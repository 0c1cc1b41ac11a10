// Package analysis is the query layer over the merged track table. Every
// function is pure with respect to the dataset and degrades to an empty
// result when a required column is absent or nothing matches, so callers
// never branch on error types for data gaps.
package analysis

import (
	"fmt"

	"github.com/pdash/music-explorer/internal/dataset"
)

// TopArtists returns up to topN artists for the given year, ranked by mean
// track popularity descending. Ties are broken by artist name ascending.
func TopArtists(d *dataset.Dataset, year, topN int) ([]ArtistPopularity, error) {
	caps := d.Caps()
	if !caps.HasYear || !caps.HasArtist || !caps.HasPopularity {
		return nil, nil
	}

	const query = `
	SELECT artist, AVG(popularity)
	FROM merged
	WHERE CAST(year AS INTEGER) = ?
	AND artist IS NOT NULL
	AND popularity IS NOT NULL
	GROUP BY artist
	ORDER BY AVG(popularity) DESC, artist ASC
	LIMIT ?
	;
	`
	rows, err := d.DB().Query(query, year, topN)
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var out []ArtistPopularity
	for rows.Next() {
		var a ArtistPopularity
		if err := rows.Scan(&a.Artist, &a.MeanPopularity); err != nil {
			return nil, fmt.Errorf("scanning top artist: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MostPopularSongs returns the topN most popular songs of the given year.
// Ties are broken by title ascending.
func MostPopularSongs(d *dataset.Dataset, year, topN int) ([]Song, error) {
	caps := d.Caps()
	if !caps.HasYear || !caps.HasTitle || !caps.HasArtist || !caps.HasPopularity {
		return nil, nil
	}

	const query = `
	SELECT title, artist, popularity
	FROM merged
	WHERE CAST(year AS INTEGER) = ?
	AND popularity IS NOT NULL
	ORDER BY popularity DESC, title ASC
	LIMIT ?
	;
	`
	rows, err := d.DB().Query(query, year, topN)
	if err != nil {
		return nil, fmt.Errorf("querying top songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows, true, false)
}

// MostPopularSongByYear returns the single most popular song of the year.
// ok is false when the year has no rows or required columns are missing.
func MostPopularSongByYear(d *dataset.Dataset, year int) (song Song, ok bool, err error) {
	songs, err := MostPopularSongs(d, year, 1)
	if err != nil || len(songs) == 0 {
		return Song{}, false, err
	}
	return songs[0], true, nil
}

// CompareArtists returns mean popularity per (year, artist) for the two
// named artists, ordered by year then artist. Years with no data for either
// artist produce no rows.
func CompareArtists(d *dataset.Dataset, artist1, artist2 string) ([]ComparisonRow, error) {
	caps := d.Caps()
	if !caps.HasYear || !caps.HasArtist || !caps.HasPopularity {
		return nil, nil
	}

	const query = `
	SELECT CAST(year AS INTEGER), artist, AVG(popularity)
	FROM merged
	WHERE artist IN (?, ?)
	AND year IS NOT NULL
	AND popularity IS NOT NULL
	GROUP BY CAST(year AS INTEGER), artist
	ORDER BY CAST(year AS INTEGER) ASC, artist ASC
	;
	`
	rows, err := d.DB().Query(query, artist1, artist2)
	if err != nil {
		return nil, fmt.Errorf("comparing artists: %w", err)
	}
	defer rows.Close()

	var out []ComparisonRow
	for rows.Next() {
		var r ComparisonRow
		if err := rows.Scan(&r.Year, &r.Artist, &r.MeanPopularity); err != nil {
			return nil, fmt.Errorf("scanning comparison row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Years lists the distinct years present in the dataset, newest first.
func Years(d *dataset.Dataset) ([]int, error) {
	if !d.Caps().HasYear {
		return nil, nil
	}

	const query = `
	SELECT DISTINCT CAST(year AS INTEGER)
	FROM merged
	WHERE year IS NOT NULL
	ORDER BY 1 DESC
	;
	`
	rows, err := d.DB().Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scanning year: %w", err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}
