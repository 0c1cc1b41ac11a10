package analysis

import (
	"database/sql"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdash/music-explorer/internal/dataset"
)

// term is one side of a vibe predicate: column op threshold. absent is the
// value the comparison falls back to when the column is wholly missing from
// the dataset; every absent default is chosen so the comparison fails and
// the vibe degrades to an empty playlist. Rows where the column is NULL are
// excluded by the SQL comparison itself.
type term struct {
	column    string
	op        string
	threshold float64
	absent    float64
	optional  bool // drop the term instead of defaulting when missing
}

var vibes = map[string][]term{
	"chill": {
		{column: "energy", op: "<", threshold: 0.4, absent: 1},
		{column: "acousticness", op: ">", threshold: 0.6, absent: 0},
	},
	"energetic": {
		{column: "energy", op: ">", threshold: 0.8, absent: 0},
		{column: "acousticness", op: "<", threshold: 0.2, absent: 1},
	},
	"gloomy": {
		{column: "valence", op: "<", threshold: 0.3, absent: 1},
		{column: "energy", op: "<", threshold: 0.4, absent: 1},
	},
	"party": {
		{column: "danceability", op: ">", threshold: 0.8, absent: 0},
		{column: "energy", op: ">", threshold: 0.7, absent: 0},
	},
	"sporty": {
		{column: "tempo", op: ">", threshold: 120, absent: 0, optional: true},
		{column: "energy", op: ">", threshold: 0.8, absent: 0},
	},
}

// Vibes lists the recognized vibe names, sorted.
func Vibes() []string {
	names := make([]string, 0, len(vibes))
	for name := range vibes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SongsByVibe returns a random sample, without replacement, of up to
// numSongs songs matching the named vibe, plus the total number of matches.
// A non-zero seed makes the selection deterministic; seed 0 seeds from the
// current time. Unknown vibes and missing feature columns yield an empty
// result.
func SongsByVibe(d *dataset.Dataset, vibe string, numSongs int, seed int64) ([]Song, int, error) {
	terms, known := vibes[vibe]
	if !known {
		return nil, 0, nil
	}
	caps := d.Caps()
	if !caps.HasTitle || !caps.HasArtist {
		return nil, 0, nil
	}

	var conds []string
	for _, t := range terms {
		if !caps.HasFeature(t.column) {
			if t.optional {
				continue
			}
			if !holds(t.absent, t.op, t.threshold) {
				return nil, 0, nil
			}
			continue
		}
		conds = append(conds, fmt.Sprintf("%s %s %s", t.column, t.op, strconv.FormatFloat(t.threshold, 'f', -1, 64)))
	}

	cols := "title, artist"
	withPopularity := caps.HasPopularity
	if withPopularity {
		cols += ", popularity"
	}
	withURI := caps.HasTrackURI
	if withURI {
		cols += ", track_uri"
	}
	query := "SELECT " + cols + " FROM merged"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := d.DB().Query(query)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s songs: %w", vibe, err)
	}
	defer rows.Close()

	matches, err := scanSongs(rows, withPopularity, withURI)
	if err != nil {
		return nil, 0, err
	}
	total := len(matches)
	if total == 0 || numSongs <= 0 {
		return nil, total, nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	if len(matches) > numSongs {
		matches = matches[:numSongs]
	}
	return matches, total, nil
}

func holds(value float64, op string, threshold float64) bool {
	if op == "<" {
		return value < threshold
	}
	return value > threshold
}

func scanSongs(rows *sql.Rows, withPopularity, withURI bool) ([]Song, error) {
	var out []Song
	for rows.Next() {
		var s Song
		var title, artist, uri sql.NullString
		var popularity sql.NullFloat64
		dest := []interface{}{&title, &artist}
		if withPopularity {
			dest = append(dest, &popularity)
		}
		if withURI {
			dest = append(dest, &uri)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		s.Title = title.String
		s.Artist = artist.String
		s.Popularity = popularity.Float64
		s.URI = uri.String
		out = append(out, s)
	}
	return out, rows.Err()
}
