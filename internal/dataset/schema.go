package dataset

import (
	"database/sql"
	"fmt"
)

// Capabilities records which optional columns survived the merge. It is
// computed once after load so the query layer never probes the schema
// per-call.
type Capabilities struct {
	HasTitle      bool
	HasArtist     bool
	HasYear       bool
	HasPopularity bool
	HasTrackURI   bool

	HasEnergy       bool
	HasValence      bool
	HasAcousticness bool
	HasDanceability bool
	HasTempo        bool
}

// HasFeature reports whether the named audio-feature column is present.
func (c Capabilities) HasFeature(column string) bool {
	switch column {
	case "energy":
		return c.HasEnergy
	case "valence":
		return c.HasValence
	case "acousticness":
		return c.HasAcousticness
	case "danceability":
		return c.HasDanceability
	case "tempo":
		return c.HasTempo
	}
	return false
}

func detectCapabilities(columns []string) Capabilities {
	var caps Capabilities
	for _, c := range columns {
		switch c {
		case "title":
			caps.HasTitle = true
		case "artist":
			caps.HasArtist = true
		case "year":
			caps.HasYear = true
		case "popularity":
			caps.HasPopularity = true
		case "track_uri":
			caps.HasTrackURI = true
		case "energy":
			caps.HasEnergy = true
		case "valence":
			caps.HasValence = true
		case "acousticness":
			caps.HasAcousticness = true
		case "danceability":
			caps.HasDanceability = true
		case "tempo":
			caps.HasTempo = true
		}
	}
	return caps
}

func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("reading schema of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning schema of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}
