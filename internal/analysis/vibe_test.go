package analysis

import (
	"reflect"
	"testing"
)

const vibePrimary = `id,name,artists,year
t1,Calm One,Artist A,2020
t2,Calm Two,Artist B,2020
t3,Floor Filler,Artist C,2020
t4,Rainy Day,Artist D,2020
t5,Middle Ground,Artist E,2020
t6,No Features,Artist F,2020
`

const vibeSecondary = `track_id,track_name,artists,popularity,energy,valence,acousticness,danceability,tempo
t1,Calm One,Artist A,50,0.2,0.5,0.9,0.4,90
t2,Calm Two,Artist B,55,0.3,0.6,0.7,0.5,95
t3,Floor Filler,Artist C,90,0.95,0.9,0.1,0.9,130
t4,Rainy Day,Artist D,40,0.2,0.1,0.5,0.3,80
t5,Middle Ground,Artist E,60,0.5,0.5,0.5,0.5,110
t6,No Features,Artist F,30,,,,,
`

func titles(songs []Song) []string {
	var out []string
	for _, s := range songs {
		out = append(out, s.Title)
	}
	return out
}

func TestSongsByVibeChill(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	songs, total, err := SongsByVibe(d, "chill", 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	got := map[string]bool{}
	for _, s := range songs {
		got[s.Title] = true
	}
	if !got["Calm One"] || !got["Calm Two"] || len(got) != 2 {
		t.Errorf("chill playlist = %v, want exactly Calm One and Calm Two", titles(songs))
	}
}

func TestSongsByVibePredicates(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	cases := map[string]string{
		"energetic": "Floor Filler",
		"party":     "Floor Filler",
		"sporty":    "Floor Filler",
		"gloomy":    "Rainy Day",
	}
	for vibe, want := range cases {
		songs, total, err := SongsByVibe(d, vibe, 10, 1)
		if err != nil {
			t.Fatalf("%s: %v", vibe, err)
		}
		if total != 1 || len(songs) != 1 || songs[0].Title != want {
			t.Errorf("%s playlist = %v (total %d), want [%s]", vibe, titles(songs), total, want)
		}
	}
}

func TestSongsByVibeRespectsLimit(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	songs, total, err := SongsByVibe(d, "chill", 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 1 {
		t.Errorf("got %d songs, want 1", len(songs))
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}

func TestSongsByVibeSeededSelectionIsDeterministic(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	first, _, err := SongsByVibe(d, "chill", 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := SongsByVibe(d, "chill", 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed picked different songs: %v vs %v", titles(first), titles(second))
	}
}

func TestSongsByVibeUnknownVibe(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	songs, total, err := SongsByVibe(d, "melancholic-bangers", 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 0 || total != 0 {
		t.Errorf("unknown vibe returned %v", titles(songs))
	}
}

func TestSongsByVibeSportyWithoutTempoColumn(t *testing.T) {
	d := newTestDataset(t, vibePrimary,
		`track_id,track_name,artists,popularity,energy
t3,Floor Filler,Artist C,90,0.95
t5,Middle Ground,Artist E,60,0.5
`)

	// tempo is absent, so sporty falls back to the energy threshold alone.
	songs, total, err := SongsByVibe(d, "sporty", 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(songs) != 1 || songs[0].Title != "Floor Filler" {
		t.Errorf("sporty playlist = %v, want [Floor Filler]", titles(songs))
	}
}

func TestSongsByVibeMissingFeatureColumns(t *testing.T) {
	d := newTestDataset(t,
		"id,name,artists,year\nt1,Song A,Artist X,2010\n",
		"track_id,track_name,artists,popularity\nt1,Song A,Artist X,77\n")

	for _, vibe := range Vibes() {
		songs, total, err := SongsByVibe(d, vibe, 10, 1)
		if err != nil {
			t.Fatalf("%s must not error on missing features: %v", vibe, err)
		}
		if len(songs) != 0 || total != 0 {
			t.Errorf("%s returned %v without any feature columns", vibe, titles(songs))
		}
	}
}

func TestSongsByVibeWithoutPopularityColumn(t *testing.T) {
	d := newTestDataset(t,
		`id,name,artists,year,energy,acousticness
t1,Calm One,Artist A,2020,0.2,0.9
t2,Calm Two,Artist B,2020,0.3,0.7
t3,Floor Filler,Artist C,2020,0.95,0.1
`,
		"track_id,track_uri\nt1,spotify:track:1\nt2,spotify:track:2\nt3,spotify:track:3\n")

	// Popularity never arrived from either dataset; matches still come back,
	// with a zero score.
	songs, total, err := SongsByVibe(d, "chill", 10, 1)
	if err != nil {
		t.Fatalf("SongsByVibe must not error without a popularity column: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	for _, s := range songs {
		if s.Popularity != 0 {
			t.Errorf("%s has popularity %v, want 0", s.Title, s.Popularity)
		}
		if s.URI == "" {
			t.Errorf("%s is missing its track URI", s.Title)
		}
	}
}

func TestSongsByVibeExcludesNullFeatureRows(t *testing.T) {
	d := newTestDataset(t, vibePrimary, vibeSecondary)

	songs, _, err := SongsByVibe(d, "chill", 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range songs {
		if s.Title == "No Features" {
			t.Error("row with NULL features must not qualify for a vibe")
		}
	}
}
