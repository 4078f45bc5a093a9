package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "clean", input: "grb-kluba_2025.png", want: "grb-kluba_2025.png"},
		{name: "path traversal", input: "../../etc/passwd.jpg", want: ".._.._etc_passwd.jpg"},
		{name: "spaces collapse", input: "prva  utakmica.jpg", want: "prva_utakmica.jpg"},
		{name: "unicode", input: "pobeda čukarički.jpg", want: "pobeda_ukari_ki.jpg"},
		{name: "empty", input: "", want: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Caps(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 300) + ".jpg")
	assert.Len(t, got, MaxFilenameLength)
}

func TestMediaAsset_ObjectKey(t *testing.T) {
	at := time.UnixMilli(1760000000123)
	m := MediaAsset{Filename: "slika.jpg"}
	assert.Equal(t, "news/1760000000123_slika.jpg", m.ObjectKey("news", at))
}

func TestTableReplacement_Stamped(t *testing.T) {
	tr := TableReplacement{
		Season: "2025/2026",
		Round:  "12",
		Rows: []TableRow{
			{Team: "A", Points: 10, Season: "old"},
			{Team: "B", Points: 7},
		},
	}

	stamped := tr.Stamped()
	assert.Equal(t, []TableRow{
		{Season: "2025/2026", Round: "12", Team: "A", Points: 10},
		{Season: "2025/2026", Round: "12", Team: "B", Points: 7},
	}, stamped)
	assert.Equal(t, "old", tr.Rows[0].Season)
}

func TestRows_OptionalFieldsAreNil(t *testing.T) {
	news := NewsPost{Title: "t", Body: "b"}.Row()
	assert.Nil(t, news["image_url"])

	img := "https://x/y.jpg"
	news = NewsPost{Title: "t", Body: "b", ImageURL: &img}.Row()
	assert.Equal(t, img, news["image_url"])

	match := Match{Competition: DefaultCompetition, HomeTeam: "A", AwayTeam: "B", Status: DefaultMatchStatus}.Row()
	assert.Nil(t, match["match_date"])
	assert.Nil(t, match["match_time"])
	assert.Nil(t, match["venue"])
	assert.Nil(t, match["round"])
	assert.Equal(t, "Zona Dunav", match["competition"])
}
