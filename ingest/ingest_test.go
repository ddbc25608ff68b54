package ingest

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFileRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecord(&buf, []byte("key1"), []byte("value1")))
	require.NoError(t, WriteRecord(&buf, []byte{0}, []byte{}))

	var got []Record
	count, err := ReadAll(&buf, func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, got, 2)
	assert.Equal(t, []byte("key1"), got[0].Key)
	assert.Equal(t, []byte("value1"), got[0].Value)
	assert.Equal(t, []byte{0}, got[1].Key)
}

func TestImportFileShortReadMidRecordIsFatal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecord(&buf, []byte("abcd"), []byte("value")))
	truncated := buf.Bytes()[:buf.Len()-2]

	_, err := ReadAll(bytes.NewReader(truncated), func(Record) error { return nil })
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestProjectProfileRequiredFields(t *testing.T) {
	raw := []byte(`{
		"id_str": "240454812",
		"screen_name": "GenFlynn",
		"name": "General Flynn",
		"followers_count": 100,
		"friends_count": 10,
		"listed_count": 1,
		"favourites_count": 5,
		"statuses_count": 42,
		"created_at": "Wed Oct 10 20:19:24 +0000 2018",
		"profile_image_url_https": "https://example.invalid/a.png",
		"default_profile": false,
		"default_profile_image": false
	}`)

	snap, err := ProjectProfile(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(240454812), snap.ID)
	assert.Equal(t, "GenFlynn", snap.ScreenName)
	assert.Equal(t, uint64(100), snap.FollowersCount)
	assert.Nil(t, snap.Location)
}

func TestProjectProfileOptionalFields(t *testing.T) {
	raw := []byte(`{
		"id_str": "1",
		"screen_name": "alice",
		"name": "Alice",
		"followers_count": 1,
		"friends_count": 1,
		"listed_count": 0,
		"favourites_count": 0,
		"statuses_count": 1,
		"created_at": "Wed Oct 10 20:19:24 +0000 2018",
		"profile_image_url_https": "https://example.invalid/a.png",
		"default_profile": true,
		"default_profile_image": true,
		"location": "Internet",
		"withheld_in_countries": ["DE", "FR"]
	}`)

	snap, err := ProjectProfile(raw)
	require.NoError(t, err)
	require.NotNil(t, snap.Location)
	assert.Equal(t, "Internet", *snap.Location)
	assert.Equal(t, []string{"DE", "FR"}, snap.WithheldInCountries)
}

func TestProjectProfileMissingRequiredFieldFails(t *testing.T) {
	raw := []byte(`{"id_str": "1"}`)
	_, err := ProjectProfile(raw)
	require.Error(t, err)
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
}
