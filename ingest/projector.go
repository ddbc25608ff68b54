package ingest

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/archivelab/statuslol/profile"
)

// twitterTimeLayout is the Go strftime-equivalent of "%a %b %d %H:%M:%S %z %Y".
const twitterTimeLayout = "Mon Jan 2 15:04:05 -0700 2006"

// MissingFieldError reports that a required field was absent from an
// inbound JSON profile object. It is fatal to the record it names, not to
// the store: the caller skips the record and continues.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return "missing field: " + e.Field
}

// ProjectProfile decodes a single inbound JSON profile object into a
// profile.Snapshot, extracting the created_at Twitter timestamp into
// milliseconds since the epoch.
func ProjectProfile(raw json.RawMessage) (profile.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return profile.Snapshot{}, errors.Wrap(err, "decode profile JSON")
	}

	idStr, err := requiredString(fields, "id_str")
	if err != nil {
		return profile.Snapshot{}, err
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return profile.Snapshot{}, errors.Wrap(err, "parse id_str")
	}

	screenName, err := requiredString(fields, "screen_name")
	if err != nil {
		return profile.Snapshot{}, err
	}
	name, err := requiredString(fields, "name")
	if err != nil {
		return profile.Snapshot{}, err
	}
	followers, err := requiredUint(fields, "followers_count")
	if err != nil {
		return profile.Snapshot{}, err
	}
	friends, err := requiredUint(fields, "friends_count")
	if err != nil {
		return profile.Snapshot{}, err
	}
	listed, err := requiredUint(fields, "listed_count")
	if err != nil {
		return profile.Snapshot{}, err
	}
	favourites, err := requiredUint(fields, "favourites_count")
	if err != nil {
		return profile.Snapshot{}, err
	}
	statuses, err := requiredUint(fields, "statuses_count")
	if err != nil {
		return profile.Snapshot{}, err
	}
	createdAtStr, err := requiredString(fields, "created_at")
	if err != nil {
		return profile.Snapshot{}, err
	}
	createdAt, err := time.Parse(twitterTimeLayout, createdAtStr)
	if err != nil {
		return profile.Snapshot{}, errors.Wrap(err, "parse created_at")
	}
	profileImageURL, err := requiredString(fields, "profile_image_url_https")
	if err != nil {
		return profile.Snapshot{}, err
	}
	defaultProfile, err := requiredBool(fields, "default_profile")
	if err != nil {
		return profile.Snapshot{}, err
	}
	defaultProfileImage, err := requiredBool(fields, "default_profile_image")
	if err != nil {
		return profile.Snapshot{}, err
	}

	var withheld []string
	if raw, ok := fields["withheld_in_countries"]; ok {
		if err := json.Unmarshal(raw, &withheld); err != nil {
			return profile.Snapshot{}, errors.Wrap(err, "parse withheld_in_countries")
		}
	}

	return profile.Snapshot{
		ID:                        id,
		ScreenName:                screenName,
		Name:                      name,
		Location:                  optionalString(fields, "location"),
		URL:                       optionalString(fields, "url"),
		Description:               optionalString(fields, "description"),
		Protected:                 optionalBool(fields, "protected"),
		Verified:                  optionalBool(fields, "verified"),
		FollowersCount:            followers,
		FriendsCount:              friends,
		ListedCount:               listed,
		FavouritesCount:           favourites,
		StatusesCount:             statuses,
		CreatedAtMillis:           uint64(createdAt.UnixMilli()),
		ProfileImageURL:           profileImageURL,
		ProfileBannerURL:          optionalString(fields, "profile_banner_url"),
		ProfileBackgroundImageURL: optionalString(fields, "profile_background_image_url_https"),
		DefaultProfile:            defaultProfile,
		DefaultProfileImage:       defaultProfileImage,
		WithheldInCountries:       withheld,
		TimeZone:                  optionalString(fields, "time_zone"),
		Lang:                      optionalString(fields, "lang"),
		GeoEnabled:                optionalBool(fields, "geo_enabled"),
	}, nil
}

func requiredString(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", MissingFieldError{Field: name}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.Wrapf(err, "field %s is not a string", name)
	}
	return s, nil
}

func requiredUint(fields map[string]json.RawMessage, name string) (uint64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, MissingFieldError{Field: name}
	}
	var v uint64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, errors.Wrapf(err, "field %s is not a number", name)
	}
	return v, nil
}

func requiredBool(fields map[string]json.RawMessage, name string) (bool, error) {
	raw, ok := fields[name]
	if !ok {
		return false, MissingFieldError{Field: name}
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, errors.Wrapf(err, "field %s is not a bool", name)
	}
	return v, nil
}

func optionalString(fields map[string]json.RawMessage, name string) *string {
	raw, ok := fields[name]
	if !ok {
		return nil
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

func optionalBool(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	var v bool
	_ = json.Unmarshal(raw, &v)
	return v
}
