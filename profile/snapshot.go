// Package profile stores and decodes point-in-time user profile snapshots
// in a store distinct from the primary tagged-key store. There is no merge
// operator: each (user, observation) pair is unique, keyed so a prefix
// scan by user id yields a time-ordered history.
package profile

// Snapshot is a single observed user profile, mirroring the fields the
// inbound JSON profile projection populates.
type Snapshot struct {
	ID                              uint64
	ScreenName                      string
	Name                            string
	Location                        *string
	URL                             *string
	Description                     *string
	Protected                       bool
	Verified                        bool
	FollowersCount                  uint64
	FriendsCount                    uint64
	ListedCount                     uint64
	FavouritesCount                 uint64
	StatusesCount                   uint64
	CreatedAtMillis                 uint64
	ProfileImageURL                 string
	ProfileBannerURL                *string
	ProfileBackgroundImageURL       *string
	DefaultProfile                  bool
	DefaultProfileImage             bool
	WithheldInCountries             []string
	TimeZone                        *string
	Lang                            *string
	GeoEnabled                      bool
}
