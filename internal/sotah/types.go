package sotah

import "time"

// RegionName identifies a region, e.g. "us" or "eu".
type RegionName string

// RealmSlug identifies a realm within its region.
type RealmSlug string

// Region mirrors an entry of the boot payload's region list.
type Region struct {
	Name     RegionName `json:"name"`
	Hostname string     `json:"hostname"`
}

// Population is the realm population bucket reported by the realm status API.
type Population string

const (
	PopulationNA     Population = "n/a"
	PopulationMedium Population = "medium"
	PopulationHigh   Population = "high"
	PopulationFull   Population = "full"
)

// Realm mirrors /region/{name}/realms entries.
type Realm struct {
	RegionName      RegionName  `json:"regionName"`
	Type            string      `json:"type"`
	Population      Population  `json:"population"`
	Queue           bool        `json:"queue"`
	Status          bool        `json:"status"`
	Name            string      `json:"name"`
	Slug            RealmSlug   `json:"slug"`
	Battlegroup     string      `json:"battlegroup"`
	Locale          string      `json:"locale"`
	Timezone        string      `json:"timezone"`
	ConnectedRealms []RealmSlug `json:"connected_realms"`
	LastModified    int64       `json:"last_modified"`
}

// LastModifiedTime returns the auction data timestamp, zero when unknown.
func (r Realm) LastModifiedTime() time.Time {
	if r.LastModified <= 0 {
		return time.Time{}
	}
	return time.Unix(r.LastModified, 0)
}

// ItemClassID identifies a top-level item class.
type ItemClassID int

// ItemSubClassID identifies a sub-class within an item class.
type ItemSubClassID int

// SubItemClass is one entry of an item class's sub-class list.
type SubItemClass struct {
	SubClass ItemSubClassID `json:"subclass"`
	Name     string         `json:"name"`
}

// ItemClass is a top-level item class with its ordered sub-classes.
type ItemClass struct {
	Class      ItemClassID    `json:"class"`
	Name       string         `json:"name"`
	SubClasses []SubItemClass `json:"subClasses"`
}

// Profession describes a crafting profession.
type Profession struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Expansion describes a game expansion.
type Expansion struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

// Boot is the bulk payload fetched once at startup.
type Boot struct {
	Regions     []Region     `json:"regions"`
	ItemClasses []ItemClass  `json:"item_classes"`
	Professions []Profession `json:"professions"`
	Expansions  []Expansion  `json:"expansions"`
}

// User is an authenticated account.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Level int    `json:"level"`
}

// Profile pairs a user with the bearer token that authenticates it.
type Profile struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserPreference is the user's last stored region/realm intent.
type UserPreference struct {
	ID            int64      `json:"id,omitempty"`
	UserID        int64      `json:"user_id,omitempty"`
	CurrentRegion RegionName `json:"current_region"`
	CurrentRealm  RealmSlug  `json:"current_realm"`
}

// PricelistEntry is a single item tracked by a pricelist.
type PricelistEntry struct {
	ID               int64 `json:"id"`
	PricelistID      int64 `json:"pricelist_id"`
	ItemID           int64 `json:"item_id"`
	QuantityModifier int   `json:"quantity_modifier"`
}

// Pricelist is a user-owned collection of market entries for one realm.
type Pricelist struct {
	ID      int64            `json:"id"`
	UserID  int64            `json:"user_id"`
	Name    string           `json:"name"`
	Region  RegionName       `json:"region"`
	Realm   RealmSlug        `json:"realm"`
	Entries []PricelistEntry `json:"pricelist_entries"`
}

type realmsResponse struct {
	Realms []Realm `json:"realms"`
}

type pricelistsResponse struct {
	Pricelists []Pricelist `json:"pricelists"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
