package classifier

// AvailabilityLevel best accommodation still purchasable under the full refund tier.
// None < Seat < Couchette < PrivateCouchette < Bed. PrivateCouchetteOrBed is reported when private couchettes
// and beds are both on sale and is not ordered against the others.
type AvailabilityLevel uint8

const (
	None AvailabilityLevel = iota
	Seat
	Couchette
	PrivateCouchette
	Bed
	PrivateCouchetteOrBed
)

func (al AvailabilityLevel) String() string {
	switch al {
	case None:
		return "None"
	case Seat:
		return "Seat"
	case Couchette:
		return "Couchette"
	case PrivateCouchette:
		return "Private_Couchette"
	case Bed:
		return "Bed"
	case PrivateCouchetteOrBed:
		return "Private_Couchette_Or_Bed"
	}
	return "Unknown"
}

// LevelEntry categories that make a level available
type LevelEntry struct {
	Level      AvailabilityLevel
	Categories []string
}

func (le LevelEntry) intersects(prices CategoryPrices) bool {
	for _, category := range le.Categories {
		if _, ok := prices[category]; ok {
			return true
		}
	}
	return false
}

// LevelTable ordered mapping from level to category identifiers. The order of the entries is the order in
// which levels are evaluated.
type LevelTable []LevelEntry

// DefaultLevelTable returns the table of the categories currently sold on night trains. Each call returns a new table.
func DefaultLevelTable() LevelTable {
	return LevelTable{
		{
			Level: Seat,
			Categories: []string{
				"sideCorridorCoach_2",
				"privateSeat",
				"centralGangwayCoachComfort_2",
				"centralGangwayCoachWithTableComfort_2",
				"serverlyDisabledPerson",
			},
		},
		{
			Level: Couchette,
			Categories: []string{
				"couchette4",
				"couchette6",
				"couchette4comfort",
				"femaleCouchette4",
				"femaleCouchette6",
				"femaleCouchette4comfort",
				"couchetteMiniSuite",
			},
		},
		{
			Level:      PrivateCouchette,
			Categories: []string{"privateCouchette", "privateCouchette4comfort"},
		},
		{
			Level: Bed,
			Categories: []string{
				"single",
				"singleWithShowerWC",
				"double",
				"doubleWithShowerWC",
				"singleComfort",
				"doubleComfort",
				"singleComfortPlus",
				"doubleComfortPlus",
			},
		},
	}
}

// Level walks the table in order and keeps the last level with a category on sale. A bed following a private
// couchette yields PrivateCouchetteOrBed. Categories missing from the table are ignored.
func (lt LevelTable) Level(prices CategoryPrices) AvailabilityLevel {
	current := None
	for _, entry := range lt {
		if !entry.intersects(prices) {
			continue
		}
		if entry.Level == Bed && current == PrivateCouchette {
			current = PrivateCouchetteOrBed
			continue
		}
		current = entry.Level
	}
	return current
}

func (lt LevelTable) clone() LevelTable {
	table := make(LevelTable, len(lt))
	for i, entry := range lt {
		categories := make([]string, len(entry.Categories))
		copy(categories, entry.Categories)
		table[i] = LevelEntry{Level: entry.Level, Categories: categories}
	}
	return table
}
