package normalizer

// abbreviations maps common US street and directional abbreviations to their
// expansions. Matching is whole-token only.
var abbreviations = map[string]string{
	"st":   "street",
	"ave":  "avenue",
	"apt":  "apartment",
	"rd":   "road",
	"blvd": "boulevard",
	"ln":   "lane",
	"dr":   "drive",
	"ct":   "court",
	"pl":   "place",
	"sq":   "square",
	"ste":  "suite",
	"hwy":  "highway",
	"pkwy": "parkway",
	"cir":  "circle",
	"n":    "north",
	"s":    "south",
	"e":    "east",
	"w":    "west",
	"ne":   "northeast",
	"nw":   "northwest",
	"se":   "southeast",
	"sw":   "southwest",
}
