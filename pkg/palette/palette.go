// Package palette provides the named color palettes used to tag branch
// segments. A palette is selected once per generation run and cycled by
// recursion level.
package palette

// Color is a named color with its hex representation for mesh output.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette is a fixed ordered sequence of colors.
type Palette struct {
	Name   string
	Colors []Color
}

// DefaultIndex selects the warm palette.
const DefaultIndex = 0

// palettes holds the 8 predefined palettes. Index 0 is the default.
var palettes = []Palette{
	{
		Name: "warm",
		Colors: []Color{
			{"sienna", "#A0522D"},
			{"peru", "#CD853F"},
			{"chocolate", "#D2691E"},
			{"darkorange", "#FF8C00"},
			{"orange", "#FFA500"},
			{"gold", "#FFD700"},
		},
	},
	{
		Name: "cool",
		Colors: []Color{
			{"midnightblue", "#191970"},
			{"steelblue", "#4682B4"},
			{"dodgerblue", "#1E90FF"},
			{"deepskyblue", "#00BFFF"},
			{"turquoise", "#40E0D0"},
			{"aquamarine", "#7FFFD4"},
		},
	},
	{
		Name: "forest",
		Colors: []Color{
			{"saddlebrown", "#8B4513"},
			{"darkolivegreen", "#556B2F"},
			{"olivedrab", "#6B8E23"},
			{"forestgreen", "#228B22"},
			{"limegreen", "#32CD32"},
			{"greenyellow", "#ADFF2F"},
		},
	},
	{
		Name: "autumn",
		Colors: []Color{
			{"maroon", "#800000"},
			{"brown", "#A52A2A"},
			{"firebrick", "#B22222"},
			{"orangered", "#FF4500"},
			{"darkgoldenrod", "#B8860B"},
			{"goldenrod", "#DAA520"},
		},
	},
	{
		Name: "pastel",
		Colors: []Color{
			{"thistle", "#D8BFD8"},
			{"lightpink", "#FFB6C1"},
			{"peachpuff", "#FFDAB9"},
			{"palegoldenrod", "#EEE8AA"},
			{"palegreen", "#98FB98"},
			{"lightblue", "#ADD8E6"},
		},
	},
	{
		Name: "neon",
		Colors: []Color{
			{"magenta", "#FF00FF"},
			{"deeppink", "#FF1493"},
			{"lime", "#00FF00"},
			{"cyan", "#00FFFF"},
			{"yellow", "#FFFF00"},
			{"blueviolet", "#8A2BE2"},
		},
	},
	{
		Name: "mono",
		Colors: []Color{
			{"black", "#000000"},
			{"dimgray", "#696969"},
			{"gray", "#808080"},
			{"darkgray", "#A9A9A9"},
			{"silver", "#C0C0C0"},
			{"gainsboro", "#DCDCDC"},
		},
	},
	{
		Name: "earth",
		Colors: []Color{
			{"darkslategray", "#2F4F4F"},
			{"sienna", "#A0522D"},
			{"rosybrown", "#BC8F8F"},
			{"tan", "#D2B48C"},
			{"khaki", "#F0E68C"},
			{"wheat", "#F5DEB3"},
		},
	},
}

// Count returns the number of predefined palettes.
func Count() int {
	return len(palettes)
}

// Select returns the palette at the given index. Out-of-range indices
// fall back to the default warm palette rather than failing.
func Select(index int) Palette {
	if index < 0 || index >= len(palettes) {
		return palettes[DefaultIndex]
	}
	return palettes[index]
}

// Names returns the names of all predefined palettes in index order.
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// At returns the color for a recursion level, cycling through the
// palette: Colors[level mod len(Colors)].
func (p Palette) At(level int) Color {
	if len(p.Colors) == 0 {
		return Color{}
	}
	return p.Colors[level%len(p.Colors)]
}
