// Package catalog holds the fixed set of puzzle categories: their display
// names, emoji and the search phrases used to find images for them.
package catalog

import "strings"

// DefaultEmoji is used for names that are not in the registry.
const DefaultEmoji = "📸"

type Category struct {
	Name        string   // directory and manifest key, e.g. "nature"
	Title       string   // display name, e.g. "Nature"
	Emoji       string
	SearchTerms []string // ordered, most relevant first
}

var registry = []Category{
	{
		Name:  "nature",
		Title: "Nature",
		Emoji: "🌿",
		SearchTerms: []string{
			"mountain landscape",
			"forest scenery",
			"waterfall",
			"sunset landscape",
			"ocean waves",
			"beach",
			"desert landscape",
			"meadow flowers",
		},
	},
	{
		Name:  "cities",
		Title: "Cities",
		Emoji: "🏙️",
		SearchTerms: []string{
			"city skyline",
			"urban architecture",
			"street photography",
			"downtown buildings",
			"modern skyscrapers",
			"night city lights",
			"city park",
			"urban landscape",
		},
	},
	{
		Name:  "animals",
		Title: "Animals",
		Emoji: "🦁",
		SearchTerms: []string{
			"wildlife nature",
			"lion animal",
			"elephant wildlife",
			"giraffe safari",
			"penguin bird",
			"eagle flying",
			"deer forest",
			"bear wildlife",
		},
	},
	{
		Name:  "art",
		Title: "Art",
		Emoji: "🎨",
		SearchTerms: []string{
			"abstract art",
			"colorful patterns",
			"modern art painting",
			"geometric shapes",
			"artistic design",
			"creative patterns",
			"digital art",
			"artistic illustration",
		},
	},
	{
		Name:  "kids",
		Title: "Kids",
		Emoji: "🎈",
		SearchTerms: []string{
			"colorful toys",
			"children playing",
			"bright colors fun",
			"playful design",
			"rainbow colors",
			"cute animals",
			"happy children",
			"fun colorful",
		},
	},
	{
		Name:  "abstract",
		Title: "Abstract",
		Emoji: "🌀",
		SearchTerms: []string{
			"abstract background",
			"geometric patterns",
			"texture background",
			"gradient colors",
			"modern design",
			"minimalist art",
			"color splash",
			"digital pattern",
		},
	},
}

// All returns the categories in registry order. The result is a copy;
// callers may modify it freely.
func All() []Category {
	out := make([]Category, len(registry))
	for i, c := range registry {
		c.SearchTerms = append([]string(nil), c.SearchTerms...)
		out[i] = c
	}
	return out
}

// Names returns the category names in registry order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, c := range registry {
		out = append(out, c.Name)
	}
	return out
}

// Lookup finds a category by name, ignoring case and surrounding spaces.
func Lookup(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range registry {
		if c.Name == name {
			c.SearchTerms = append([]string(nil), c.SearchTerms...)
			return c, true
		}
	}
	return Category{}, false
}

func EmojiFor(name string) string {
	if c, ok := Lookup(name); ok {
		return c.Emoji
	}
	return DefaultEmoji
}
