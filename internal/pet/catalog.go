package pet

// Kind is a pet type offered for adoption.
type Kind struct {
	Emoji string
	Name  string
}

// Label returns the kind as shown in the adoption picker.
func (k Kind) Label() string {
	return k.Emoji + " " + k.Name
}

// Entry is a kind together with the phrases it speaks.
type Entry struct {
	Kind
	Phrases []string
}

// defaultPhrases is spoken by kinds without a phrase list.
var defaultPhrases = []string{"..."}

var builtinEntries = []Entry{
	{Kind{"🐒", "Monkey"}, []string{"Ook ook!", "Eee eee!", "Ooh ooh ah ah!"}},
	{Kind{"🐕", "Dog"}, []string{"Woof woof!", "Arf arf!", "Ruff!"}},
	{Kind{"🦧", "Orangutan"}, []string{"Oook!", "Hoo hoo!", "Grr grr!"}},
	{Kind{"🐩", "Poodle"}, []string{"Yip yip!", "Arf!", "Woof!"}},
	{Kind{"🐈", "Cat"}, []string{"Meow!", "Purrrr...", "Mrrrow!"}},
	{Kind{"🐈‍⬛", "Black Cat"}, []string{"Meow!", "Purrrr...", "Mrrrow!"}},
	{Kind{"🐅", "Tiger"}, []string{"Roar!", "Grrr!", "Rawwr!"}},
	{Kind{"🐆", "Leopard"}, []string{"Rawr!", "Grrrr!", "Hiss!"}},
	{Kind{"🫏", "Donkey"}, []string{"Hee-haw!", "Bray!", "Honk!"}},
	{Kind{"🐄", "Cow"}, []string{"Moo!", "Mooo!", "Moooo!"}},
	{Kind{"🐖", "Pig"}, []string{"Oink oink!", "Snort!", "Squeal!"}},
	{Kind{"🐁", "Mouse"}, []string{"Squeak!", "Pip pip!", "Eek!"}},
	{Kind{"🐀", "Rat"}, []string{"Squeak!", "Chirp!", "Eek!"}},
	{Kind{"🐇", "Rabbit"}, []string{"Thump!", "Snuffle!", "Purr!"}},
	{Kind{"🦔", "Hedgehog"}, []string{"Snuffle!", "Huff!", "Squeak!"}},
	{Kind{"🦨", "Skunk"}, []string{"Sniff!", "Purr!", "Chitter!"}},
	{Kind{"🦥", "Sloth"}, []string{"Eeee!", "Ahhh...", "Squeee!"}},
	{Kind{"🐓", "Rooster"}, []string{"Cock-a-doodle-doo!", "Bawk!", "Cluck!"}},
	{Kind{"🐢", "Turtle"}, []string{"*munching*", "*slow blink*", "Nom nom..."}},
	{Kind{"🐍", "Snake"}, []string{"Hiss!", "Sssss...", "Hsssss!"}},
	{Kind{"🦖", "T-Rex"}, []string{"ROAR!", "RAWR!", "GRRR!"}},
	{Kind{"👨", "Donald Trump"}, []string{
		"We'll set 99% tariff if you don't use Typescript",
		"Done. War over. Boom!",
		"Why are you coding without a suit?",
	}},
}

// Catalog is the immutable set of adoptable kinds and their phrases.
// The zero value is an empty catalog.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(builtinEntries)
}

// NewCatalog builds a catalog from entries. A later entry with a name that
// already appeared replaces the earlier phrase list; the emoji and position
// of the first entry are kept.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		c.put(e)
	}
	return c
}

// Extend returns a new catalog with extra appended. Entries whose name
// already exists only replace the existing phrases.
func (c *Catalog) Extend(extra []Entry) *Catalog {
	all := make([]Entry, 0, len(c.entries)+len(extra))
	all = append(all, c.entries...)
	all = append(all, extra...)
	return NewCatalog(all)
}

func (c *Catalog) put(e Entry) {
	e.Phrases = append([]string(nil), e.Phrases...)
	if i, ok := c.index[e.Name]; ok {
		c.entries[i].Phrases = e.Phrases
		return
	}
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Len returns the number of kinds.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Kinds returns the kinds in catalog order.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, len(c.entries))
	for i, e := range c.entries {
		kinds[i] = e.Kind
	}
	return kinds
}

// Lookup finds a kind by name.
func (c *Catalog) Lookup(name string) (Kind, bool) {
	i, ok := c.index[name]
	if !ok {
		return Kind{}, false
	}
	return c.entries[i].Kind, true
}

// Phrases returns the phrases for a kind, or the default list when the kind
// is unknown or has none.
func (c *Catalog) Phrases(name string) []string {
	i, ok := c.index[name]
	if !ok || len(c.entries[i].Phrases) == 0 {
		return append([]string(nil), defaultPhrases...)
	}
	return append([]string(nil), c.entries[i].Phrases...)
}

// RandSource picks an index in [0, n). *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// RandomPhrase picks one phrase for the named kind uniformly from r.
func RandomPhrase(c *Catalog, name string, r RandSource) string {
	phrases := c.Phrases(name)
	return phrases[r.IntN(len(phrases))]
}
