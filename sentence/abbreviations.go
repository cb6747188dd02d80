package sentence

// abbreviations lists words that are not sentence ends when followed by a
// period. Lookup is case-sensitive. Dotted chains of single letters (U.S,
// e.g, a.m) and lone capital initials are matched by rule, not by this
// table.
var abbreviations = []string{
	// titles
	"Mr", "Mrs", "Ms", "Messrs", "Dr", "Prof", "St", "Mt", "Jr", "Sr",
	"Gen", "Col", "Capt", "Lt", "Sgt", "Rev", "Hon", "Gov", "Sen", "Rep",

	// organisations
	"Inc", "Ltd", "Co", "Corp", "Bros", "Dept", "Univ", "Assn",

	// references
	"No", "Nos", "Vol", "Vols", "Fig", "Figs", "Eq", "Ch", "Sec",
	"pp", "p", "cf", "al", "approx", "ca", "est", "viz", "vs", "etc",

	// months; May is a word
	"Jan", "Feb", "Mar", "Apr", "Jun", "Jul", "Aug", "Sep", "Sept",
	"Oct", "Nov", "Dec",

	// degrees
	"Ph.D", "M.D", "B.A", "M.A", "B.Sc", "M.Sc",
}

func newAbbreviationSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(abbreviations)+len(extra))
	for _, w := range abbreviations {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
