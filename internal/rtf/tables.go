package rtf

// The lookup tables below are process-wide, read-only data. Extending the
// converter (new control words, new destinations) is a table change, not a
// structural one. None of them are mutated after package initialization.

// controlOutputs maps control-word names to the literal text they contribute.
// Table cells degrade to tabs and table rows to newlines so tabular regions
// flatten into readable lines. Names present here must never appear in
// skipDestinations; destination membership takes precedence if a name is
// ever added to both.
var controlOutputs = map[string]string{
	"par":       "\n",
	"line":      "\n",
	"row":       "\n",
	"sect":      "\n\n",
	"page":      "\n\n",
	"tab":       "\t",
	"cell":      "\t",
	"nestcell":  "\t",
	"nestrow":   "\n",
	"emdash":    "—",
	"endash":    "–",
	"emspace":   " ",
	"enspace":   " ",
	"qmspace":   " ",
	"bullet":    "•",
	"lquote":    "‘",
	"rquote":    "’",
	"ldblquote": "“",
	"rdblquote": "”",
	"~":         " ",
	"_":         "-",
	"-":         "",
}

// skipDestinations is the set of control-word names that mark a group as
// non-content: font/color/style tables, document metadata, headers and
// footers, embedded binary, and revision/bookmark machinery. Everything
// inside such a group, including nested groups, is excluded from output.
var skipDestinations = map[string]struct{}{
	"fonttbl":              {},
	"colortbl":             {},
	"stylesheet":           {},
	"filetbl":              {},
	"listtable":            {},
	"listoverridetable":    {},
	"revtbl":               {},
	"rsidtbl":              {},
	"latentstyles":         {},
	"info":                 {},
	"author":               {},
	"operator":             {},
	"creatim":              {},
	"revtim":               {},
	"printim":              {},
	"buptim":               {},
	"generator":            {},
	"header":               {},
	"headerl":              {},
	"headerr":              {},
	"headerf":              {},
	"footer":               {},
	"footerl":              {},
	"footerr":              {},
	"footerf":              {},
	"footnote":             {},
	"ftncn":                {},
	"ftnsep":               {},
	"ftnsepc":              {},
	"aftncn":               {},
	"aftnsep":              {},
	"aftnsepc":             {},
	"pict":                 {},
	"object":               {},
	"objclass":             {},
	"objdata":              {},
	"objname":              {},
	"blipuid":              {},
	"annotation":           {},
	"atnauthor":            {},
	"atndate":              {},
	"atnicn":               {},
	"atnid":                {},
	"atnref":               {},
	"atntime":              {},
	"atrfstart":            {},
	"atrfend":              {},
	"bkmkstart":            {},
	"bkmkend":              {},
	"fldinst":              {},
	"datafield":            {},
	"docvar":               {},
	"xe":                   {},
	"tc":                   {},
	"themedata":            {},
	"colorschememapping":   {},
	"datastore":            {},
	"xmlnstbl":             {},
	"wgrffmtfilter":        {},
	"pgptbl":               {},
	"mmathPr":              {},
	"template":             {},
	"keywords":             {},
	"doccomm":              {},
	"panose":               {},
	"falt":                 {},
	"htmltag":              {},
	"mhtmltag":             {},
	"background":           {},
	"userprops":            {},
	"protusertbl":          {},
	"passwordhash":         {},
	"nesttableprops":       {},
	"aftnrefself":          {},
	"dptxbxtext":           {},
	"factoidname":          {},
	"levelnumbers":         {},
	"leveltext":            {},
	"liststylename":        {},
	"listname":             {},
	"lsdlockedexcept":      {},
	"private":              {},
	"propname":             {},
	"staticval":            {},
	"svb":                  {},
	"upr":                  {},
	"fchars":               {},
	"lchars":               {},
	"ffdeftext":            {},
	"ffentrymcr":           {},
	"ffexitmcr":            {},
	"ffformat":             {},
	"ffhelptext":           {},
	"ffname":               {},
	"ffstattext":           {},
	"formfield":            {},
	"hlinkbase":            {},
	"stylesheetemb":        {},
	"fontemb":              {},
	"fontfile":             {},
	"ebcstart":             {},
	"ebcend":               {},
	"gridtbl":              {},
	"objalias":             {},
	"objsect":              {},
	"oldcprops":            {},
	"oldpprops":            {},
	"oldsprops":            {},
	"oldtprops":            {},
}

// cp1252 maps the Windows-1252 byte values that differ from their raw
// character codes (the 0x80-0x9F block) to the Unicode characters clinical
// correspondence actually uses: smart quotes, dashes, ellipsis, trade mark,
// per-mille and related punctuation. Bytes absent from this map resolve to
// their raw character code.
var cp1252 = map[int]rune{
	0x80: '€', // euro sign
	0x82: '‚', // single low quote
	0x83: 'ƒ', // f with hook
	0x84: '„', // double low quote
	0x85: '…', // ellipsis
	0x86: '†', // dagger
	0x87: '‡', // double dagger
	0x88: 'ˆ', // circumflex accent
	0x89: '‰', // per mille
	0x8a: 'Š', // S with caron
	0x8b: '‹', // single left angle quote
	0x8c: 'Œ', // OE ligature
	0x8e: 'Ž', // Z with caron
	0x91: '‘', // left single quote
	0x92: '’', // right single quote
	0x93: '“', // left double quote
	0x94: '”', // right double quote
	0x95: '•', // bullet
	0x96: '–', // en dash
	0x97: '—', // em dash
	0x98: '˜', // small tilde
	0x99: '™', // trade mark sign
	0x9a: 'š', // s with caron
	0x9b: '›', // single right angle quote
	0x9c: 'œ', // oe ligature
	0x9e: 'ž', // z with caron
	0x9f: 'Ÿ', // Y with diaeresis
}

// decodeByte resolves a byte value from a \'XX escape through the codepage
// table, falling back to the raw character code for unmapped bytes.
func decodeByte(b int) rune {
	if r, ok := cp1252[b]; ok {
		return r
	}
	return rune(b)
}

// isSkipDestination reports whether a control-word name marks a
// non-content destination group.
func isSkipDestination(name string) bool {
	_, ok := skipDestinations[name]
	return ok
}
