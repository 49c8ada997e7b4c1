package lr

type SymbolId int

const (
	EndMarkerToken = SymbolId(0)
	ErrorToken     = SymbolId(1)

	IdentifierToken = SymbolId(256)
	NumberToken     = SymbolId(257)

	AssignOpToken  = SymbolId(258) // :=
	SemicolonToken = SymbolId(259)
	DotToken       = SymbolId(260)
	LparenToken    = SymbolId(261)
	RparenToken    = SymbolId(262)
	PlusToken      = SymbolId(263)
	MinusToken     = SymbolId(264)

	AssignToken = SymbolId(265)
	PrintToken  = SymbolId(266)

	LosToken  = SymbolId(267)
	FodToken  = SymbolId(268)
	FahToken  = SymbolId(269)
	JunToken  = SymbolId(270)
	KelToken  = SymbolId(271)
	FusToken  = SymbolId(272)
	HonToken  = SymbolId(273)
	NustToken = SymbolId(274)
	AnrkToken = SymbolId(275)
	AanToken  = SymbolId(276)
	KoToken   = SymbolId(277)
	HimToken  = SymbolId(278)
)

const (
	// Grammar symbol names shared with the parse table.
	EndMarker = "$"
	Epsilon   = "epsilon"
)

var (
	symbolNames = map[SymbolId]string{
		EndMarkerToken:  EndMarker,
		ErrorToken:      "ERROR",
		IdentifierToken: "id",
		NumberToken:     "num",
		AssignOpToken:   ":=",
		SemicolonToken:  ";",
		DotToken:        ".",
		LparenToken:     "(",
		RparenToken:     ")",
		PlusToken:       "+",
		MinusToken:      "-",
		AssignToken:     "assign",
		PrintToken:      "print",
		LosToken:        "LOS",
		FodToken:        "FOD",
		FahToken:        "FAH",
		JunToken:        "JUN",
		KelToken:        "KEL",
		FusToken:        "FUS",
		HonToken:        "HON",
		NustToken:       "NUST",
		AnrkToken:       "ANRK",
		AanToken:        "AAN",
		KoToken:         "KO",
		HimToken:        "HIM",
	}

	symbolIds = func() map[string]SymbolId {
		result := make(map[string]SymbolId, len(symbolNames))
		for id, name := range symbolNames {
			result[name] = id
		}
		return result
	}()
)

// String returns the symbol's name as used by the grammar and parse table.
func (id SymbolId) String() string {
	name, ok := symbolNames[id]
	if ok {
		return name
	}
	return "?unknown symbol?"
}

// SymbolByName maps a grammar terminal name (or a keyword category) back to
// its token kind.
func SymbolByName(name string) (SymbolId, bool) {
	id, ok := symbolIds[name]
	return id, ok
}
