package taxonomy

// Default returns the built-in pack. The dictionaries are tuned for
// Nordic-market consumer search phrases with English fallbacks; deployments
// targeting other markets should load their own pack instead of editing
// these tables.
func Default() *Pack {
	return &Pack{
		Name: "nordic-default",

		IntentDistance: map[string]map[string]float64{
			"informational": {
				"transactional": 0.6,
				"navigational":  0.7,
				"commercial":    0.4,
			},
			"transactional": {
				"navigational": 0.5,
				"commercial":   0.3,
			},
			"navigational": {
				"commercial": 0.6,
			},
		},
		PerspectiveDistance: map[string]map[string]float64{
			"seeker": {
				"advisor":  0.4,
				"provider": 0.7,
				"comparer": 0.5,
			},
			"advisor": {
				"provider": 0.5,
				"comparer": 0.3,
			},
			"provider": {
				"comparer": 0.6,
			},
		},

		IntentAxis: map[string]float64{
			"informational": 0.2,
			"commercial":    0.45,
			"navigational":  0.6,
			"transactional": 0.8,
		},
		PerspectiveAxis: map[string]float64{
			"seeker":   0.25,
			"comparer": 0.45,
			"advisor":  0.55,
			"provider": 0.85,
		},

		IntentRules: []LabelRule{
			{Label: "commercial", Markers: []string{
				"bästa", "bäst", "billigaste", "topp", "recension", "omdöme", "test",
				"best", "cheapest", "review",
			}},
			{Label: "informational", Markers: []string{
				"vad", "hur", "varför", "guide", "tips", "betyder", "fungerar",
				"what", "how", "why",
			}},
			{Label: "navigational", Markers: []string{
				"logga", "login", "inloggning", "kontakt", "hemsida", "app",
			}},
			{Label: "transactional", Markers: []string{
				"köp", "köpa", "ansök", "ansöka", "pris", "priser", "offert",
				"ränta", "kalkyl", "lån", "billån", "leasing", "teckna",
				"buy", "order", "apply",
			}},
		},
		PerspectiveRules: []LabelRule{
			{Label: "comparer", Markers: []string{
				"vs", "vs.", "versus", "jämför", "jämförelse", "eller", "skillnad", "mot",
			}},
			{Label: "advisor", Markers: []string{
				"bästa", "bäst", "tips", "guide", "rekommendation", "recension", "omdöme", "test",
			}},
			{Label: "provider", Markers: []string{
				"erbjudande", "kampanj", "annons", "sälj", "sälja", "förmedling",
			}},
		},
		DefaultIntent:      "transactional",
		DefaultPerspective: "seeker",

		Entities: []EntityRule{
			{Canonical: "billån", Type: "product", Patterns: []string{"billån", "billånet", "billan", "car loan"}},
			{Canonical: "lån", Type: "product", Patterns: []string{"lån", "lånet", "loan"}},
			{Canonical: "privatleasing", Type: "product", Patterns: []string{"privatleasing", "leasing", "leasa"}},
			{Canonical: "bil", Type: "product", Patterns: []string{"bil", "bilen", "begagnad bil", "car"}},
			{Canonical: "bilförsäkring", Type: "product", Patterns: []string{"bilförsäkring", "försäkring"}},
			{Canonical: "ränta", Type: "attribute", Patterns: []string{"ränta", "räntan", "räntor", "effektiv ränta", "interest"}},
			{Canonical: "kontantinsats", Type: "attribute", Patterns: []string{"kontantinsats", "handpenning"}},
			{Canonical: "pris", Type: "attribute", Patterns: []string{"pris", "priser", "kostnad", "avgift"}},
			{Canonical: "amortering", Type: "attribute", Patterns: []string{"amortering", "amortera", "avbetalning"}},
			{Canonical: "lånekalkyl", Type: "tool", Patterns: []string{"kalkyl", "kalkylator", "kalkylera", "räkna"}},
			{Canonical: "bank", Type: "organization", Patterns: []string{"bank", "banken", "banker"}},
			{Canonical: "santander", Type: "brand", Patterns: []string{"santander"}},
			{Canonical: "nordea", Type: "brand", Patterns: []string{"nordea"}},
			{Canonical: "swedbank", Type: "brand", Patterns: []string{"swedbank"}},
			{Canonical: "bästa", Type: "modifier", Patterns: []string{"bästa", "bäst"}},
			{Canonical: "billigaste", Type: "modifier", Patterns: []string{"billigaste", "billig", "billigt"}},
		},
		ContentEntityTypes: []string{"product", "brand", "organization", "tool", "attribute"},

		VersusMarkers: []string{
			"vs", "vs.", "versus", "eller", "jämför", "jämförelse", "jämfört", "mot", "skillnad",
		},
		ProceduralMarkers: []string{
			"hur", "steg", "guide", "ansök", "ansöka", "räkna", "kalkyl", "kalkylera",
			"checklista", "how", "steps",
		},
	}
}
