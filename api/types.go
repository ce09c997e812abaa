package api

// PreTokenizeRequest is the body of POST /api/pretokenize.
type PreTokenizeRequest struct {
	// Config is a pre-tokenizer object in tokenizer.json form, e.g.
	// {"type": "Metaspace", "replacement": "▁"}.
	Config map[string]any `json:"config"`
	Text   string         `json:"text"`

	// Specials are passed through as single pieces and never
	// pre-tokenized.
	Specials []string `json:"specials,omitempty"`

	// FirstSection reports whether Text starts the input. Defaults to true.
	FirstSection *bool `json:"first_section,omitempty"`
}

type PreTokenizeResponse struct {
	Type   string   `json:"type"`
	Pieces []string `json:"pieces"`
}

type ListResponse struct {
	Types []string `json:"types"`
}
