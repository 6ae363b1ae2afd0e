package model

// Requirement represents a normative disclosure obligation from the
// regulatory catalog. Category is the join key used everywhere downstream;
// categories are unique within a run.
type Requirement struct {
	Category string `json:"category" yaml:"category"`
	Text     string `json:"text" yaml:"text"`
}

// Claim represents the company's extracted disclosure for a category.
// An empty text is valid input ("no disclosure found"), not an error.
type Claim struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// MissingClaimText is substituted for categories absent from the claims
// map. Missing disclosures are data, not errors.
const MissingClaimText = "Not Found"
