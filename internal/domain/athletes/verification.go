package athletes

import "time"

// Verification describes who confirmed an athlete profile and how.
type Verification struct {
	VerifiedBy string `json:"verifiedBy,omitempty"`
	Method     string `json:"method,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

const (
	DefaultVerifiedBy = "Self"
	DefaultMethod     = "Email"
)

// WithDefaults fills the fields the upstream record requires.
func (v Verification) WithDefaults() Verification {
	v.VerifiedBy = FallbackValue(v.VerifiedBy, DefaultVerifiedBy)
	v.Method = FallbackValue(v.Method, DefaultMethod)
	return v
}

// VerificationResult is returned once a profile is marked verified.
type VerificationResult struct {
	AthleteID  string    `json:"athleteId"`
	VerifiedAt time.Time `json:"verifiedAt"`
}
