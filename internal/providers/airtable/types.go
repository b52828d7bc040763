package airtable

const providerName = "airtable"

type listResponse struct {
	Records []recordResponse `json:"records"`
	Offset  string           `json:"offset"`
}

type recordResponse struct {
	ID     string        `json:"id"`
	Fields athleteFields `json:"fields"`
}

type athleteFields struct {
	Name          string       `json:"Name"`
	Sport         string       `json:"Sport"`
	Year          string       `json:"Year"`
	Hometown      string       `json:"Hometown"`
	College       string       `json:"College"`
	Image         []attachment `json:"Image"`
	HighSchool    string       `json:"HighSchool"`
	Nationality   string       `json:"Nationality"`
	Gender        string       `json:"Gender"`
	IsVerified    bool         `json:"IsVerified"`
	ClaimedStatus string       `json:"ClaimedStatus"`
}

type attachment struct {
	URL string `json:"url"`
}

type verifyRequest struct {
	Fields verifyFields `json:"fields"`
}

type verifyFields struct {
	IsVerified         bool   `json:"IsVerified"`
	VerifiedAt         string `json:"VerifiedAt"`
	VerifiedBy         string `json:"VerifiedBy"`
	VerificationMethod string `json:"VerificationMethod"`
	VerificationNotes  string `json:"VerificationNotes"`
}

type createRequest struct {
	Records  []createRecord `json:"records"`
	Typecast bool           `json:"typecast"`
}

type createRecord struct {
	Fields createFields `json:"fields"`
}

type createFields struct {
	Name        string       `json:"Name"`
	Sport       string       `json:"Sport,omitempty"`
	Year        string       `json:"Year,omitempty"`
	Hometown    string       `json:"Hometown,omitempty"`
	College     string       `json:"College,omitempty"`
	Image       []attachment `json:"Image,omitempty"`
	HighSchool  string       `json:"HighSchool,omitempty"`
	Nationality string       `json:"Nationality,omitempty"`
	Gender      string       `json:"Gender,omitempty"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
