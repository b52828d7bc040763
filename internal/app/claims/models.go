package claims

import "time"

// Request is a submission from someone asserting they are the athlete.
type Request struct {
	AthleteID   string `json:"athleteId" validate:"required"`
	AthleteName string `json:"athleteName"`
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	SocialMedia string `json:"socialMedia"`
	Explanation string `json:"explanation" validate:"required"`
}

// Claim is a stored, reviewable claim request.
type Claim struct {
	ID string `json:"id"`
	Request
	SubmittedAt time.Time `json:"submittedAt"`
}
