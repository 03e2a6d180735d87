package model

type Candidate struct {
	ID           string `json:"id"`
	TokenAddress string `json:"token_address"`
	Name         string `json:"name"`
	Beneficiary  string `json:"beneficiary"`
	Eligible     bool   `json:"eligible"`
}

type CreateCandidateRequest struct {
	TokenAddress string `json:"token_address"`
	Name         string `json:"name"`
	Beneficiary  string `json:"beneficiary"`
}

type CreateCandidateResponse struct {
	ID string `json:"id"`
}

type UpdateCandidateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Beneficiary string `json:"beneficiary"`
	Eligible    *bool  `json:"eligible"`
}

type UpdateCandidateResponse struct{}

type GetListCandidateRequest struct {
	EligibleOnly bool `json:"eligible_only" form:"eligible_only"`
	Offset       int  `json:"offset" form:"offset"`
	Limit        int  `json:"limit" form:"limit"`
}

type GetListCandidateResponse struct {
	Candidates []Candidate `json:"candidates"`
}
