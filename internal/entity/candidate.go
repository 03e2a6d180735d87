package entity

// Candidate is a reward-eligible mintable token users can allocate voting
// points to.
type Candidate struct {
	Base

	TokenAddress string `gorm:"unique"`
	Name         string

	// Beneficiary receives the donation slice of a claim.
	Beneficiary string

	Eligible bool
}
