package entity

type User struct {
	Base

	Address string `gorm:"unique"`
	Name    string

	// ActivationNonce is the replay-protection counter for point activation
	// endorsements. Each successful activation increments it.
	ActivationNonce uint64
}
