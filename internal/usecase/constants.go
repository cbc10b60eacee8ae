package usecase

const (
	// maxReferenceAttempts bounds regeneration after a reference
	// collision before the operation fails with ErrDuplicateReference.
	maxReferenceAttempts = 3

	defaultListLimit = 20
	maxListLimit     = 100
)
