package usecasecontract

// IValidator validates raw client input before it reaches a usecase.
type IValidator interface {
	ValidateVideoID(videoID string) error
}
