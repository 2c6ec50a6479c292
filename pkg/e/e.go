package e

import "fmt"

var (
	// 400 Bad Request
	ErrTitleRequired       = fmt.Errorf("item title is required")
	ErrImageRequired       = fmt.Errorf("item image is required")
	ErrPriceMustBePositive = fmt.Errorf("price must be positive")
	ErrUnknownAction       = fmt.Errorf("unknown cart action")
	ErrStatusBadRequest    = fmt.Errorf("bad request")

	// Ошибки обмена с витриной
	ErrCheckoutFailed = fmt.Errorf("checkout failed")
	ErrNoServerItems  = fmt.Errorf("server cart has no items")
	ErrUnexpectedCode = fmt.Errorf("unexpected status code")

	// Ошибки хранилища снапшотов
	ErrSnapshotCorrupted = fmt.Errorf("cart snapshot is corrupted")
	ErrUnknownBackend    = fmt.Errorf("unknown storage backend")

	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
