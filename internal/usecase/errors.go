package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound — пользователя с таким id нет
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists — email уже занят другим пользователем
	ErrEmailExists = errors.New("email already exists")

	// ErrExportDisabled — файловое хранилище не настроено
	ErrExportDisabled = errors.New("export storage is not configured")
)

// NotFoundError несет id, который не нашли
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User not found with id: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

// StoreError оборачивает любой сбой хранилища. Текст ошибки хранилища
// сохраняется без изменений.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeFailure(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

// Outcome — результат операции сервиса, по которому каждый транспорт
// выбирает свое представление (статус-код, flash-сообщение).
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeStoreFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConflict:
		return "conflict"
	default:
		return "store_failure"
	}
}

// Classify сводит ошибку сервиса к Outcome.
// Неизвестные ошибки считаются сбоем хранилища.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUserNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrEmailExists):
		return OutcomeConflict
	default:
		return OutcomeStoreFailure
	}
}
