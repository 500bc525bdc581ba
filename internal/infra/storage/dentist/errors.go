package dentist

import "errors"

var (
	// ErrDentistNotFound возвращается, когда врач не найден
	ErrDentistNotFound = errors.New("dentist.repository: dentist not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dentist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dentist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dentist.repository: failed to scan row")

	// ErrInvalidHours возвращается, когда business_hours JSON не декодируется
	ErrInvalidHours = errors.New("dentist.repository: invalid business hours document")
)
