package treatment

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("treatment configuration error")

// ConfigError — у шаблона или материала нет обязательной константы.
// Это не "пользователь ещё не ввёл", а ошибка данных.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
