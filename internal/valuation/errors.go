package valuation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration 是所有输入校验失败的哨兵错误，调用方可以通过 errors.Is 判断
var ErrInvalidConfiguration = errors.New("invalid configuration")

type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
