package errors

import (
	"errors"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name        string
		domainError *DomainError
		want        string
	}{
		{
			name: "simple error",
			domainError: &DomainError{
				Code:    "INVALID_DOMAIN",
				Message: "settings domain is invalid",
			},
			want: "INVALID_DOMAIN: settings domain is invalid",
		},
		{
			name: "error with wrapped error",
			domainError: &DomainError{
				Code:    "STORE_UNAVAILABLE",
				Message: "trust store could not be queried",
				Err:     errors.New("keychain locked"),
			},
			want: "STORE_UNAVAILABLE: trust store could not be queried: keychain locked",
		},
		{
			name: "empty message",
			domainError: &DomainError{
				Code:    "UNKNOWN",
				Message: "",
			},
			want: "UNKNOWN: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.domainError.Error()
			if got != tt.want {
				t.Errorf("DomainError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	domainErr := &DomainError{
		Code:    "TEST_ERROR",
		Message: "Test error message",
		Err:     originalErr,
	}

	if unwrapped := domainErr.Unwrap(); unwrapped != originalErr {
		t.Errorf("DomainError.Unwrap() = %v, want %v", unwrapped, originalErr)
	}

	domainErrNoWrap := &DomainError{
		Code:    "TEST_ERROR",
		Message: "Test error message",
	}

	if unwrapped := domainErrNoWrap.Unwrap(); unwrapped != nil {
		t.Errorf("DomainError.Unwrap() = %v, want nil", unwrapped)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name            string
		validationError *ValidationError
		want            string
	}{
		{
			name: "string field",
			validationError: &ValidationError{
				Field:   "store_path",
				Value:   "",
				Message: "store path is required",
			},
			want: "validation failed for field 'store_path': store path is required (value: )",
		},
		{
			name: "nil value",
			validationError: &ValidationError{
				Field:   "store",
				Value:   nil,
				Message: "store cannot be nil",
			},
			want: "validation failed for field 'store': store cannot be nil (value: <nil>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.validationError.Error()
			if got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDomainError(t *testing.T) {
	wrapped := errors.New("wrapped error")

	resultErr := NewDomainError(ErrStoreUnavailable, wrapped)

	var domainErr *DomainError
	if !errors.As(resultErr, &domainErr) {
		t.Fatalf("NewDomainError() did not produce a *DomainError: %T", resultErr)
	}

	if domainErr.Code != ErrStoreUnavailable.Code {
		t.Errorf("NewDomainError() code = %v, want %v", domainErr.Code, ErrStoreUnavailable.Code)
	}
	if domainErr.Err != wrapped {
		t.Errorf("NewDomainError() err = %v, want %v", domainErr.Err, wrapped)
	}
}

func TestNewValidationError(t *testing.T) {
	validationErr := NewValidationError("store_path", "bad", "must exist")

	if validationErr.Field != "store_path" || validationErr.Value != "bad" || validationErr.Message != "must exist" {
		t.Errorf("NewValidationError() = %+v", validationErr)
	}
}

func TestErrorWrapping(t *testing.T) {
	originalErr := errors.New("original error")
	domainErr := NewDomainError(ErrAccessDenied, originalErr)

	if !errors.Is(domainErr, originalErr) {
		t.Error("errors.Is should recognize wrapped error")
	}

	var target *DomainError
	if !errors.As(domainErr, &target) {
		t.Error("errors.As should recognize DomainError")
	}
}
