package validator

import (
	"errors"
	"testing"
)

type sample struct {
	AppName    string `validate:"required"`
	TimeWindow string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	if err := ValidateStruct(sample{AppName: "a", TimeWindow: "1d"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := ValidateStruct(sample{AppName: "a"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errs := TranslateError(err)
	if _, ok := errs["TimeWindow"]; !ok {
		t.Fatalf("expected TimeWindow error, got %v", errs)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}

func TestTranslateError_NonValidationError(t *testing.T) {
	if errs := TranslateError(errors.New("boom")); len(errs) != 0 {
		t.Fatalf("expected empty map, got %v", errs)
	}
	if errs := TranslateError(nil); len(errs) != 0 {
		t.Fatalf("expected empty map, got %v", errs)
	}
}

func TestGetValidatorConcurrent(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = ValidateStruct(sample{AppName: "a", TimeWindow: "1d"})
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if getValidator() != getValidator() {
		t.Fatal("expected a single shared validator")
	}
}
