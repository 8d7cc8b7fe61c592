package validator

import "testing"

type rotateRequest struct {
	Degrees int `json:"degrees" validate:"required,rotation"`
}

type personRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	Precision string `json:"date_precision" validate:"omitempty,date_precision"`
}

func TestRotationTag(t *testing.T) {
	if errs := Validate(&rotateRequest{Degrees: 90}); errs != nil {
		t.Fatalf("expected 90 to be valid, got %v", errs)
	}
	errs := Validate(&rotateRequest{Degrees: 45})
	if errs["degrees"] != "Must be 90, 180, or 270" {
		t.Fatalf("expected rotation error keyed by json name, got %v", errs)
	}
}

func TestNotBlankAndPrecision(t *testing.T) {
	errs := Validate(&personRequest{Name: "   ", Precision: "week"})
	if errs["name"] == "" {
		t.Error("expected blank name to fail")
	}
	if errs["date_precision"] == "" {
		t.Error("expected unknown precision to fail")
	}
	if errs := Validate(&personRequest{Name: "Ada", Precision: "decade"}); errs != nil {
		t.Errorf("expected valid request, got %v", errs)
	}
}
