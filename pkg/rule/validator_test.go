package rule_test

import (
	"testing"

	"github.com/digesto-dev/digesto/pkg/internal/types"
	"github.com/digesto-dev/digesto/pkg/rule"
)

func TestValidateStructUsesRuleTag(t *testing.T) {
	type form struct {
		Name string `rule:"required"`
		Page int    `rule:"gte=1"`
	}

	if err := rule.ValidateStruct(form{Name: "ordenanzas", Page: 1}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	err := rule.ValidateStruct(form{Page: 0})
	if err == nil {
		t.Fatal("invalid struct accepted")
	}

	fields := rule.Errors(err)
	if fields["Name"] != "required" || fields["Page"] != "gte" {
		t.Fatalf("errors = %v", fields)
	}
}

func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("2024-01-15", "datetime=2006-01-02"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}

	if err := rule.ValidateVar("15/01/2024", "datetime=2006-01-02"); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestErrorsIgnoresNonValidationError(t *testing.T) {
	if got := rule.Errors(nil); got != nil {
		t.Fatalf("Errors(nil) = %v", got)
	}
}

func TestUploadRequestValidation(t *testing.T) {
	base := types.UploadFileRequest{
		FilePath: "/tmp/res-001.pdf",
		Title:    "Resolución 001",
		FolderID: 7,
	}

	if err := rule.ValidateStruct(&base); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missing := base
	missing.Title = ""

	if err := rule.ValidateStruct(&missing); err == nil {
		t.Fatal("request without title accepted")
	}

	// 所选分类要求编号时，编号成为必填
	numbered := base
	numbered.NumberRequired = true

	err := rule.ValidateStruct(&numbered)
	if err == nil {
		t.Fatal("request without required resolution number accepted")
	}

	if fields := rule.Errors(err); fields["ResolutionNumber"] != "required_if" {
		t.Fatalf("errors = %v", fields)
	}

	numbered.ResolutionNumber = "001/2024"
	if err := rule.ValidateStruct(&numbered); err != nil {
		t.Fatalf("numbered request rejected: %v", err)
	}
}
