package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/supplyco/pkg/validate"
)

type productInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=50"`
	Category string  `json:"category" validate:"nullable,alpha_num"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Stock    int     `json:"stock"    validate:"gte=0"`
	Role     string  `json:"role"     validate:"required,in=customer,shop"`
	Website  string  `json:"website"  validate:"nullable,url"`
}

func valid() productInput {
	return productInput{
		Name:  "Rice 5kg",
		Price: 240,
		Stock: 10,
		Role:  "customer",
	}
}

func TestValidInputPasses(t *testing.T) {
	if errs := validate.Struct(valid()); validate.HasErrors(errs) {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestRequiredFields(t *testing.T) {
	errs := validate.Struct(productInput{})
	for _, field := range []string{"name", "price", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required, errors: %v", field, errs)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	in := valid()
	in.Price = 0
	if errs := validate.Struct(in); errs["price"] == "" {
		t.Error("price of zero should fail gt=0")
	}

	in = valid()
	in.Stock = -1
	if errs := validate.Struct(in); errs["stock"] == "" {
		t.Error("negative stock should fail gte=0")
	}
}

func TestInListRejoinsCommaParams(t *testing.T) {
	in := valid()
	in.Role = "shop"
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("role=shop should be allowed: %v", errs)
	}

	in.Role = "admin"
	if errs := validate.Struct(in); errs["role"] == "" {
		t.Error("role outside the list should fail")
	}
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	in := valid()
	if errs := validate.Struct(in); errs["website"] != "" {
		t.Errorf("empty nullable field should pass: %v", errs)
	}

	in.Website = "not a url"
	if errs := validate.Struct(in); errs["website"] == "" {
		t.Error("non-empty nullable field still validates its rules")
	}
}

func TestErrorsKeyedByJSONName(t *testing.T) {
	errs := validate.Struct(productInput{})
	if _, ok := errs["Name"]; ok {
		t.Error("errors should use the json field name, not the Go name")
	}
	if _, ok := errs["name"]; !ok {
		t.Errorf("expected lowercase json key, got: %v", errs)
	}
}
