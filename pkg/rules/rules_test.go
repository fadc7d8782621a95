package rules_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/rules"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		value string
		want  bool
	}{
		{"fullName valid", rules.FullName, "Ana Gomez", true},
		{"fullName too short", rules.FullName, "Ana", false},
		{"fullName six chars", rules.FullName, "Ana Go", false},
		{"fullName seven chars", rules.FullName, "Ana Gom", true},
		{"fullName no space", rules.FullName, "AnaGomezz", false},
		{"fullName tab counts as space", rules.FullName, "Ana\tGomez", true},

		{"email valid", rules.Email, "ana@example.com", true},
		{"email short tld", rules.Email, "a@b.c", true},
		{"email missing tld", rules.Email, "ana@example", false},
		{"email space in local", rules.Email, "an a@example.com", false},
		{"email double at", rules.Email, "a@b@c.com", false},
		{"email empty local", rules.Email, "@example.com", false},
		{"email empty domain", rules.Email, "a@.com", false},
		{"email trailing space", rules.Email, "a@b.c ", false},

		{"password valid", rules.Password, "abc12345", true},
		{"password letters only", rules.Password, "abcdefgh", false},
		{"password digits only", rules.Password, "12345678", false},
		{"password too short", rules.Password, "abc1234", false},

		{"age below", rules.Age, "17", false},
		{"age boundary", rules.Age, "18", true},
		{"age fraction", rules.Age, "18.5", false},
		{"age text", rules.Age, "abc", false},
		{"age empty", rules.Age, "", false},
		{"age padded", rules.Age, " 21 ", true},
		{"age negative", rules.Age, "-20", false},
		{"age trailing text", rules.Age, "30 years", false},
		{"age huge", rules.Age, "99999999999999999999999", true},

		{"phone seven digits", rules.Phone, "1234567", true},
		{"phone long", rules.Phone, "0123456789012", true},
		{"phone six digits", rules.Phone, "123456", false},
		{"phone with space", rules.Phone, "123 4567", false},
		{"phone with plus", rules.Phone, "+1234567", false},

		{"address valid", rules.Address, "Calle 123", true},
		{"address no digit", rules.Address, "Calle Mayor", false},
		{"address no letter", rules.Address, "12345 6", false},
		{"address no space", rules.Address, "Calle123", false},
		{"address too short", rules.Address, "A 1", false},

		{"city short", rules.City, "Ro", false},
		{"city valid", rules.City, "Roma", true},
		{"city astral chars", rules.City, "😀😀", true},
		{"postalCode short", rules.PostalCode, "12", false},
		{"postalCode valid", rules.PostalCode, "123", true},

		{"dni seven", rules.DNI, "1234567", true},
		{"dni eight", rules.DNI, "12345678", true},
		{"dni six", rules.DNI, "123456", false},
		{"dni nine", rules.DNI, "123456789", false},
		{"dni letters", rules.DNI, "1234567A", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.check(tc.value); got != tc.want {
				t.Fatalf("check(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestConfirmPasswordReadsLiveValue(t *testing.T) {
	current := "abc12345"
	live := rules.LookupFunc(func(id string) string {
		if id == rules.FieldPassword {
			return current
		}
		return ""
	})

	if !rules.ConfirmPassword("abc12345", live) {
		t.Fatalf("expected matching passwords to pass")
	}

	current = "changed999"
	if rules.ConfirmPassword("abc12345", live) {
		t.Fatalf("expected stale confirmation to fail after password changed")
	}
	if !rules.ConfirmPassword("changed999", live) {
		t.Fatalf("expected confirmation to follow the live password")
	}
}

func TestDefaultTableOrderAndMessages(t *testing.T) {
	table := rules.Default()

	wantIDs := []string{
		"fullName", "email", "password", "confirmPassword", "age",
		"phone", "address", "city", "postalCode", "dni",
	}
	if diff := cmp.Diff(wantIDs, table.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	spec, ok := table.Lookup(rules.FieldDNI)
	if !ok {
		t.Fatalf("expected dni spec")
	}
	if spec.ErrorMessage != "DNI debe ser un número de 7 u 8 dígitos." {
		t.Fatalf("unexpected dni message %q", spec.ErrorMessage)
	}
	if _, ok := table.Lookup("nickname"); ok {
		t.Fatalf("unexpected spec for unknown id")
	}
}

func TestFieldSpecCheckUsesLookup(t *testing.T) {
	spec, _ := rules.Default().Lookup(rules.FieldConfirmPassword)
	values := rules.Values{rules.FieldPassword: "abc12345"}

	if !spec.Check("abc12345", values) {
		t.Fatalf("expected confirmation to pass")
	}
	if spec.Check("abc12346", values) {
		t.Fatalf("expected mismatch to fail")
	}
	if !spec.Check("", nil) {
		t.Fatalf("expected empty confirmation to match empty password")
	}
}

func TestNewTableRejectsInvalidSpecs(t *testing.T) {
	ok := rules.Pure(func(string) bool { return true })

	if _, err := rules.NewTable(rules.FieldSpec{ID: " ", Predicate: ok}); !errors.Is(err, rules.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if _, err := rules.NewTable(rules.FieldSpec{ID: "a"}); !errors.Is(err, rules.ErrNilPredicate) {
		t.Fatalf("expected ErrNilPredicate, got %v", err)
	}
	_, err := rules.NewTable(
		rules.FieldSpec{ID: "a", Predicate: ok},
		rules.FieldSpec{ID: "a", Predicate: ok},
	)
	if !errors.Is(err, rules.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestSpecsReturnsCopies(t *testing.T) {
	table := rules.Default()
	specs := table.Specs()
	specs[0].ID = "mutated"
	specs[0].Constraints[0].Params["value"] = "99"

	again, _ := table.Lookup(rules.FieldFullName)
	if again.ID != rules.FieldFullName {
		t.Fatalf("table id mutated through Specs copy")
	}
	c, _ := again.Constraint(rules.ConstraintMinLength)
	if c.Params["value"] != "7" {
		t.Fatalf("expected constraint untouched, got %q", c.Params["value"])
	}
}
