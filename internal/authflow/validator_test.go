package authflow

import (
	"testing"

	"github.com/campusrate/campusrate-go/internal/token"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid email", "test@example.com", true},
		{"valid with subdomain", "user@mail.example.com", true},
		{"valid with plus", "user+tag@example.com", true},
		{"invalid no @", "userexample.com", false},
		{"invalid no domain", "user@", false},
		{"invalid no user", "@example.com", false},
		{"invalid spaces", "user @example.com", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Abcd123!", true},
		{"longer", "Sup3r-Secret-Pass", true},
		{"too short", "Ab1!", false},
		{"no upper", "abcd123!", false},
		{"no lower", "ABCD123!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcd1234", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStrongPassword(tt.password); got != tt.want {
				t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "Grace", true},
		{"three letters", "Ada", true},
		{"thirty letters", "Abcdefghijklmnopqrstuvwxyzabcd", true},
		{"two letters", "Al", false},
		{"thirty one letters", "Abcdefghijklmnopqrstuvwxyzabcde", false},
		{"digits", "Grace2", false},
		{"spaces", "Grace Hopper", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidName(tt.input); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSignIn(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantFields []string
	}{
		{"valid", "a@b.com", "Abcd123!", nil},
		{"missing email", "", "Abcd123!", []string{"email"}},
		{"bad email", "not-an-email", "Abcd123!", []string{"email"}},
		{"missing password", "a@b.com", "", []string{"password"}},
		{"weak password", "a@b.com", "weak", []string{"password"}},
		{"both bad", "nope", "weak", []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSignIn(tt.email, tt.password)
			if tt.wantFields == nil {
				if errs != nil {
					t.Fatalf("ValidateSignIn() = %v, want nil", errs)
				}
				return
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateSignIn() = %v, want errors on %v", errs, tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if errs[field] == "" {
					t.Errorf("missing error for field %q", field)
				}
			}
		})
	}
}

func TestValidateSignUp(t *testing.T) {
	valid := SignUpForm{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Email:           "grace@navy.mil",
		Password:        "Abcd123!",
		ConfirmPassword: "Abcd123!",
		Role:            token.RoleStudent,
	}

	t.Run("valid student", func(t *testing.T) {
		if errs := ValidateSignUp(valid); errs != nil {
			t.Errorf("ValidateSignUp() = %v, want nil", errs)
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		form := valid
		form.ConfirmPassword = "Other123!"
		errs := ValidateSignUp(form)
		if errs["confirmPassword"] == "" {
			t.Errorf("want confirmPassword error, got %v", errs)
		}
	})

	t.Run("bad names", func(t *testing.T) {
		form := valid
		form.FirstName = "G"
		form.LastName = "Hopper9"
		errs := ValidateSignUp(form)
		if errs["firstName"] == "" || errs["lastName"] == "" {
			t.Errorf("want name errors, got %v", errs)
		}
	})

	t.Run("professor requires institution", func(t *testing.T) {
		form := valid
		form.Role = token.RoleProfessor
		errs := ValidateSignUp(form)
		if errs["instituteId"] == "" {
			t.Errorf("want instituteId error, got %v", errs)
		}

		form.InstituteID = "i-1"
		if errs := ValidateSignUp(form); errs != nil {
			t.Errorf("ValidateSignUp() = %v, want nil with institution set", errs)
		}
	})

	t.Run("student does not require institution", func(t *testing.T) {
		if errs := ValidateSignUp(valid); errs != nil {
			t.Errorf("ValidateSignUp() = %v, want nil", errs)
		}
	})
}
