package helper

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatal(err)
	}
	if hashed == "s3cretpass" {
		t.Fatal("password stored in clear text")
	}
	if err := CheckPasswordHash(hashed, "s3cretpass"); err != nil {
		t.Fatalf("matching password rejected: %v", err)
	}
	if err := CheckPasswordHash(hashed, "s3cretpasS"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := map[string]bool{
		"short1":         false,
		"onlyletters":    false,
		"1234567890":     false,
		"letters4ndnums": true,
	}
	for pw, ok := range cases {
		err := ValidatePasswordStrength(pw)
		if (err == nil) != ok {
			t.Errorf("%q: err = %v", pw, err)
		}
	}
}
