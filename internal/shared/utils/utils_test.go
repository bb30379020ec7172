package utils

import "testing"

func TestFormatIBAN(t *testing.T) {
	tests := []struct {
		customerNumber int
		want           string
	}{
		{1, "ACC000001"},
		{42, "ACC000042"},
		{999999, "ACC999999"},
		{1000000, "ACC1000000"},
	}
	for _, tt := range tests {
		if got := FormatIBAN(tt.customerNumber); got != tt.want {
			t.Errorf("FormatIBAN(%d) = %q, want %q", tt.customerNumber, got, tt.want)
		}
	}
}

func TestParseIBAN(t *testing.T) {
	tests := []struct {
		name    string
		iban    string
		want    int
		wantErr bool
	}{
		{"valid", "ACC000042", 42, false},
		{"valid unpadded", "ACC7", 7, false},
		{"wrong prefix", "IBN000042", 0, true},
		{"lowercase prefix", "acc000042", 0, true},
		{"non-numeric suffix", "ACCabcdef", 0, true},
		{"empty suffix", "ACC", 0, true},
		{"zero is not a customer number", "ACC000000", 0, true},
		{"negative", "ACC-00001", 0, true},
		{"empty string", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIBAN(tt.iban)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIBAN(%q) error = %v, wantErr %v", tt.iban, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIBAN(%q) = %d, want %d", tt.iban, got, tt.want)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("pw1", hash) {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword("pw2", hash) {
		t.Error("CheckPassword accepted a wrong password")
	}
}
