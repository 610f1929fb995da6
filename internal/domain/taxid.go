package domain

import "strings"

const taxIDLength = 11

// NormalizeTaxID strips the 000.000.000-00 mask and validates the CPF check
// digits. It returns the bare 11 digits and whether the value is valid.
func NormalizeTaxID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) == 14 && s[3] == '.' && s[7] == '.' && s[11] == '-' {
		s = s[0:3] + s[4:7] + s[8:11] + s[12:14]
	}
	if len(s) != taxIDLength {
		return "", false
	}
	var digits [taxIDLength]int
	repeated := true
	for i := 0; i < taxIDLength; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return "", false
		}
		digits[i] = int(c - '0')
		if digits[i] != digits[0] {
			repeated = false
		}
	}
	// 000.000.000-00 through 999.999.999-99 pass the checksum but are not issued.
	if repeated {
		return "", false
	}
	if checkDigit(digits[:9]) != digits[9] || checkDigit(digits[:10]) != digits[10] {
		return "", false
	}
	return s, true
}

// ValidTaxID reports whether raw is a well formed CPF.
func ValidTaxID(raw string) bool {
	_, ok := NormalizeTaxID(raw)
	return ok
}

func checkDigit(prefix []int) int {
	weight := len(prefix) + 1
	sum := 0
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	r := sum * 10 % 11
	if r == 10 {
		return 0
	}
	return r
}
