// Package identity validates 11-digit national identity numbers using the
// standard two-pass check-digit algorithm.
package identity

// Normalize strips everything but digits from s.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Valid reports whether s is a well-formed identity number. Formatting
// punctuation is ignored; after stripping, exactly 11 digits must remain,
// they must not all be identical, and both check digits must match.
func Valid(s string) bool {
	digits := Normalize(s)
	if len(digits) != 11 {
		return false
	}

	same := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	// First check digit: digits[0..8] weighted 10 down to 2.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(digits[9]-'0') {
		return false
	}

	// Second check digit: digits[0..9] weighted 11 down to 2.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(digits[10]-'0')
}

func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
