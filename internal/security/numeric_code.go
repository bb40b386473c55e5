package security

// NumericCode returns a fixed-width numeric one-time code. The first digit is
// never zero, so a 6-digit code is always in [100000, 999999].
func NumericCode(digits int) (string, error) {
	if digits <= 0 {
		return "", errNegativeLength
	}

	lead, err := RandomString(1, "123456789")
	if err != nil {
		return "", err
	}
	rest, err := RandomString(digits-1, "0123456789")
	if err != nil {
		return "", err
	}
	return lead + rest, nil
}
