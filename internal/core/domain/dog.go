package domain

import "fmt"

// AgeText renders the dog's age with the Russian plural form of "year".
func (d *Dog) AgeText() string {
	if d == nil {
		return ""
	}

	lastTwo := d.Age % 100
	lastDigit := d.Age % 10
	switch {
	case lastTwo >= 11 && lastTwo <= 14:
		return fmt.Sprintf("%d лет", d.Age)
	case lastDigit == 1:
		return fmt.Sprintf("%d год", d.Age)
	case lastDigit >= 2 && lastDigit <= 4:
		return fmt.Sprintf("%d года", d.Age)
	default:
		return fmt.Sprintf("%d лет", d.Age)
	}
}
