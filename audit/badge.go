package audit

import "fmt"

// BadgeURL renders a shields.io badge for the overall score, usable
// straight from a project README.
func BadgeURL(overall float64) string {
	color := "green"
	switch {
	case overall < 50:
		color = "red"
	case overall < 80:
		color = "yellow"
	}
	return fmt.Sprintf("https://img.shields.io/badge/crypto%%20audit-%.0f%%2F100-%s", overall, color)
}
