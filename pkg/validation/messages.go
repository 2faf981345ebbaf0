package validation

import (
	"fmt"
	"strconv"
)

func msgInvalidHidden(id string) string {
	return fmt.Sprintf("Invalid '%s' supplied.", id)
}

func msgRequired(title string) string {
	return fmt.Sprintf("Required field '%s' not completed.", title)
}

func msgInvalidOption(value, title string) string {
	return fmt.Sprintf("Invalid selection '%s' for '%s'.", value, title)
}

func msgNotANumber(title string) string {
	return fmt.Sprintf("Field '%s' must be a number.", title)
}

func msgOutOfRange(title string) string {
	return fmt.Sprintf("Field '%s' is out of range.", title)
}

func msgUnknownUnits(unit, title string) string {
	return fmt.Sprintf("Unknown units selection '%s' for '%s'.", unit, title)
}

func msgNotInteger(title string) string {
	return fmt.Sprintf("Field '%s' must be an integer (in its smallest unit).", title)
}

func msgBelowMin(title string, min float64) string {
	return fmt.Sprintf("Field '%s' must be greater than or equal to %s.", title, formatNumber(min))
}

func msgAboveMax(title string, max float64) string {
	return fmt.Sprintf("Field '%s' must be less than or equal to %s.", title, formatNumber(max))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
