package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/posekit/gonio/internal/session"
)

// showMetadataDialog prompts for the name, tolerance and weight of the
// pending measurement. The dialog cannot be confirmed until the entries
// validate; cancelling discards the pending points.
func (a *App) showMetadataDialog(angle float64) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. left_elbow")
	nameEntry.Validator = validateName

	toleranceEntry := widget.NewEntry()
	toleranceEntry.SetPlaceHolder(fmt.Sprintf("%.1f", a.cfg.Tolerance))
	toleranceEntry.Validator = validateOptionalPositive

	weightEntry := widget.NewEntry()
	weightEntry.SetPlaceHolder(fmt.Sprintf("%.1f", a.cfg.Weight))
	weightEntry.Validator = validateOptionalPositive

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Tolerance", toleranceEntry),
		widget.NewFormItem("Weight", weightEntry),
	}

	form := dialog.NewForm(fmt.Sprintf("Angle: %.1f°", angle), "Save", "Cancel", items,
		func(confirmed bool) {
			if !confirmed {
				a.resetPending()
				return
			}
			a.commitPending(session.Metadata{
				Name:      strings.TrimSpace(nameEntry.Text),
				Tolerance: parsePositive(toleranceEntry.Text, a.cfg.Tolerance),
				Weight:    parsePositive(weightEntry.Text, a.cfg.Weight),
			})
		}, a.window)
	form.Resize(fyne.NewSize(380, 0))
	form.Show()
	a.window.Canvas().Focus(nameEntry)
}

// validateName rejects blank measurement names.
func validateName(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

// validateOptionalPositive accepts a blank entry, which falls back to the
// configured default, or a positive number.
func validateOptionalPositive(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if value <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

// parsePositive returns the entered value, or fallback when the entry is
// blank or does not hold a positive number.
func parsePositive(text string, fallback float64) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
