package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/vmunix/ampanel/internal/panel"
)

var errNoTerminal = errors.New("interactive selection requires a terminal")

// pickItems asks the user to choose checklist items and returns their keys.
// Items checked in the view start out selected.
func pickItems(title, description string, items []panel.CheckItem) ([]int, error) {
	if err := requireTerminal(); err != nil {
		return nil, err
	}

	opts := make([]huh.Option[int], len(items))
	for i, it := range items {
		opts[i] = huh.NewOption(it.Label, it.Key).Selected(it.Checked)
	}

	var selected []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(title).
				Description(description).
				Options(opts...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

// confirm asks a yes/no question on the terminal.
func confirm(title, description string) (bool, error) {
	if err := requireTerminal(); err != nil {
		return false, err
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func requireTerminal() error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return err
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return errNoTerminal
	}
	return nil
}
