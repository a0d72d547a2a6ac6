package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone    *string `help:"IANA timezone used to decide what \"today\" is (or Local)."`
	DefaultUser *string `help:"User id used when --user is not given."`
	WeekStart   *string `help:"First column of the calendar view (sunday or monday)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:      %s\n", settings.Timezone)
		ctx.Printf("  Default User:  %s\n", settings.DefaultUser)
		ctx.Printf("  Week Start:    %s\n", settings.WeekStart)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = strings.TrimSpace(*c.Timezone)
		updated = true
	}
	if c.DefaultUser != nil {
		settings.DefaultUser = strings.TrimSpace(*c.DefaultUser)
		updated = true
	}
	if c.WeekStart != nil {
		settings.WeekStart = strings.ToLower(strings.TrimSpace(*c.WeekStart))
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Settings = settings
	ctx.Println("Settings updated successfully.")
	return nil
}
