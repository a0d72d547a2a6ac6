package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
)

// previewLen is the number of characters of an entry shown by journal list.
const previewLen = 60

type JournalCmd struct {
	Write JournalWriteCmd `cmd:"" help:"Write or replace the journal entry for a day."`
	List  JournalListCmd  `cmd:"" help:"List journal entries, newest first." default:"1"`
	Show  JournalShowCmd  `cmd:"" help:"Show the journal entry for a day."`
}

type JournalWriteCmd struct {
	Content string `arg:"" optional:"" help:"Entry text. Opens an editor form when omitted."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Mood    string `help:"Optional mood label."`
}

func (c *JournalWriteCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	content := c.Content
	if strings.TrimSpace(content) == "" {
		if existing, err := ctx.Store.GetJournalEntryByDate(ctx.UserID, day.String()); err == nil {
			content = existing.Content
		}
		err := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Journal for " + day.String()).
				Value(&content),
			huh.NewInput().
				Title("Mood").
				Value(&c.Mood),
		)).WithTheme(huh.ThemeDracula()).Run()
		if err != nil {
			return err
		}
	}

	entry, err := ctx.Tracker.WriteJournal(ctx.UserID, day, content, c.Mood)
	if err != nil {
		return err
	}
	ctx.Printf("Saved journal entry for %s\n", entry.Date)
	return nil
}

type JournalListCmd struct {
	Limit int `help:"Maximum number of entries to show (0 for all)." default:"10"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.ListJournalEntries(ctx.UserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Println("No journal entries yet.")
		return nil
	}

	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, e := range entries {
		mood := ""
		if e.Mood != "" {
			mood = fmt.Sprintf(" [%s]", e.Mood)
		}
		ctx.Printf("%s%s  %s\n", e.Date, mood, preview(e.Content))
	}
	return nil
}

type JournalShowCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *JournalShowCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	entry, err := ctx.Store.GetJournalEntryByDate(ctx.UserID, day.String())
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no journal entry for %s", day)
	}
	if err != nil {
		return err
	}

	ctx.Printf("%s", cli.HeadingStyle.Render(entry.Date))
	if entry.Mood != "" {
		ctx.Printf("  mood: %s", entry.Mood)
	}
	ctx.Printf("\n\n%s\n", entry.Content)
	return nil
}

// preview returns the first line of content, shortened to previewLen runes.
func preview(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	runes := []rune(line)
	if len(runes) > previewLen {
		return string(runes[:previewLen-1]) + "…"
	}
	return line
}
