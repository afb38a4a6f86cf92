package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prepa/internal/client/models"
)

func (a *App) ListAlerts(ctx context.Context) error {
	alerts, err := a.alertService.List(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		a.println("No alerts.")
		return nil
	}
	for _, al := range alerts {
		a.println(al.String())
		if al.Comment != "" {
			a.println("    " + al.Comment)
		}
	}
	return nil
}

// AddAlert prompts for a new alert. Status and level may be left empty.
func (a *App) AddAlert(ctx context.Context) error {
	var (
		in  models.AlertInput
		err error
	)

	if in.Employee, err = a.readID("Employee ID"); err != nil {
		return err
	}
	if in.DetectionModel, err = a.readID("Detection model ID"); err != nil {
		return err
	}
	if in.MissingEquipment, err = getSimpleText(a.reader, "Missing equipment", a.output()); err != nil {
		return err
	}
	level, err := getSimpleText(a.reader, fmt.Sprintf("Level (%s, %s, %s, %s)",
		models.AlertLevelLow, models.AlertLevelMedium, models.AlertLevelHigh, models.AlertLevelCritical), a.output())
	if err != nil {
		return err
	}
	in.Level = strings.ToUpper(level)
	if in.Comment, err = GetMultiline(a.reader, "Comment", a.output()); err != nil {
		return err
	}

	created, err := a.alertService.Create(ctx, in)
	if err != nil {
		return err
	}
	a.println("Alert created:", created.String())
	return nil
}

// DeleteAlert deletes the alert whose ID is given as argument or, without
// one, asked for.
func (a *App) DeleteAlert(ctx context.Context, args []string) error {
	var (
		id  int64
		err error
	)
	if len(args) > 0 {
		id, err = parseID(args[0])
	} else {
		id, err = a.readID("Alert ID")
	}
	if err != nil {
		return err
	}

	if err := a.alertService.Delete(ctx, id); err != nil {
		return err
	}
	a.println("Alert", id, "deleted.")
	return nil
}

// Detect is the entry point of live equipment detection, which needs the
// browser camera pipeline.
func (a *App) Detect(ctx context.Context) error {
	a.println("Live detection needs a camera feed and is not available in this client.")
	return nil
}

func (a *App) readID(prompt string) (int64, error) {
	s, err := getSimpleText(a.reader, prompt, a.output())
	if err != nil {
		return 0, err
	}
	return parseID(s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
